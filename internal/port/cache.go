package port

import (
	"context"

	"github.com/google/uuid"

	"hejazi/internal/permission"
)

// PermissionCache stores resolved permission sets per user.
// A miss returns ok=false with a nil error.
type PermissionCache interface {
	Get(ctx context.Context, tenantID, userID uuid.UUID) (grants []permission.Grant, ok bool, err error)
	Set(ctx context.Context, tenantID, userID uuid.UUID, grants []permission.Grant) error
	InvalidateUser(ctx context.Context, tenantID, userID uuid.UUID) error
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
}
