package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hejazi/internal/domain"
)

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	GetTenantStats(ctx context.Context, tenantID uuid.UUID, monthStart time.Time) (*domain.Stats, error)
}
