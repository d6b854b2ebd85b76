package port

import (
	"context"

	"github.com/google/uuid"

	"hejazi/internal/domain"
)

// TaxonomyRepository defines the contract for the three service tables.
// Methods taking a level operate on that level's table.
type TaxonomyRepository interface {
	GetTree(ctx context.Context, tenantID uuid.UUID) (*domain.Taxonomy, error)
	Create(ctx context.Context, node *domain.TaxonomyNode) error
	GetByID(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) (*domain.TaxonomyNode, error)
	ListChildren(ctx context.Context, tenantID uuid.UUID, parentLevel domain.TaxonomyLevel, parentID uuid.UUID) ([]domain.TaxonomyNode, error)
	Update(ctx context.Context, node *domain.TaxonomyNode) error
	Delete(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) error
}

// PermissionRepository persists job defaults and user exceptions.
// Replace methods swap the full set of rows in one transaction.
type PermissionRepository interface {
	ListJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.PermissionRow, error)
	ReplaceJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID, rows []domain.PermissionRow) error
	ListUserPermissions(ctx context.Context, tenantID, userID uuid.UUID) ([]domain.PermissionRow, error)
	ReplaceUserPermissions(ctx context.Context, tenantID, userID uuid.UUID, rows []domain.PermissionRow) error
	UpsertUserPermission(ctx context.Context, row *domain.PermissionRow) error
	DeleteUserPermission(ctx context.Context, tenantID, userID uuid.UUID, level domain.TaxonomyLevel, resourceID uuid.UUID) error
}
