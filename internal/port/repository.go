package port

import (
	"context"

	"github.com/google/uuid"

	"hejazi/internal/domain"
)

// TenantRepository defines the contract for tenant persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the contract for user persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
// UserFilter narrows user listings. Zero fields are ignored; Search matches
// the name or email case-insensitively.
type UserFilter struct {
	JobID      *uuid.UUID
	Role       *domain.UserRole
	ActiveOnly bool
	Search     string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error)
	List(ctx context.Context, tenantID uuid.UUID, filter UserFilter, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, tenantID, userID uuid.UUID) error
	SetMediaKey(ctx context.Context, tenantID, userID uuid.UUID, kind domain.MediaKind, key string) error
	SetFavorites(ctx context.Context, tenantID, userID uuid.UUID, codes []string) error
	SetFirebaseUID(ctx context.Context, tenantID, userID uuid.UUID, uid string) error
	SetPlatformAdmin(ctx context.Context, tenantID, userID uuid.UUID, enabled bool) error
}

// JobRepository defines the contract for job title persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Job, int, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}

// AppSecurityRepository stores the per-tenant kill switch.
type AppSecurityRepository interface {
	// Get returns the tenant's setting, or an unlocked default when none is stored.
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.AppSecurity, error)
	Upsert(ctx context.Context, setting *domain.AppSecurity) error
}
