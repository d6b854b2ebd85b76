package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CreateTenantInput is the DTO for creating a tenant.
type CreateTenantInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// UpdateTenantInput is the DTO for updating a tenant. Nil fields are kept.
type UpdateTenantInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	IsActive *bool   `json:"is_active"`
}

// TenantService manages the organisations hosted by the deployment. It is
// only reachable by admins; callerTenantID is the tenant the admin is
// signed into, which can be neither deactivated nor deleted.
type TenantService interface {
	Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, callerTenantID, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, callerTenantID, id uuid.UUID) error
}

type tenantService struct {
	repo port.TenantRepository
}

// NewTenantService creates a new TenantService implementation.
func NewTenantService(repo port.TenantRepository) TenantService {
	return &tenantService{repo: repo}
}

// normalizeSlug lower-cases and trims a slug, rejecting anything that is
// not dash-separated alphanumerics.
func normalizeSlug(raw string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if !slugPattern.MatchString(slug) {
		return "", fmt.Errorf("slug %q: %w", raw, domain.ErrValidation)
	}
	return slug, nil
}

func (s *tenantService) Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error) {
	slug, err := normalizeSlug(input.Slug)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("empty tenant name: %w", domain.ErrValidation)
	}

	tenant := &domain.Tenant{Name: name, Slug: slug, IsActive: true}
	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	log.Info().Str("tenant_id", tenant.ID.String()).Str("slug", slug).Msg("tenantService.Create: tenant provisioned")
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tenantService) List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *tenantService) Update(ctx context.Context, callerTenantID, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error) {
	if input.IsActive != nil && !*input.IsActive && id == callerTenantID {
		return nil, domain.ErrOwnTenant
	}

	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("empty tenant name: %w", domain.ErrValidation)
		}
		tenant.Name = name
	}
	if input.Slug != nil {
		if tenant.Slug, err = normalizeSlug(*input.Slug); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, callerTenantID, id uuid.UUID) error {
	if id == callerTenantID {
		return domain.ErrOwnTenant
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Warn().Str("tenant_id", id.String()).Msg("tenantService.Delete: tenant removed")
	return nil
}
