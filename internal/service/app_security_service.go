package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// SetAppSecurityInput is the DTO for locking or unlocking a tenant.
type SetAppSecurityInput struct {
	IsLocked bool   `json:"is_locked"`
	Message  string `json:"message"`
}

// AppSecurityService manages the per-tenant kill switch.
type AppSecurityService interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.AppSecurity, error)
	Set(ctx context.Context, tenantID, adminID uuid.UUID, input SetAppSecurityInput) (*domain.AppSecurity, error)
}

type appSecurityService struct {
	repo port.AppSecurityRepository
}

// NewAppSecurityService creates a new AppSecurityService implementation.
func NewAppSecurityService(repo port.AppSecurityRepository) AppSecurityService {
	return &appSecurityService{repo: repo}
}

func (s *appSecurityService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.AppSecurity, error) {
	return s.repo.Get(ctx, tenantID)
}

func (s *appSecurityService) Set(ctx context.Context, tenantID, adminID uuid.UUID, input SetAppSecurityInput) (*domain.AppSecurity, error) {
	setting := &domain.AppSecurity{
		TenantID:  tenantID,
		IsLocked:  input.IsLocked,
		Message:   input.Message,
		UpdatedBy: &adminID,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	log.Warn().
		Str("tenant_id", tenantID.String()).
		Str("admin_id", adminID.String()).
		Bool("locked", input.IsLocked).
		Msg("appSecurityService.Set: kill switch changed")

	return setting, nil
}
