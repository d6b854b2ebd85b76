package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// CreateRiskInput is the DTO for registering a risk.
type CreateRiskInput struct {
	BuildingID  *uuid.UUID `json:"building_id"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Likelihood  int        `json:"likelihood" binding:"required"`
	Impact      int        `json:"impact" binding:"required"`
}

// MaintenanceInput is the DTO for scheduling maintenance.
type MaintenanceInput struct {
	BuildingID  uuid.UUID  `json:"building_id" binding:"required"`
	RiskID      *uuid.UUID `json:"risk_id"`
	Description string     `json:"description" binding:"required"`
}

// CompleteMaintenanceInput is the DTO for closing a maintenance entry.
type CompleteMaintenanceInput struct {
	PerformedAt time.Time `json:"performed_at"`
	Cost        float64   `json:"cost" binding:"min=0"`
}

// RiskService manages the risk register and maintenance log.
type RiskService interface {
	CreateRisk(ctx context.Context, tenantID, reporterID uuid.UUID, input CreateRiskInput) (*domain.Risk, error)
	GetRisk(ctx context.Context, tenantID, riskID uuid.UUID) (*domain.Risk, error)
	ListRisks(ctx context.Context, tenantID uuid.UUID, filter port.RiskFilter, offset, limit int) ([]domain.Risk, int, error)
	UpdateRiskStatus(ctx context.Context, tenantID, riskID uuid.UUID, status domain.RiskStatus) (*domain.Risk, error)

	CreateMaintenance(ctx context.Context, tenantID, performerID uuid.UUID, input MaintenanceInput) (*domain.MaintenanceLog, error)
	ListMaintenance(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID, offset, limit int) ([]domain.MaintenanceLog, int, error)
	CompleteMaintenance(ctx context.Context, tenantID, logID uuid.UUID, input CompleteMaintenanceInput) (*domain.MaintenanceLog, error)
}

type riskService struct {
	repo         port.RiskRepository
	maintRepo    port.MaintenanceRepository
	locationRepo port.LocationRepository
}

// NewRiskService creates a new RiskService implementation.
func NewRiskService(repo port.RiskRepository, maintRepo port.MaintenanceRepository, locationRepo port.LocationRepository) RiskService {
	return &riskService{repo: repo, maintRepo: maintRepo, locationRepo: locationRepo}
}

func (s *riskService) CreateRisk(ctx context.Context, tenantID, reporterID uuid.UUID, input CreateRiskInput) (*domain.Risk, error) {
	rating, level, err := domain.RiskRating(input.Likelihood, input.Impact)
	if err != nil {
		return nil, err
	}
	if input.BuildingID != nil {
		if _, err := s.locationRepo.GetBuilding(ctx, tenantID, *input.BuildingID); err != nil {
			return nil, err
		}
	}

	r := &domain.Risk{
		TenantID:    tenantID,
		BuildingID:  input.BuildingID,
		Title:       input.Title,
		Description: input.Description,
		Likelihood:  input.Likelihood,
		Impact:      input.Impact,
		Rating:      rating,
		Level:       level,
		Status:      domain.RiskOpen,
		ReportedBy:  reporterID,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("risk_id", r.ID.String()).
		Int("rating", rating).
		Str("level", string(level)).
		Msg("riskService.CreateRisk: risk registered")

	return r, nil
}

func (s *riskService) GetRisk(ctx context.Context, tenantID, riskID uuid.UUID) (*domain.Risk, error) {
	return s.repo.GetByID(ctx, tenantID, riskID)
}

func (s *riskService) ListRisks(ctx context.Context, tenantID uuid.UUID, filter port.RiskFilter, offset, limit int) ([]domain.Risk, int, error) {
	return s.repo.List(ctx, tenantID, filter, offset, limit)
}

func (s *riskService) UpdateRiskStatus(ctx context.Context, tenantID, riskID uuid.UUID, status domain.RiskStatus) (*domain.Risk, error) {
	if !domain.ValidRiskStatuses[status] {
		return nil, domain.ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, tenantID, riskID, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, riskID)
}

func (s *riskService) CreateMaintenance(ctx context.Context, tenantID, performerID uuid.UUID, input MaintenanceInput) (*domain.MaintenanceLog, error) {
	if _, err := s.locationRepo.GetBuilding(ctx, tenantID, input.BuildingID); err != nil {
		return nil, err
	}
	if input.RiskID != nil {
		if _, err := s.repo.GetByID(ctx, tenantID, *input.RiskID); err != nil {
			return nil, err
		}
	}

	m := &domain.MaintenanceLog{
		TenantID:    tenantID,
		BuildingID:  input.BuildingID,
		RiskID:      input.RiskID,
		Description: input.Description,
		PerformedBy: performerID,
	}
	if err := s.maintRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *riskService) ListMaintenance(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID, offset, limit int) ([]domain.MaintenanceLog, int, error) {
	return s.maintRepo.List(ctx, tenantID, buildingID, offset, limit)
}

func (s *riskService) CompleteMaintenance(ctx context.Context, tenantID, logID uuid.UUID, input CompleteMaintenanceInput) (*domain.MaintenanceLog, error) {
	m, err := s.maintRepo.GetByID(ctx, tenantID, logID)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.MaintenanceCompleted {
		return nil, domain.ErrInvalidStatus
	}

	performed := input.PerformedAt
	if performed.IsZero() {
		performed = time.Now().UTC()
	}
	m.PerformedAt = &performed
	m.Cost = input.Cost
	m.Status = domain.MaintenanceCompleted
	if err := s.maintRepo.Complete(ctx, m); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("maintenance_id", m.ID.String()).
		Msg("riskService.CompleteMaintenance: maintenance completed")

	return m, nil
}
