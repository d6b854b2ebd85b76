package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// CreateInspectionInput is the DTO for recording an inspection.
type CreateInspectionInput struct {
	BuildingID    uuid.UUID              `json:"building_id" binding:"required"`
	SubbuildingID *uuid.UUID             `json:"subbuilding_id"`
	InspectedAt   time.Time              `json:"inspected_at"`
	Checklist     []domain.ChecklistItem `json:"checklist" binding:"required"`
	Notes         string                 `json:"notes"`
}

// InspectionService records building safety inspections.
type InspectionService interface {
	Create(ctx context.Context, tenantID, inspectorID uuid.UUID, role domain.UserRole, input CreateInspectionInput) (*domain.Inspection, error)
	GetByID(ctx context.Context, tenantID, inspectionID uuid.UUID) (*domain.Inspection, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.InspectionFilter, offset, limit int) ([]domain.Inspection, int, error)
}

type inspectionService struct {
	repo         port.InspectionRepository
	locationRepo port.LocationRepository
	distRepo     port.DistributionRepository
}

// NewInspectionService creates a new InspectionService implementation.
func NewInspectionService(repo port.InspectionRepository, locationRepo port.LocationRepository, distRepo port.DistributionRepository) InspectionService {
	return &inspectionService{repo: repo, locationRepo: locationRepo, distRepo: distRepo}
}

// ChecklistStatus is non_compliant when any item failed.
func ChecklistStatus(items []domain.ChecklistItem) domain.InspectionStatus {
	for _, it := range items {
		if !it.Passed {
			return domain.InspectionNonCompliant
		}
	}
	return domain.InspectionCompliant
}

// Create records an inspection. Members may only inspect locations they are
// distributed to; admins may inspect anywhere.
func (s *inspectionService) Create(ctx context.Context, tenantID, inspectorID uuid.UUID, role domain.UserRole, input CreateInspectionInput) (*domain.Inspection, error) {
	items := make([]domain.ChecklistItem, 0, len(input.Checklist))
	for _, it := range input.Checklist {
		it.Item = strings.TrimSpace(it.Item)
		if it.Item == "" {
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyChecklist
	}

	if _, err := s.locationRepo.GetBuilding(ctx, tenantID, input.BuildingID); err != nil {
		return nil, err
	}
	if input.SubbuildingID != nil {
		sb, err := s.locationRepo.GetSubbuilding(ctx, tenantID, *input.SubbuildingID)
		if err != nil {
			return nil, err
		}
		if sb.BuildingID != input.BuildingID {
			return nil, domain.ErrLocationMismatch
		}
	}

	if role != domain.RoleAdmin {
		ok, err := s.distRepo.IsAssigned(ctx, tenantID, inspectorID, input.BuildingID, input.SubbuildingID)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Warn().
				Str("tenant_id", tenantID.String()).
				Str("inspector_id", inspectorID.String()).
				Str("building_id", input.BuildingID.String()).
				Msg("inspectionService.Create: inspector not assigned to building")
			return nil, domain.ErrNotAssigned
		}
	}

	checklist, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("inspectionService.Create: encoding checklist: %w", err)
	}

	in := &domain.Inspection{
		TenantID:      tenantID,
		InspectorID:   inspectorID,
		BuildingID:    input.BuildingID,
		SubbuildingID: input.SubbuildingID,
		InspectedAt:   input.InspectedAt,
		Checklist:     checklist,
		Status:        ChecklistStatus(items),
		Notes:         input.Notes,
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("inspection_id", in.ID.String()).
		Str("status", string(in.Status)).
		Msg("inspectionService.Create: inspection recorded")

	return in, nil
}

func (s *inspectionService) GetByID(ctx context.Context, tenantID, inspectionID uuid.UUID) (*domain.Inspection, error) {
	return s.repo.GetByID(ctx, tenantID, inspectionID)
}

func (s *inspectionService) List(ctx context.Context, tenantID uuid.UUID, filter port.InspectionFilter, offset, limit int) ([]domain.Inspection, int, error) {
	return s.repo.List(ctx, tenantID, filter, offset, limit)
}
