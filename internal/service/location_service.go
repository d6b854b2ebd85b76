package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// SectorInput is the DTO for creating a sector.
type SectorInput struct {
	NameAR string `json:"name_ar" binding:"required"`
	NameEN string `json:"name_en"`
}

// BuildingInput is the DTO for creating a building.
type BuildingInput struct {
	SectorID uuid.UUID `json:"sector_id" binding:"required"`
	Code     string    `json:"code" binding:"required"`
	Name     string    `json:"name" binding:"required"`
}

// SubbuildingInput is the DTO for creating a subbuilding.
type SubbuildingInput struct {
	BuildingID uuid.UUID `json:"building_id" binding:"required"`
	Name       string    `json:"name" binding:"required"`
}

// AssignInput is the DTO for assigning an inspector to a location.
type AssignInput struct {
	InspectorID   uuid.UUID  `json:"inspector_id" binding:"required"`
	BuildingID    uuid.UUID  `json:"building_id" binding:"required"`
	SubbuildingID *uuid.UUID `json:"subbuilding_id"`
}

// LocationService manages the sector/building hierarchy and inspector
// distribution over it.
type LocationService interface {
	CreateSector(ctx context.Context, tenantID uuid.UUID, input SectorInput) (*domain.Sector, error)
	ListSectors(ctx context.Context, tenantID uuid.UUID) ([]domain.Sector, error)
	DeleteSector(ctx context.Context, tenantID, sectorID uuid.UUID) error

	CreateBuilding(ctx context.Context, tenantID uuid.UUID, input BuildingInput) (*domain.Building, error)
	ListBuildings(ctx context.Context, tenantID uuid.UUID, sectorID *uuid.UUID) ([]domain.Building, error)
	DeleteBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) error

	CreateSubbuilding(ctx context.Context, tenantID uuid.UUID, input SubbuildingInput) (*domain.Subbuilding, error)
	ListSubbuildings(ctx context.Context, tenantID, buildingID uuid.UUID) ([]domain.Subbuilding, error)
	DeleteSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) error

	Assign(ctx context.Context, tenantID, assignedBy uuid.UUID, input AssignInput) (*domain.Distribution, error)
	ListAssignments(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Distribution, int, error)
	ListMine(ctx context.Context, tenantID, inspectorID uuid.UUID) ([]domain.Distribution, error)
	Unassign(ctx context.Context, tenantID, distributionID uuid.UUID) error
}

type locationService struct {
	repo     port.LocationRepository
	distRepo port.DistributionRepository
	userRepo port.UserRepository
}

// NewLocationService creates a new LocationService implementation.
func NewLocationService(repo port.LocationRepository, distRepo port.DistributionRepository, userRepo port.UserRepository) LocationService {
	return &locationService{repo: repo, distRepo: distRepo, userRepo: userRepo}
}

func (s *locationService) CreateSector(ctx context.Context, tenantID uuid.UUID, input SectorInput) (*domain.Sector, error) {
	sector := &domain.Sector{
		TenantID: tenantID,
		NameAR:   strings.TrimSpace(input.NameAR),
		NameEN:   strings.TrimSpace(input.NameEN),
	}
	if err := s.repo.CreateSector(ctx, sector); err != nil {
		return nil, err
	}
	return sector, nil
}

func (s *locationService) ListSectors(ctx context.Context, tenantID uuid.UUID) ([]domain.Sector, error) {
	return s.repo.ListSectors(ctx, tenantID)
}

func (s *locationService) DeleteSector(ctx context.Context, tenantID, sectorID uuid.UUID) error {
	return s.repo.DeleteSector(ctx, tenantID, sectorID)
}

func (s *locationService) CreateBuilding(ctx context.Context, tenantID uuid.UUID, input BuildingInput) (*domain.Building, error) {
	b := &domain.Building{
		TenantID: tenantID,
		SectorID: input.SectorID,
		Code:     strings.TrimSpace(input.Code),
		Name:     strings.TrimSpace(input.Name),
	}
	if err := s.repo.CreateBuilding(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *locationService) ListBuildings(ctx context.Context, tenantID uuid.UUID, sectorID *uuid.UUID) ([]domain.Building, error) {
	return s.repo.ListBuildings(ctx, tenantID, sectorID)
}

func (s *locationService) DeleteBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) error {
	return s.repo.DeleteBuilding(ctx, tenantID, buildingID)
}

func (s *locationService) CreateSubbuilding(ctx context.Context, tenantID uuid.UUID, input SubbuildingInput) (*domain.Subbuilding, error) {
	if _, err := s.repo.GetBuilding(ctx, tenantID, input.BuildingID); err != nil {
		return nil, err
	}
	sb := &domain.Subbuilding{
		TenantID:   tenantID,
		BuildingID: input.BuildingID,
		Name:       strings.TrimSpace(input.Name),
	}
	if err := s.repo.CreateSubbuilding(ctx, sb); err != nil {
		return nil, err
	}
	return sb, nil
}

func (s *locationService) ListSubbuildings(ctx context.Context, tenantID, buildingID uuid.UUID) ([]domain.Subbuilding, error) {
	return s.repo.ListSubbuildings(ctx, tenantID, buildingID)
}

func (s *locationService) DeleteSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) error {
	return s.repo.DeleteSubbuilding(ctx, tenantID, subbuildingID)
}

// Assign records that an inspector covers a building, or one subbuilding of
// it. The sector is taken from the building.
func (s *locationService) Assign(ctx context.Context, tenantID, assignedBy uuid.UUID, input AssignInput) (*domain.Distribution, error) {
	inspector, err := s.userRepo.GetByID(ctx, tenantID, input.InspectorID)
	if err != nil {
		return nil, err
	}
	if !inspector.IsActive {
		return nil, domain.ErrUserInactive
	}

	building, err := s.repo.GetBuilding(ctx, tenantID, input.BuildingID)
	if err != nil {
		return nil, err
	}
	if input.SubbuildingID != nil {
		sb, err := s.repo.GetSubbuilding(ctx, tenantID, *input.SubbuildingID)
		if err != nil {
			return nil, err
		}
		if sb.BuildingID != building.ID {
			return nil, domain.ErrLocationMismatch
		}
	}

	d := &domain.Distribution{
		TenantID:      tenantID,
		InspectorID:   inspector.ID,
		SectorID:      building.SectorID,
		BuildingID:    building.ID,
		SubbuildingID: input.SubbuildingID,
		AssignedBy:    assignedBy,
	}
	if err := s.distRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("inspector_id", d.InspectorID.String()).
		Str("building_id", d.BuildingID.String()).
		Msg("locationService.Assign: inspector assigned")

	return d, nil
}

func (s *locationService) ListAssignments(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Distribution, int, error) {
	return s.distRepo.List(ctx, tenantID, offset, limit)
}

func (s *locationService) ListMine(ctx context.Context, tenantID, inspectorID uuid.UUID) ([]domain.Distribution, error) {
	return s.distRepo.ListByInspector(ctx, tenantID, inspectorID)
}

func (s *locationService) Unassign(ctx context.Context, tenantID, distributionID uuid.UUID) error {
	if err := s.distRepo.Delete(ctx, tenantID, distributionID); err != nil {
		return fmt.Errorf("locationService.Unassign: %w", err)
	}
	return nil
}
