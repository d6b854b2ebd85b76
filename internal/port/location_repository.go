package port

import (
	"context"

	"github.com/google/uuid"

	"hejazi/internal/domain"
)

// LocationRepository defines the contract for the sector/building hierarchy.
type LocationRepository interface {
	CreateSector(ctx context.Context, s *domain.Sector) error
	ListSectors(ctx context.Context, tenantID uuid.UUID) ([]domain.Sector, error)
	DeleteSector(ctx context.Context, tenantID, sectorID uuid.UUID) error

	CreateBuilding(ctx context.Context, b *domain.Building) error
	GetBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) (*domain.Building, error)
	ListBuildings(ctx context.Context, tenantID uuid.UUID, sectorID *uuid.UUID) ([]domain.Building, error)
	DeleteBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) error

	CreateSubbuilding(ctx context.Context, s *domain.Subbuilding) error
	GetSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) (*domain.Subbuilding, error)
	ListSubbuildings(ctx context.Context, tenantID, buildingID uuid.UUID) ([]domain.Subbuilding, error)
	DeleteSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) error
}

// DistributionRepository defines the contract for inspector assignments.
type DistributionRepository interface {
	Create(ctx context.Context, d *domain.Distribution) error
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Distribution, int, error)
	ListByInspector(ctx context.Context, tenantID, inspectorID uuid.UUID) ([]domain.Distribution, error)
	Delete(ctx context.Context, tenantID, distributionID uuid.UUID) error
	// IsAssigned reports whether the inspector covers the building. A
	// building-wide assignment covers every subbuilding.
	IsAssigned(ctx context.Context, tenantID, inspectorID, buildingID uuid.UUID, subbuildingID *uuid.UUID) (bool, error)
}

// InspectionFilter narrows inspection listings. Nil fields are ignored.
type InspectionFilter struct {
	BuildingID  *uuid.UUID
	InspectorID *uuid.UUID
}

// InspectionRepository defines the contract for inspection persistence.
type InspectionRepository interface {
	Create(ctx context.Context, in *domain.Inspection) error
	GetByID(ctx context.Context, tenantID, inspectionID uuid.UUID) (*domain.Inspection, error)
	List(ctx context.Context, tenantID uuid.UUID, filter InspectionFilter, offset, limit int) ([]domain.Inspection, int, error)
}

// RiskFilter narrows risk listings. Nil fields are ignored.
type RiskFilter struct {
	BuildingID *uuid.UUID
	Status     *domain.RiskStatus
}

// RiskRepository defines the contract for risk register persistence.
type RiskRepository interface {
	Create(ctx context.Context, r *domain.Risk) error
	GetByID(ctx context.Context, tenantID, riskID uuid.UUID) (*domain.Risk, error)
	List(ctx context.Context, tenantID uuid.UUID, filter RiskFilter, offset, limit int) ([]domain.Risk, int, error)
	UpdateStatus(ctx context.Context, tenantID, riskID uuid.UUID, status domain.RiskStatus) error
}

// MaintenanceRepository defines the contract for maintenance log persistence.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.MaintenanceLog) error
	GetByID(ctx context.Context, tenantID, logID uuid.UUID) (*domain.MaintenanceLog, error)
	List(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID, offset, limit int) ([]domain.MaintenanceLog, int, error)
	Complete(ctx context.Context, m *domain.MaintenanceLog) error
}
