package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/service"
)

// MockLocationService is a mock implementation of service.LocationService.
type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) CreateSector(ctx context.Context, tenantID uuid.UUID, input service.SectorInput) (*domain.Sector, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sector), args.Error(1)
}

func (m *MockLocationService) ListSectors(ctx context.Context, tenantID uuid.UUID) ([]domain.Sector, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sector), args.Error(1)
}

func (m *MockLocationService) DeleteSector(ctx context.Context, tenantID, sectorID uuid.UUID) error {
	args := m.Called(ctx, tenantID, sectorID)
	return args.Error(0)
}

func (m *MockLocationService) CreateBuilding(ctx context.Context, tenantID uuid.UUID, input service.BuildingInput) (*domain.Building, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}

func (m *MockLocationService) ListBuildings(ctx context.Context, tenantID uuid.UUID, sectorID *uuid.UUID) ([]domain.Building, error) {
	args := m.Called(ctx, tenantID, sectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Building), args.Error(1)
}

func (m *MockLocationService) DeleteBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) error {
	args := m.Called(ctx, tenantID, buildingID)
	return args.Error(0)
}

func (m *MockLocationService) CreateSubbuilding(ctx context.Context, tenantID uuid.UUID, input service.SubbuildingInput) (*domain.Subbuilding, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subbuilding), args.Error(1)
}

func (m *MockLocationService) ListSubbuildings(ctx context.Context, tenantID, buildingID uuid.UUID) ([]domain.Subbuilding, error) {
	args := m.Called(ctx, tenantID, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subbuilding), args.Error(1)
}

func (m *MockLocationService) DeleteSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) error {
	args := m.Called(ctx, tenantID, subbuildingID)
	return args.Error(0)
}

func (m *MockLocationService) Assign(ctx context.Context, tenantID, assignedBy uuid.UUID, input service.AssignInput) (*domain.Distribution, error) {
	args := m.Called(ctx, tenantID, assignedBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}

func (m *MockLocationService) ListAssignments(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Distribution, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Distribution), args.Int(1), args.Error(2)
}

func (m *MockLocationService) ListMine(ctx context.Context, tenantID, inspectorID uuid.UUID) ([]domain.Distribution, error) {
	args := m.Called(ctx, tenantID, inspectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Distribution), args.Error(1)
}

func (m *MockLocationService) Unassign(ctx context.Context, tenantID, distributionID uuid.UUID) error {
	args := m.Called(ctx, tenantID, distributionID)
	return args.Error(0)
}
