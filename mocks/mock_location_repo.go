package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
)

// MockLocationRepo is a mock implementation of port.LocationRepository.
type MockLocationRepo struct {
	mock.Mock
}

func (m *MockLocationRepo) CreateSector(ctx context.Context, s *domain.Sector) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockLocationRepo) ListSectors(ctx context.Context, tenantID uuid.UUID) ([]domain.Sector, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sector), args.Error(1)
}

func (m *MockLocationRepo) DeleteSector(ctx context.Context, tenantID, sectorID uuid.UUID) error {
	args := m.Called(ctx, tenantID, sectorID)
	return args.Error(0)
}

func (m *MockLocationRepo) CreateBuilding(ctx context.Context, b *domain.Building) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockLocationRepo) GetBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) (*domain.Building, error) {
	args := m.Called(ctx, tenantID, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}

func (m *MockLocationRepo) ListBuildings(ctx context.Context, tenantID uuid.UUID, sectorID *uuid.UUID) ([]domain.Building, error) {
	args := m.Called(ctx, tenantID, sectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Building), args.Error(1)
}

func (m *MockLocationRepo) DeleteBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) error {
	args := m.Called(ctx, tenantID, buildingID)
	return args.Error(0)
}

func (m *MockLocationRepo) CreateSubbuilding(ctx context.Context, s *domain.Subbuilding) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockLocationRepo) GetSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) (*domain.Subbuilding, error) {
	args := m.Called(ctx, tenantID, subbuildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subbuilding), args.Error(1)
}

func (m *MockLocationRepo) ListSubbuildings(ctx context.Context, tenantID, buildingID uuid.UUID) ([]domain.Subbuilding, error) {
	args := m.Called(ctx, tenantID, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subbuilding), args.Error(1)
}

func (m *MockLocationRepo) DeleteSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) error {
	args := m.Called(ctx, tenantID, subbuildingID)
	return args.Error(0)
}
