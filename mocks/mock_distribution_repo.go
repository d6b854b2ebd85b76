package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
)

// MockDistributionRepo is a mock implementation of port.DistributionRepository.
type MockDistributionRepo struct {
	mock.Mock
}

func (m *MockDistributionRepo) Create(ctx context.Context, d *domain.Distribution) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDistributionRepo) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Distribution, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Distribution), args.Int(1), args.Error(2)
}

func (m *MockDistributionRepo) ListByInspector(ctx context.Context, tenantID, inspectorID uuid.UUID) ([]domain.Distribution, error) {
	args := m.Called(ctx, tenantID, inspectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Distribution), args.Error(1)
}

func (m *MockDistributionRepo) Delete(ctx context.Context, tenantID, distributionID uuid.UUID) error {
	args := m.Called(ctx, tenantID, distributionID)
	return args.Error(0)
}

func (m *MockDistributionRepo) IsAssigned(ctx context.Context, tenantID, inspectorID, buildingID uuid.UUID, subbuildingID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, inspectorID, buildingID, subbuildingID)
	return args.Bool(0), args.Error(1)
}
