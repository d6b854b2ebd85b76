package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
)

// MockMaintenanceRepo is a mock implementation of port.MaintenanceRepository.
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, log *domain.MaintenanceLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockMaintenanceRepo) GetByID(ctx context.Context, tenantID, logID uuid.UUID) (*domain.MaintenanceLog, error) {
	args := m.Called(ctx, tenantID, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceLog), args.Error(1)
}

func (m *MockMaintenanceRepo) List(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID, offset, limit int) ([]domain.MaintenanceLog, int, error) {
	args := m.Called(ctx, tenantID, buildingID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MaintenanceLog), args.Int(1), args.Error(2)
}

func (m *MockMaintenanceRepo) Complete(ctx context.Context, log *domain.MaintenanceLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
