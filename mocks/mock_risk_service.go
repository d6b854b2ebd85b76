package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/service"
)

// MockRiskService is a mock implementation of service.RiskService.
type MockRiskService struct {
	mock.Mock
}

func (m *MockRiskService) CreateRisk(ctx context.Context, tenantID, reporterID uuid.UUID, input service.CreateRiskInput) (*domain.Risk, error) {
	args := m.Called(ctx, tenantID, reporterID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Risk), args.Error(1)
}

func (m *MockRiskService) GetRisk(ctx context.Context, tenantID, riskID uuid.UUID) (*domain.Risk, error) {
	args := m.Called(ctx, tenantID, riskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Risk), args.Error(1)
}

func (m *MockRiskService) ListRisks(ctx context.Context, tenantID uuid.UUID, filter port.RiskFilter, offset, limit int) ([]domain.Risk, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Risk), args.Int(1), args.Error(2)
}

func (m *MockRiskService) UpdateRiskStatus(ctx context.Context, tenantID, riskID uuid.UUID, status domain.RiskStatus) (*domain.Risk, error) {
	args := m.Called(ctx, tenantID, riskID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Risk), args.Error(1)
}

func (m *MockRiskService) CreateMaintenance(ctx context.Context, tenantID, performerID uuid.UUID, input service.MaintenanceInput) (*domain.MaintenanceLog, error) {
	args := m.Called(ctx, tenantID, performerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceLog), args.Error(1)
}

func (m *MockRiskService) ListMaintenance(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID, offset, limit int) ([]domain.MaintenanceLog, int, error) {
	args := m.Called(ctx, tenantID, buildingID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MaintenanceLog), args.Int(1), args.Error(2)
}

func (m *MockRiskService) CompleteMaintenance(ctx context.Context, tenantID, logID uuid.UUID, input service.CompleteMaintenanceInput) (*domain.MaintenanceLog, error) {
	args := m.Called(ctx, tenantID, logID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceLog), args.Error(1)
}
