package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// MockRiskRepo is a mock implementation of port.RiskRepository.
type MockRiskRepo struct {
	mock.Mock
}

func (m *MockRiskRepo) Create(ctx context.Context, r *domain.Risk) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiskRepo) GetByID(ctx context.Context, tenantID, riskID uuid.UUID) (*domain.Risk, error) {
	args := m.Called(ctx, tenantID, riskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Risk), args.Error(1)
}

func (m *MockRiskRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.RiskFilter, offset, limit int) ([]domain.Risk, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Risk), args.Int(1), args.Error(2)
}

func (m *MockRiskRepo) UpdateStatus(ctx context.Context, tenantID, riskID uuid.UUID, status domain.RiskStatus) error {
	args := m.Called(ctx, tenantID, riskID, status)
	return args.Error(0)
}
