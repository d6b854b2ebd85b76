package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// MockEvaluationRepo is a mock implementation of port.EvaluationRepository.
type MockEvaluationRepo struct {
	mock.Mock
}

func (m *MockEvaluationRepo) Create(ctx context.Context, eval *domain.SecurityEvaluation, details []domain.SecurityEvaluationDetail) error {
	args := m.Called(ctx, eval, details)
	return args.Error(0)
}

func (m *MockEvaluationRepo) GetByID(ctx context.Context, tenantID, evalID uuid.UUID) (*domain.SecurityEvaluation, error) {
	args := m.Called(ctx, tenantID, evalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecurityEvaluation), args.Error(1)
}

func (m *MockEvaluationRepo) ListDetails(ctx context.Context, tenantID, evalID uuid.UUID) ([]domain.SecurityEvaluationDetail, error) {
	args := m.Called(ctx, tenantID, evalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecurityEvaluationDetail), args.Error(1)
}

func (m *MockEvaluationRepo) ListApprovals(ctx context.Context, tenantID, evalID uuid.UUID) ([]domain.EvaluationApproval, error) {
	args := m.Called(ctx, tenantID, evalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EvaluationApproval), args.Error(1)
}

func (m *MockEvaluationRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter, offset, limit int) ([]domain.SecurityEvaluation, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SecurityEvaluation), args.Int(1), args.Error(2)
}

func (m *MockEvaluationRepo) ReplaceDetails(ctx context.Context, eval *domain.SecurityEvaluation, details []domain.SecurityEvaluationDetail) error {
	args := m.Called(ctx, eval, details)
	return args.Error(0)
}

func (m *MockEvaluationRepo) Decide(ctx context.Context, eval *domain.SecurityEvaluation, approval *domain.EvaluationApproval) error {
	args := m.Called(ctx, eval, approval)
	return args.Error(0)
}

func (m *MockEvaluationRepo) Delete(ctx context.Context, tenantID, evalID uuid.UUID) error {
	args := m.Called(ctx, tenantID, evalID)
	return args.Error(0)
}

func (m *MockEvaluationRepo) RecentApprovedPercentages(ctx context.Context, tenantID, companyID uuid.UUID, n int) ([]float64, error) {
	args := m.Called(ctx, tenantID, companyID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockEvaluationRepo) ListForExport(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter) ([]port.EvaluationExportRow, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.EvaluationExportRow), args.Error(1)
}
