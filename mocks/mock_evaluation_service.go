package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/service"
)

// MockEvaluationService is a mock implementation of service.EvaluationService.
type MockEvaluationService struct {
	mock.Mock
}

func (m *MockEvaluationService) Create(ctx context.Context, tenantID, evaluatorID uuid.UUID, input service.CreateEvaluationInput) (*domain.EvaluationWithDetails, error) {
	args := m.Called(ctx, tenantID, evaluatorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationWithDetails), args.Error(1)
}

func (m *MockEvaluationService) Get(ctx context.Context, tenantID, evalID uuid.UUID) (*domain.EvaluationWithDetails, error) {
	args := m.Called(ctx, tenantID, evalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationWithDetails), args.Error(1)
}

func (m *MockEvaluationService) List(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter, offset, limit int) ([]domain.SecurityEvaluation, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SecurityEvaluation), args.Int(1), args.Error(2)
}

func (m *MockEvaluationService) UpdateDetails(ctx context.Context, tenantID, callerID, evalID uuid.UUID, input service.UpdateEvaluationInput) (*domain.EvaluationWithDetails, error) {
	args := m.Called(ctx, tenantID, callerID, evalID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationWithDetails), args.Error(1)
}

func (m *MockEvaluationService) Decide(ctx context.Context, tenantID, approverID, evalID uuid.UUID, input service.DecideInput) (*domain.EvaluationWithDetails, error) {
	args := m.Called(ctx, tenantID, approverID, evalID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationWithDetails), args.Error(1)
}

func (m *MockEvaluationService) Delete(ctx context.Context, tenantID, evalID uuid.UUID) error {
	args := m.Called(ctx, tenantID, evalID)
	return args.Error(0)
}

func (m *MockEvaluationService) Export(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter, w io.Writer) error {
	args := m.Called(ctx, tenantID, filter, w)
	return args.Error(0)
}
