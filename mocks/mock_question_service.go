package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/service"
)

// MockQuestionService is a mock implementation of service.QuestionService.
type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) Create(ctx context.Context, tenantID uuid.UUID, input service.QuestionInput) (*domain.SecurityQuestion, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecurityQuestion), args.Error(1)
}

func (m *MockQuestionService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.SecurityQuestion, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecurityQuestion), args.Error(1)
}

func (m *MockQuestionService) Update(ctx context.Context, tenantID, questionID uuid.UUID, input service.UpdateQuestionInput) (*domain.SecurityQuestion, error) {
	args := m.Called(ctx, tenantID, questionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecurityQuestion), args.Error(1)
}

func (m *MockQuestionService) Deactivate(ctx context.Context, tenantID, questionID uuid.UUID) error {
	args := m.Called(ctx, tenantID, questionID)
	return args.Error(0)
}
