package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
)

// MockQuestionRepo is a mock implementation of port.QuestionRepository.
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(ctx context.Context, q *domain.SecurityQuestion) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByID(ctx context.Context, tenantID, questionID uuid.UUID) (*domain.SecurityQuestion, error) {
	args := m.Called(ctx, tenantID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecurityQuestion), args.Error(1)
}

func (m *MockQuestionRepo) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.SecurityQuestion, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecurityQuestion), args.Error(1)
}

func (m *MockQuestionRepo) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.SecurityQuestion, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecurityQuestion), args.Error(1)
}

func (m *MockQuestionRepo) Update(ctx context.Context, q *domain.SecurityQuestion) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
