package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
)

// MockCompanyRepo is a mock implementation of port.CompanyRepository.
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*domain.Company, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.Company, int, error) {
	args := m.Called(ctx, tenantID, activeOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Company), args.Int(1), args.Error(2)
}

func (m *MockCompanyRepo) ListActiveIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCompanyRepo) Update(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepo) Delete(ctx context.Context, tenantID, companyID uuid.UUID) error {
	args := m.Called(ctx, tenantID, companyID)
	return args.Error(0)
}

func (m *MockCompanyRepo) MarkEvaluated(ctx context.Context, tenantID, companyID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, tenantID, companyID, at)
	return args.Error(0)
}

func (m *MockCompanyRepo) UpdateScore(ctx context.Context, tenantID, companyID uuid.UUID, score float64) error {
	args := m.Called(ctx, tenantID, companyID, score)
	return args.Error(0)
}
