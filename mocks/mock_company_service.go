package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/service"
)

// MockCompanyService is a mock implementation of service.CompanyService.
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) Create(ctx context.Context, tenantID uuid.UUID, input service.CompanyInput) (*service.CompanyView, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompanyView), args.Error(1)
}

func (m *MockCompanyService) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*service.CompanyView, error) {
	args := m.Called(ctx, tenantID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompanyView), args.Error(1)
}

func (m *MockCompanyService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]service.CompanyView, int, error) {
	args := m.Called(ctx, tenantID, activeOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]service.CompanyView), args.Int(1), args.Error(2)
}

func (m *MockCompanyService) Update(ctx context.Context, tenantID, companyID uuid.UUID, input service.UpdateCompanyInput) (*service.CompanyView, error) {
	args := m.Called(ctx, tenantID, companyID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompanyView), args.Error(1)
}

func (m *MockCompanyService) Delete(ctx context.Context, tenantID, companyID uuid.UUID) error {
	args := m.Called(ctx, tenantID, companyID)
	return args.Error(0)
}

func (m *MockCompanyService) RecomputeScore(ctx context.Context, tenantID, companyID uuid.UUID) (float64, error) {
	args := m.Called(ctx, tenantID, companyID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCompanyService) RecomputeAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
