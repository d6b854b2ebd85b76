package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/service"
)

// MockAppSecurityService is a mock implementation of service.AppSecurityService.
type MockAppSecurityService struct {
	mock.Mock
}

func (m *MockAppSecurityService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.AppSecurity, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSecurity), args.Error(1)
}

func (m *MockAppSecurityService) Set(ctx context.Context, tenantID, adminID uuid.UUID, input service.SetAppSecurityInput) (*domain.AppSecurity, error) {
	args := m.Called(ctx, tenantID, adminID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSecurity), args.Error(1)
}
