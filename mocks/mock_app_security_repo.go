package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
)

// MockAppSecurityRepo is a mock implementation of port.AppSecurityRepository.
type MockAppSecurityRepo struct {
	mock.Mock
}

func (m *MockAppSecurityRepo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.AppSecurity, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSecurity), args.Error(1)
}

func (m *MockAppSecurityRepo) Upsert(ctx context.Context, setting *domain.AppSecurity) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}
