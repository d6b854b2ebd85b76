package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/permission"
)

// MockPermissionCache is a mock implementation of port.PermissionCache.
type MockPermissionCache struct {
	mock.Mock
}

func (m *MockPermissionCache) Get(ctx context.Context, tenantID, userID uuid.UUID) ([]permission.Grant, bool, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]permission.Grant), args.Bool(1), args.Error(2)
}

func (m *MockPermissionCache) Set(ctx context.Context, tenantID, userID uuid.UUID, grants []permission.Grant) error {
	args := m.Called(ctx, tenantID, userID, grants)
	return args.Error(0)
}

func (m *MockPermissionCache) InvalidateUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}

func (m *MockPermissionCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}
