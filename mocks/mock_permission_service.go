package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/permission"
	"hejazi/internal/service"
)

// MockPermissionService is a mock implementation of service.PermissionService.
type MockPermissionService struct {
	mock.Mock
}

func (m *MockPermissionService) JobPermissions(ctx context.Context, tenantID, jobID uuid.UUID) ([]service.PermissionEntry, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PermissionEntry), args.Error(1)
}

func (m *MockPermissionService) SaveJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID, entries []service.PermissionEntry) error {
	args := m.Called(ctx, tenantID, jobID, entries)
	return args.Error(0)
}

func (m *MockPermissionService) UserExceptions(ctx context.Context, tenantID, userID uuid.UUID) ([]service.PermissionEntry, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PermissionEntry), args.Error(1)
}

func (m *MockPermissionService) SaveUserExceptions(ctx context.Context, tenantID, userID uuid.UUID, entries []service.PermissionEntry) error {
	args := m.Called(ctx, tenantID, userID, entries)
	return args.Error(0)
}

func (m *MockPermissionService) UpsertUserException(ctx context.Context, tenantID, userID uuid.UUID, entry service.PermissionEntry) error {
	args := m.Called(ctx, tenantID, userID, entry)
	return args.Error(0)
}

func (m *MockPermissionService) DeleteUserException(ctx context.Context, tenantID, userID uuid.UUID, key permission.Key) error {
	args := m.Called(ctx, tenantID, userID, key)
	return args.Error(0)
}

func (m *MockPermissionService) Effective(ctx context.Context, tenantID, userID uuid.UUID) (permission.Set, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).(permission.Set), args.Error(1)
}

func (m *MockPermissionService) Menu(ctx context.Context, tenantID, userID uuid.UUID) ([]permission.MenuItem, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]permission.MenuItem), args.Error(1)
}

func (m *MockPermissionService) IsAllowed(ctx context.Context, tenantID, userID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, userID, code)
	return args.Bool(0), args.Error(1)
}
