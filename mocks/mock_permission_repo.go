package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
)

// MockPermissionRepo is a mock implementation of port.PermissionRepository.
type MockPermissionRepo struct {
	mock.Mock
}

func (m *MockPermissionRepo) ListJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.PermissionRow, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PermissionRow), args.Error(1)
}

func (m *MockPermissionRepo) ReplaceJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID, rows []domain.PermissionRow) error {
	args := m.Called(ctx, tenantID, jobID, rows)
	return args.Error(0)
}

func (m *MockPermissionRepo) ListUserPermissions(ctx context.Context, tenantID, userID uuid.UUID) ([]domain.PermissionRow, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PermissionRow), args.Error(1)
}

func (m *MockPermissionRepo) ReplaceUserPermissions(ctx context.Context, tenantID, userID uuid.UUID, rows []domain.PermissionRow) error {
	args := m.Called(ctx, tenantID, userID, rows)
	return args.Error(0)
}

func (m *MockPermissionRepo) UpsertUserPermission(ctx context.Context, row *domain.PermissionRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockPermissionRepo) DeleteUserPermission(ctx context.Context, tenantID, userID uuid.UUID, level domain.TaxonomyLevel, resourceID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID, level, resourceID)
	return args.Error(0)
}
