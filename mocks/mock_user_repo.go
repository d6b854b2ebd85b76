package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// MockUserRepo is a mock implementation of port.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.UserFilter, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}

func (m *MockUserRepo) SetMediaKey(ctx context.Context, tenantID, userID uuid.UUID, kind domain.MediaKind, key string) error {
	args := m.Called(ctx, tenantID, userID, kind, key)
	return args.Error(0)
}

func (m *MockUserRepo) SetFavorites(ctx context.Context, tenantID, userID uuid.UUID, codes []string) error {
	args := m.Called(ctx, tenantID, userID, codes)
	return args.Error(0)
}

func (m *MockUserRepo) SetFirebaseUID(ctx context.Context, tenantID, userID uuid.UUID, uid string) error {
	args := m.Called(ctx, tenantID, userID, uid)
	return args.Error(0)
}

func (m *MockUserRepo) SetPlatformAdmin(ctx context.Context, tenantID, userID uuid.UUID, enabled bool) error {
	args := m.Called(ctx, tenantID, userID, enabled)
	return args.Error(0)
}
