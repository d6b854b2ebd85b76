package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// MockViolationRepo is a mock implementation of port.ViolationRepository.
type MockViolationRepo struct {
	mock.Mock
}

func (m *MockViolationRepo) Create(ctx context.Context, v *domain.Violation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockViolationRepo) GetByID(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error) {
	args := m.Called(ctx, tenantID, violationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Violation), args.Error(1)
}

func (m *MockViolationRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter, offset, limit int) ([]domain.Violation, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Violation), args.Int(1), args.Error(2)
}

func (m *MockViolationRepo) Close(ctx context.Context, tenantID, violationID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, tenantID, violationID, at)
	return args.Error(0)
}

func (m *MockViolationRepo) CreateSend(ctx context.Context, send *domain.ViolationSend) error {
	args := m.Called(ctx, send)
	return args.Error(0)
}

func (m *MockViolationRepo) ListSends(ctx context.Context, tenantID, violationID uuid.UUID) ([]domain.ViolationSend, error) {
	args := m.Called(ctx, tenantID, violationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ViolationSend), args.Error(1)
}

func (m *MockViolationRepo) ListForExport(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter) ([]port.ViolationExportRow, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.ViolationExportRow), args.Error(1)
}
