package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/service"
)

// MockViolationService is a mock implementation of service.ViolationService.
type MockViolationService struct {
	mock.Mock
}

func (m *MockViolationService) Create(ctx context.Context, tenantID, reporterID uuid.UUID, input service.CreateViolationInput) (*domain.Violation, error) {
	args := m.Called(ctx, tenantID, reporterID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Violation), args.Error(1)
}

func (m *MockViolationService) GetByID(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error) {
	args := m.Called(ctx, tenantID, violationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Violation), args.Error(1)
}

func (m *MockViolationService) List(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter, offset, limit int) ([]domain.Violation, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Violation), args.Int(1), args.Error(2)
}

func (m *MockViolationService) Close(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error) {
	args := m.Called(ctx, tenantID, violationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Violation), args.Error(1)
}

func (m *MockViolationService) Mailto(ctx context.Context, tenantID, violationID uuid.UUID, recipients []string) (string, error) {
	args := m.Called(ctx, tenantID, violationID, recipients)
	return args.String(0), args.Error(1)
}

func (m *MockViolationService) Notify(ctx context.Context, tenantID, senderID, violationID uuid.UUID, input service.NotifyInput) (*service.NotifyResult, error) {
	args := m.Called(ctx, tenantID, senderID, violationID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NotifyResult), args.Error(1)
}

func (m *MockViolationService) ListSends(ctx context.Context, tenantID, violationID uuid.UUID) ([]domain.ViolationSend, error) {
	args := m.Called(ctx, tenantID, violationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ViolationSend), args.Error(1)
}

func (m *MockViolationService) Export(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter, w io.Writer) error {
	args := m.Called(ctx, tenantID, filter, w)
	return args.Error(0)
}
