package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/service"
)

// MockInspectionService is a mock implementation of service.InspectionService.
type MockInspectionService struct {
	mock.Mock
}

func (m *MockInspectionService) Create(ctx context.Context, tenantID, inspectorID uuid.UUID, role domain.UserRole, input service.CreateInspectionInput) (*domain.Inspection, error) {
	args := m.Called(ctx, tenantID, inspectorID, role, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}

func (m *MockInspectionService) GetByID(ctx context.Context, tenantID, inspectionID uuid.UUID) (*domain.Inspection, error) {
	args := m.Called(ctx, tenantID, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}

func (m *MockInspectionService) List(ctx context.Context, tenantID uuid.UUID, filter port.InspectionFilter, offset, limit int) ([]domain.Inspection, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Inspection), args.Int(1), args.Error(2)
}
