package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/service"
)

// MockTaxonomyService is a mock implementation of service.TaxonomyService.
type MockTaxonomyService struct {
	mock.Mock
}

func (m *MockTaxonomyService) Tree(ctx context.Context, tenantID uuid.UUID) ([]service.TreeNode, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TreeNode), args.Error(1)
}

func (m *MockTaxonomyService) ListChildren(ctx context.Context, tenantID uuid.UUID, parentLevel domain.TaxonomyLevel, parentID uuid.UUID) ([]domain.TaxonomyNode, error) {
	args := m.Called(ctx, tenantID, parentLevel, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateNodeInput) (*domain.TaxonomyNode, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyService) Update(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID, input service.UpdateNodeInput) (*domain.TaxonomyNode, error) {
	args := m.Called(ctx, tenantID, level, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyService) Delete(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, level, id)
	return args.Error(0)
}
