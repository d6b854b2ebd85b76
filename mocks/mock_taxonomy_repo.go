package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
)

// MockTaxonomyRepo is a mock implementation of port.TaxonomyRepository.
type MockTaxonomyRepo struct {
	mock.Mock
}

func (m *MockTaxonomyRepo) GetTree(ctx context.Context, tenantID uuid.UUID) (*domain.Taxonomy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Taxonomy), args.Error(1)
}

func (m *MockTaxonomyRepo) Create(ctx context.Context, node *domain.TaxonomyNode) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *MockTaxonomyRepo) GetByID(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) (*domain.TaxonomyNode, error) {
	args := m.Called(ctx, tenantID, level, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyRepo) ListChildren(ctx context.Context, tenantID uuid.UUID, parentLevel domain.TaxonomyLevel, parentID uuid.UUID) ([]domain.TaxonomyNode, error) {
	args := m.Called(ctx, tenantID, parentLevel, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxonomyNode), args.Error(1)
}

func (m *MockTaxonomyRepo) Update(ctx context.Context, node *domain.TaxonomyNode) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *MockTaxonomyRepo) Delete(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, level, id)
	return args.Error(0)
}
