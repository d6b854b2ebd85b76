package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hejazi/internal/domain"
	"hejazi/internal/service"
	"hejazi/mocks"
)

func TestTaxonomyService_Create_CodeUniqueAcrossLevels(t *testing.T) {
	repo := new(mocks.MockTaxonomyRepo)
	svc := service.NewTaxonomyService(repo, new(mocks.MockPermissionCache))
	tenantID := uuid.New()
	f := newTaxonomyFixture(tenantID)

	repo.On("GetByID", mock.Anything, tenantID, domain.LevelService, f.svc).Return(&f.tax.Services[0], nil)
	repo.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)

	_, err := svc.Create(context.Background(), tenantID, service.CreateNodeInput{
		Level: domain.LevelSubService, ParentID: &f.svc, Code: "sec.eval.approve", NameAR: "x",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaxonomyService_Create_ParentRules(t *testing.T) {
	repo := new(mocks.MockTaxonomyRepo)
	svc := service.NewTaxonomyService(repo, new(mocks.MockPermissionCache))
	tenantID := uuid.New()

	_, err := svc.Create(context.Background(), tenantID, service.CreateNodeInput{Level: domain.LevelSubSubService, Code: "X", NameAR: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), tenantID, service.CreateNodeInput{Level: "division", Code: "X", NameAR: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)
}

func TestTaxonomyService_Create_Service(t *testing.T) {
	repo := new(mocks.MockTaxonomyRepo)
	svc := service.NewTaxonomyService(repo, new(mocks.MockPermissionCache))
	tenantID := uuid.New()

	repo.On("GetTree", mock.Anything, tenantID).Return(&domain.Taxonomy{}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.TaxonomyNode) bool {
		return n.Code == "FIRE" && n.Level == domain.LevelService && n.IsActive
	})).Return(nil)

	node, err := svc.Create(context.Background(), tenantID, service.CreateNodeInput{Level: domain.LevelService, Code: " FIRE ", NameAR: "الحريق"})

	require.NoError(t, err)
	assert.Equal(t, "FIRE", node.Code)
}

func TestTaxonomyService_Tree_Nests(t *testing.T) {
	repo := new(mocks.MockTaxonomyRepo)
	svc := service.NewTaxonomyService(repo, new(mocks.MockPermissionCache))
	tenantID := uuid.New()
	f := newTaxonomyFixture(tenantID)
	repo.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)

	tree, err := svc.Tree(context.Background(), tenantID)

	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "SEC.EVAL.APPROVE", tree[0].Children[0].Children[0].Code)
	assert.Empty(t, tree[1].Children)
}

func TestTaxonomyService_Delete_InvalidatesTenant(t *testing.T) {
	repo := new(mocks.MockTaxonomyRepo)
	cache := new(mocks.MockPermissionCache)
	svc := service.NewTaxonomyService(repo, cache)
	tenantID, id := uuid.New(), uuid.New()

	repo.On("Delete", mock.Anything, tenantID, domain.LevelSubService, id).Return(nil)
	cache.On("InvalidateTenant", mock.Anything, tenantID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), tenantID, domain.LevelSubService, id))
	cache.AssertExpectations(t)
}
