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

func TestTenantService_Create_NormalizesSlug(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(tn *domain.Tenant) bool {
		return tn.Slug == "riyadh-hq" && tn.Name == "Riyadh HQ" && tn.IsActive
	})).Return(nil)

	tenant, err := svc.Create(context.Background(), service.CreateTenantInput{Name: "  Riyadh HQ ", Slug: " Riyadh-HQ "})

	require.NoError(t, err)
	assert.Equal(t, "riyadh-hq", tenant.Slug)
	repo.AssertExpectations(t)
}

func TestTenantService_Create_RejectsBadSlug(t *testing.T) {
	for _, slug := range []string{"", "two words", "trailing-", "--", "ü"} {
		t.Run(slug, func(t *testing.T) {
			repo := new(mocks.MockTenantRepo)
			svc := service.NewTenantService(repo)

			_, err := svc.Create(context.Background(), service.CreateTenantInput{Name: "X", Slug: slug})

			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTenantService_Update_CannotDeactivateOwnTenant(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo)
	id := uuid.New()
	inactive := false

	_, err := svc.Update(context.Background(), id, id, service.UpdateTenantInput{IsActive: &inactive})

	assert.ErrorIs(t, err, domain.ErrOwnTenant)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTenantService_Update_AppliesFields(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Tenant{ID: id, Name: "Old", Slug: "old", IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Tenant")).Return(nil)
	name, slug, inactive := "New", "NEW-slug", false

	tenant, err := svc.Update(context.Background(), uuid.New(), id, service.UpdateTenantInput{Name: &name, Slug: &slug, IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, "New", tenant.Name)
	assert.Equal(t, "new-slug", tenant.Slug)
	assert.False(t, tenant.IsActive)
}

func TestTenantService_Delete(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo)
	own, other := uuid.New(), uuid.New()
	repo.On("Delete", mock.Anything, other).Return(nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), own, own), domain.ErrOwnTenant)
	assert.NoError(t, svc.Delete(context.Background(), own, other))
	repo.AssertExpectations(t)
}
