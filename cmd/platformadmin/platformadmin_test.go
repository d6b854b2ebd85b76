package main

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hejazi/internal/domain"
	"hejazi/mocks"
)

func TestApply_GrantsAndRevokes(t *testing.T) {
	tenants, users := new(mocks.MockTenantRepo), new(mocks.MockUserRepo)
	tenant := &domain.Tenant{ID: uuid.New(), Slug: "hejazi", IsActive: true}
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, IsActive: true}
	tenants.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	users.On("GetByEmail", mock.Anything, tenant.ID, "ops@hejazi.sa").Return(user, nil)
	users.On("SetPlatformAdmin", mock.Anything, tenant.ID, user.ID, true).Return(nil).Once()
	users.On("SetPlatformAdmin", mock.Anything, tenant.ID, user.ID, false).Return(nil).Once()

	require.NoError(t, apply(context.Background(), tenants, users, options{tenant: "hejazi", email: "ops@hejazi.sa"}))
	require.NoError(t, apply(context.Background(), tenants, users, options{tenant: "hejazi", email: "ops@hejazi.sa", revoke: true}))
	users.AssertExpectations(t)
}

func TestApply_RefusesInactiveUser(t *testing.T) {
	tenants, users := new(mocks.MockTenantRepo), new(mocks.MockUserRepo)
	tenant := &domain.Tenant{ID: uuid.New(), Slug: "hejazi"}
	tenants.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	users.On("GetByEmail", mock.Anything, tenant.ID, "old@hejazi.sa").Return(&domain.User{ID: uuid.New()}, nil)

	err := apply(context.Background(), tenants, users, options{tenant: "hejazi", email: "old@hejazi.sa"})

	assert.Error(t, err)
	users.AssertNotCalled(t, "SetPlatformAdmin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApply_UnknownTenant(t *testing.T) {
	tenants, users := new(mocks.MockTenantRepo), new(mocks.MockUserRepo)
	tenants.On("GetBySlug", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	err := apply(context.Background(), tenants, users, options{tenant: "nope", email: "a@b.sa"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
