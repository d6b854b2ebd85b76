package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hejazi/internal/cache/noop"
	"hejazi/internal/domain"
	"hejazi/internal/permission"
	"hejazi/internal/service"
	"hejazi/mocks"
)

// taxonomyFixture is SEC > SEC.EVAL > SEC.EVAL.APPROVE plus a lone OPS service.
type taxonomyFixture struct {
	tax                *domain.Taxonomy
	svc, sub, leaf, op uuid.UUID
}

func newTaxonomyFixture(tenantID uuid.UUID) taxonomyFixture {
	f := taxonomyFixture{svc: uuid.New(), sub: uuid.New(), leaf: uuid.New(), op: uuid.New()}
	f.tax = &domain.Taxonomy{
		Services: []domain.TaxonomyNode{
			{ID: f.svc, TenantID: tenantID, Level: domain.LevelService, Code: "SEC", SortOrder: 1, IsActive: true},
			{ID: f.op, TenantID: tenantID, Level: domain.LevelService, Code: "OPS", SortOrder: 2, IsActive: true},
		},
		SubServices: []domain.TaxonomyNode{
			{ID: f.sub, TenantID: tenantID, Level: domain.LevelSubService, ParentID: &f.svc, Code: "SEC.EVAL", IsActive: true},
		},
		SubSubServices: []domain.TaxonomyNode{
			{ID: f.leaf, TenantID: tenantID, Level: domain.LevelSubSubService, ParentID: &f.sub, Code: "SEC.EVAL.APPROVE", IsActive: true},
		},
	}
	return f
}

type permissionDeps struct {
	perm  *mocks.MockPermissionRepo
	tax   *mocks.MockTaxonomyRepo
	users *mocks.MockUserRepo
	jobs  *mocks.MockJobRepo
	cache *mocks.MockPermissionCache
}

func newPermissionDeps() permissionDeps {
	return permissionDeps{
		perm:  new(mocks.MockPermissionRepo),
		tax:   new(mocks.MockTaxonomyRepo),
		users: new(mocks.MockUserRepo),
		jobs:  new(mocks.MockJobRepo),
		cache: new(mocks.MockPermissionCache),
	}
}

func (d permissionDeps) service() service.PermissionService {
	return service.NewPermissionService(d.perm, d.tax, d.users, d.jobs, d.cache)
}

func TestPermissionService_Effective_ResolvesJobAndUserRows(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, userID, jobID := uuid.New(), uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)

	d.cache.On("Get", mock.Anything, tenantID, userID).Return(nil, false, nil)
	d.users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID, TenantID: tenantID, Role: domain.RoleMember, JobID: &jobID}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)
	d.perm.On("ListJobPermissions", mock.Anything, tenantID, jobID).Return([]domain.PermissionRow{
		permission.Row(tenantID, jobID, permission.Key{Level: domain.LevelSubSubService, ID: f.leaf}, true),
	}, nil)
	d.perm.On("ListUserPermissions", mock.Anything, tenantID, userID).Return([]domain.PermissionRow{
		permission.Row(tenantID, userID, permission.Key{Level: domain.LevelService, ID: f.op}, true),
	}, nil)
	d.cache.On("Set", mock.Anything, tenantID, userID, mock.AnythingOfType("[]permission.Grant")).Return(nil)

	set, err := svc.Effective(context.Background(), tenantID, userID)

	require.NoError(t, err)
	assert.Equal(t, []string{"SEC", "SEC.EVAL", "SEC.EVAL.APPROVE", "OPS"}, set.AllowedCodes())
	g, ok := set.Get(permission.Key{Level: domain.LevelService, ID: f.svc})
	require.True(t, ok)
	assert.Equal(t, permission.SourceImplied, g.Source)
	d.cache.AssertExpectations(t)
}

func TestPermissionService_Effective_UserDenyShadowsJobGrant(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, userID, jobID := uuid.New(), uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)
	opKey := permission.Key{Level: domain.LevelService, ID: f.op}

	d.cache.On("Get", mock.Anything, tenantID, userID).Return(nil, false, nil)
	d.users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID, Role: domain.RoleMember, JobID: &jobID}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)
	d.perm.On("ListJobPermissions", mock.Anything, tenantID, jobID).Return([]domain.PermissionRow{permission.Row(tenantID, jobID, opKey, true)}, nil)
	d.perm.On("ListUserPermissions", mock.Anything, tenantID, userID).Return([]domain.PermissionRow{permission.Row(tenantID, userID, opKey, false)}, nil)
	d.cache.On("Set", mock.Anything, tenantID, userID, mock.Anything).Return(nil)

	set, err := svc.Effective(context.Background(), tenantID, userID)

	require.NoError(t, err)
	assert.False(t, set.Allowed(opKey))
	g, _ := set.Get(opKey)
	assert.Equal(t, permission.SourceUser, g.Source)
}

func TestPermissionService_Effective_AdminGetsEverything(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, userID := uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)

	d.cache.On("Get", mock.Anything, tenantID, userID).Return(nil, false, nil)
	d.users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID, Role: domain.RoleAdmin}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)
	d.cache.On("Set", mock.Anything, tenantID, userID, mock.Anything).Return(nil)

	set, err := svc.Effective(context.Background(), tenantID, userID)

	require.NoError(t, err)
	assert.Len(t, set.AllowedKeys(), 4)
	d.perm.AssertNotCalled(t, "ListUserPermissions", mock.Anything, mock.Anything, mock.Anything)
}

func TestPermissionService_Effective_CacheHit(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, userID := uuid.New(), uuid.New()
	cached := []permission.Grant{
		{Key: permission.Key{Level: domain.LevelService, ID: uuid.New()}, Code: "SEC", Allowed: true, Source: permission.SourceJob},
	}

	d.cache.On("Get", mock.Anything, tenantID, userID).Return(cached, true, nil)

	allowed, err := svc.IsAllowed(context.Background(), tenantID, userID, "SEC")

	require.NoError(t, err)
	assert.True(t, allowed)
	d.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	d.tax.AssertNotCalled(t, "GetTree", mock.Anything, mock.Anything)
}

func TestPermissionService_Effective_CacheFailureFallsBackToDatabase(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, userID := uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)

	d.cache.On("Get", mock.Anything, tenantID, userID).Return(nil, false, errors.New("connection refused"))
	d.users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID, Role: domain.RoleMember}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)
	d.perm.On("ListUserPermissions", mock.Anything, tenantID, userID).Return([]domain.PermissionRow{}, nil)
	d.cache.On("Set", mock.Anything, tenantID, userID, mock.Anything).Return(errors.New("connection refused"))

	allowed, err := svc.IsAllowed(context.Background(), tenantID, userID, "SEC")

	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermissionService_SaveJobPermissions_DropsDeniesAndInvalidatesTenant(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, jobID := uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)

	d.jobs.On("GetByID", mock.Anything, tenantID, jobID).Return(&domain.Job{ID: jobID}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)
	d.perm.On("ReplaceJobPermissions", mock.Anything, tenantID, jobID, mock.MatchedBy(func(rows []domain.PermissionRow) bool {
		return len(rows) == 1 && rows[0].SubSubServiceID != nil && *rows[0].SubSubServiceID == f.leaf && rows[0].IsAllowed
	})).Return(nil)
	d.cache.On("InvalidateTenant", mock.Anything, tenantID).Return(nil)

	err := svc.SaveJobPermissions(context.Background(), tenantID, jobID, []service.PermissionEntry{
		{Level: domain.LevelSubSubService, ResourceID: f.leaf, IsAllowed: true},
		{Level: domain.LevelService, ResourceID: f.op, IsAllowed: false},
	})

	require.NoError(t, err)
	d.perm.AssertExpectations(t)
	d.cache.AssertExpectations(t)
}

func TestPermissionService_SaveJobPermissions_UnknownResource(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, jobID := uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)

	d.jobs.On("GetByID", mock.Anything, tenantID, jobID).Return(&domain.Job{ID: jobID}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)

	err := svc.SaveJobPermissions(context.Background(), tenantID, jobID, []service.PermissionEntry{
		{Level: domain.LevelSubService, ResourceID: f.leaf, IsAllowed: true},
	})

	assert.ErrorIs(t, err, domain.ErrUnknownResource)
	d.perm.AssertNotCalled(t, "ReplaceJobPermissions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPermissionService_SaveUserExceptions_KeepsDenies(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, userID := uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)

	d.users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)
	d.perm.On("ReplaceUserPermissions", mock.Anything, tenantID, userID, mock.MatchedBy(func(rows []domain.PermissionRow) bool {
		return len(rows) == 1 && !rows[0].IsAllowed && rows[0].ServiceID != nil
	})).Return(nil)
	d.cache.On("InvalidateUser", mock.Anything, tenantID, userID).Return(nil)

	err := svc.SaveUserExceptions(context.Background(), tenantID, userID, []service.PermissionEntry{
		{Level: domain.LevelService, ResourceID: f.op, IsAllowed: false},
	})

	require.NoError(t, err)
	d.perm.AssertExpectations(t)
	d.cache.AssertExpectations(t)
}

func TestPermissionService_UpsertUserException_InvalidLevel(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, userID := uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)

	d.users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)

	err := svc.UpsertUserException(context.Background(), tenantID, userID, service.PermissionEntry{Level: "division", ResourceID: f.op})

	assert.ErrorIs(t, err, domain.ErrInvalidLevel)
}

func TestPermissionService_DeleteUserException(t *testing.T) {
	d := newPermissionDeps()
	svc := d.service()
	tenantID, userID, nodeID := uuid.New(), uuid.New(), uuid.New()

	d.perm.On("DeleteUserPermission", mock.Anything, tenantID, userID, domain.LevelSubService, nodeID).Return(nil)
	d.cache.On("InvalidateUser", mock.Anything, tenantID, userID).Return(nil)

	err := svc.DeleteUserException(context.Background(), tenantID, userID, permission.Key{Level: domain.LevelSubService, ID: nodeID})

	require.NoError(t, err)
	d.perm.AssertExpectations(t)
}

func TestPermissionService_Menu_WithNoopCache(t *testing.T) {
	d := newPermissionDeps()
	svc := service.NewPermissionService(d.perm, d.tax, d.users, d.jobs, noop.NewPermissionCache())
	tenantID, userID := uuid.New(), uuid.New()
	f := newTaxonomyFixture(tenantID)

	d.users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID, Role: domain.RoleMember}, nil)
	d.tax.On("GetTree", mock.Anything, tenantID).Return(f.tax, nil)
	d.perm.On("ListUserPermissions", mock.Anything, tenantID, userID).Return([]domain.PermissionRow{
		permission.Row(tenantID, userID, permission.Key{Level: domain.LevelSubService, ID: f.sub}, true),
	}, nil)

	menu, err := svc.Menu(context.Background(), tenantID, userID)

	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "SEC", menu[0].Code)
	require.Len(t, menu[0].Children, 1)
	assert.Equal(t, "SEC.EVAL", menu[0].Children[0].Code)
	assert.Empty(t, menu[0].Children[0].Children)
}
