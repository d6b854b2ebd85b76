package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/service"
	"hejazi/mocks"
)

func ptr[T any](v T) *T { return &v }

func TestUserService_GetByID_SelfOrAdmin(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, new(mocks.MockJobRepo), new(mocks.MockPermissionCache))
	tenantID, self, other := uuid.New(), uuid.New(), uuid.New()

	_, err := svc.GetByID(context.Background(), tenantID, self, domain.RoleMember, other)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.On("GetByID", mock.Anything, tenantID, other).Return(&domain.User{ID: other}, nil)
	u, err := svc.GetByID(context.Background(), tenantID, self, domain.RoleAdmin, other)
	require.NoError(t, err)
	assert.Equal(t, other, u.ID)
}

func TestUserService_Update_MemberCannotChangeRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, new(mocks.MockJobRepo), new(mocks.MockPermissionCache))
	tenantID, self := uuid.New(), uuid.New()

	_, err := svc.Update(context.Background(), tenantID, self, domain.RoleMember, self, service.UpdateUserInput{
		Role: ptr(domain.RoleAdmin),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_UnknownRoleIsValidationError(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, new(mocks.MockJobRepo), new(mocks.MockPermissionCache))
	tenantID, adminID, userID := uuid.New(), uuid.New(), uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID, TenantID: tenantID, Role: domain.RoleMember}, nil)

	_, err := svc.Update(context.Background(), tenantID, adminID, domain.RoleAdmin, userID, service.UpdateUserInput{
		Role: ptr(domain.UserRole("owner")),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrInsufficientRole)

	_, err = svc.Create(context.Background(), tenantID, service.CreateUserInput{
		Email: "new@hejazi.sa", Password: "password123", FullName: "New", Role: "owner",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Update_MemberEditsOwnPhone(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	cache := new(mocks.MockPermissionCache)
	svc := service.NewUserService(repo, new(mocks.MockJobRepo), cache)
	tenantID, self := uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, tenantID, self).Return(&domain.User{ID: self}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool { return u.Phone == "+966500000000" })).Return(nil)

	_, err := svc.Update(context.Background(), tenantID, self, domain.RoleMember, self, service.UpdateUserInput{
		Phone: ptr("+966500000000"),
	})

	require.NoError(t, err)
	cache.AssertNotCalled(t, "InvalidateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Update_JobChangeInvalidatesCache(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	jobs := new(mocks.MockJobRepo)
	cache := new(mocks.MockPermissionCache)
	svc := service.NewUserService(repo, jobs, cache)
	tenantID, adminID, userID, jobID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID}, nil)
	jobs.On("GetByID", mock.Anything, tenantID, jobID).Return(&domain.Job{ID: jobID}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool { return u.JobID != nil && *u.JobID == jobID })).Return(nil)
	cache.On("InvalidateUser", mock.Anything, tenantID, userID).Return(nil)

	_, err := svc.Update(context.Background(), tenantID, adminID, domain.RoleAdmin, userID, service.UpdateUserInput{JobID: &jobID})

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestUserService_List_ValidatesFilter(t *testing.T) {
	repo, jobs := new(mocks.MockUserRepo), new(mocks.MockJobRepo)
	svc := service.NewUserService(repo, jobs, new(mocks.MockPermissionCache))
	tenantID, jobID := uuid.New(), uuid.New()

	_, _, err := svc.List(context.Background(), tenantID, port.UserFilter{Role: ptr(domain.UserRole("root"))}, 0, 20)
	assert.ErrorIs(t, err, domain.ErrValidation)

	jobs.On("GetByID", mock.Anything, tenantID, jobID).Return(nil, domain.ErrNotFound).Once()
	_, _, err = svc.List(context.Background(), tenantID, port.UserFilter{JobID: &jobID}, 0, 20)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	filter := port.UserFilter{JobID: &jobID, ActiveOnly: true}
	jobs.On("GetByID", mock.Anything, tenantID, jobID).Return(&domain.Job{ID: jobID}, nil)
	repo.On("List", mock.Anything, tenantID, filter, 0, 20).Return([]domain.User{{ID: uuid.New()}}, 1, nil)
	users, total, err := svc.List(context.Background(), tenantID, filter, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, users, 1)
}
