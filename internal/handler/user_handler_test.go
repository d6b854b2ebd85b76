package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/handler"
	"hejazi/internal/port"
	"hejazi/mocks"
)

func TestUserHandler_List_BuildsFilter(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)
	tenantID, jobID := uuid.New(), uuid.New()
	mockSvc.On("List", mock.Anything, tenantID, mock.MatchedBy(func(f port.UserFilter) bool {
		return f.JobID != nil && *f.JobID == jobID && f.Role != nil && *f.Role == domain.RoleMember &&
			f.ActiveOnly && f.Search == "sara"
	}), 0, 20).Return([]domain.User{{ID: uuid.New()}}, 1, nil)

	c, w := newContext(http.MethodGet, "/api/v1/users?job_id="+jobID.String()+"&role=member&active=true&q=sara", nil)
	setAuth(c, tenantID, uuid.New(), domain.RoleAdmin)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_List_BadJobID(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)

	c, w := newContext(http.MethodGet, "/api/v1/users?job_id=nope", nil)
	setAuth(c, uuid.New(), uuid.New(), domain.RoleAdmin)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestUserHandler_GetByID_ForbiddenForOtherMember(t *testing.T) {
	mockSvc := new(mocks.MockUserService)
	h := handler.NewUserHandler(mockSvc)
	tenantID, callerID, other := uuid.New(), uuid.New(), uuid.New()
	mockSvc.On("GetByID", mock.Anything, tenantID, callerID, domain.RoleMember, other).Return(nil, domain.ErrForbidden)

	c, w := newContext(http.MethodGet, "/api/v1/users/"+other.String(), nil)
	setAuth(c, tenantID, callerID, domain.RoleMember)
	setParams(c, "id", other.String())
	h.GetByID(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
