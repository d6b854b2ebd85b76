package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/handler"
	"hejazi/internal/service"
	"hejazi/mocks"
)

func newTenantHandler() (*handler.TenantHandler, *mocks.MockTenantService) {
	mockSvc := new(mocks.MockTenantService)
	return handler.NewTenantHandler(mockSvc), mockSvc
}

func TestTenantHandler_Create_Success(t *testing.T) {
	h, mockSvc := newTenantHandler()
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateTenantInput) bool {
		return in.Name == "Hejazi" && in.Slug == "hejazi"
	})).Return(&domain.Tenant{ID: uuid.New(), Name: "Hejazi", Slug: "hejazi", IsActive: true}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/admin/tenants", map[string]string{"name": "Hejazi", "slug": "hejazi"})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(t, w).Success)
	mockSvc.AssertExpectations(t)
}

func TestTenantHandler_Create_MissingSlug(t *testing.T) {
	h, mockSvc := newTenantHandler()

	c, w := newContext(http.MethodPost, "/api/v1/admin/tenants", map[string]string{"name": "Hejazi"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTenantHandler_Create_DuplicateSlug(t *testing.T) {
	h, mockSvc := newTenantHandler()
	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateTenantInput")).
		Return(nil, domain.ErrDuplicateTenantSlug)

	c, w := newContext(http.MethodPost, "/api/v1/admin/tenants", map[string]string{"name": "Hejazi", "slug": "hejazi"})
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_SLUG", decode(t, w).Error.Code)
}

func TestTenantHandler_List_ClampsLimit(t *testing.T) {
	h, mockSvc := newTenantHandler()
	mockSvc.On("List", mock.Anything, 0, 20).Return([]domain.Tenant{{ID: uuid.New()}}, 1, nil)

	c, w := newContext(http.MethodGet, "/api/v1/admin/tenants?offset=-5&limit=500", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	if assert.NotNil(t, resp.Meta) {
		assert.Equal(t, 1, resp.Meta.Total)
		assert.Equal(t, 20, resp.Meta.Limit)
	}
	mockSvc.AssertExpectations(t)
}

func TestTenantHandler_GetByID_InvalidID(t *testing.T) {
	h, _ := newTenantHandler()

	c, w := newContext(http.MethodGet, "/api/v1/admin/tenants/nope", nil)
	setParams(c, "id", "nope")
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestTenantHandler_Delete_NotFound(t *testing.T) {
	h, mockSvc := newTenantHandler()
	id := uuid.New()
	callerTenant := uuid.New()
	mockSvc.On("Delete", mock.Anything, callerTenant, id).Return(domain.ErrNotFound)

	c, w := newContext(http.MethodDelete, "/api/v1/admin/tenants/"+id.String(), nil)
	setAuth(c, callerTenant, uuid.New(), domain.RoleAdmin)
	setParams(c, "id", id.String())
	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTenantHandler_Delete_OwnTenant(t *testing.T) {
	h, mockSvc := newTenantHandler()
	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id, id).Return(domain.ErrOwnTenant)

	c, w := newContext(http.MethodDelete, "/api/v1/admin/tenants/"+id.String(), nil)
	setAuth(c, id, uuid.New(), domain.RoleAdmin)
	setParams(c, "id", id.String())
	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "OWN_TENANT", decode(t, w).Error.Code)
}
