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

func TestAppSecurityHandler_Set(t *testing.T) {
	mockSvc := new(mocks.MockAppSecurityService)
	h := handler.NewAppSecurityHandler(mockSvc)
	tenantID, adminID := uuid.New(), uuid.New()
	input := service.SetAppSecurityInput{IsLocked: true, Message: "maintenance"}
	mockSvc.On("Set", mock.Anything, tenantID, adminID, input).
		Return(&domain.AppSecurity{TenantID: tenantID, IsLocked: true, Message: "maintenance", UpdatedBy: &adminID}, nil)

	c, w := newContext(http.MethodPut, "/api/v1/admin/app-security", map[string]interface{}{"is_locked": true, "message": "maintenance"})
	setAuth(c, tenantID, adminID, domain.RoleAdmin)
	h.Set(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data, _ := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, true, data["is_locked"])
	mockSvc.AssertExpectations(t)
}

func TestAppSecurityHandler_Get_Default(t *testing.T) {
	mockSvc := new(mocks.MockAppSecurityService)
	h := handler.NewAppSecurityHandler(mockSvc)
	tenantID := uuid.New()
	mockSvc.On("Get", mock.Anything, tenantID).Return(&domain.AppSecurity{TenantID: tenantID}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/admin/app-security", nil)
	setAuth(c, tenantID, uuid.New(), domain.RoleAdmin)
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
