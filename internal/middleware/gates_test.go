package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/middleware"
	"hejazi/mocks"
)

func gatedRouter(identity gin.HandlerFunc, gate gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(identity, gate)
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAppGate_LockedBlocksMembers(t *testing.T) {
	tenantID := uuid.New()
	appSec := new(mocks.MockAppSecurityService)
	appSec.On("Get", mock.Anything, tenantID).
		Return(&domain.AppSecurity{TenantID: tenantID, IsLocked: true, Message: "صيانة مجدولة"}, nil)

	r := gatedRouter(withIdentity(tenantID, uuid.New(), domain.RoleMember), middleware.AppGate(appSec))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "APP_LOCKED", errorCode(t, w))
	assert.Contains(t, w.Body.String(), "صيانة مجدولة")
}

func TestAppGate_LockedDefaultMessage(t *testing.T) {
	tenantID := uuid.New()
	appSec := new(mocks.MockAppSecurityService)
	appSec.On("Get", mock.Anything, tenantID).Return(&domain.AppSecurity{TenantID: tenantID, IsLocked: true}, nil)

	r := gatedRouter(withIdentity(tenantID, uuid.New(), domain.RoleMember), middleware.AppGate(appSec))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "locked by an administrator")
}

func TestAppGate_AdminBypassesLock(t *testing.T) {
	appSec := new(mocks.MockAppSecurityService)

	r := gatedRouter(withIdentity(uuid.New(), uuid.New(), domain.RoleAdmin), middleware.AppGate(appSec))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	appSec.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAppGate_UnlockedPasses(t *testing.T) {
	tenantID := uuid.New()
	appSec := new(mocks.MockAppSecurityService)
	appSec.On("Get", mock.Anything, tenantID).Return(&domain.AppSecurity{TenantID: tenantID}, nil)

	r := gatedRouter(withIdentity(tenantID, uuid.New(), domain.RoleMember), middleware.AppGate(appSec))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAppGate_LookupErrorFailsClosed(t *testing.T) {
	tenantID := uuid.New()
	appSec := new(mocks.MockAppSecurityService)
	appSec.On("Get", mock.Anything, tenantID).Return(nil, errors.New("connection refused"))

	r := gatedRouter(withIdentity(tenantID, uuid.New(), domain.RoleMember), middleware.AppGate(appSec))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
}

func TestRequireService_Allowed(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()
	perms := new(mocks.MockPermissionService)
	perms.On("IsAllowed", mock.Anything, tenantID, userID, "SEC.EVAL").Return(true, nil)

	r := gatedRouter(withIdentity(tenantID, userID, domain.RoleMember), middleware.RequireService(perms, "SEC.EVAL"))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	perms.AssertExpectations(t)
}

func TestRequireService_Denied(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()
	perms := new(mocks.MockPermissionService)
	perms.On("IsAllowed", mock.Anything, tenantID, userID, "SEC.VIOL").Return(false, nil)

	r := gatedRouter(withIdentity(tenantID, userID, domain.RoleMember), middleware.RequireService(perms, "SEC.VIOL"))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "SERVICE_NOT_ALLOWED", errorCode(t, w))
}

func TestRequireService_AdminBypass(t *testing.T) {
	perms := new(mocks.MockPermissionService)

	r := gatedRouter(withIdentity(uuid.New(), uuid.New(), domain.RoleAdmin), middleware.RequireService(perms, "SAFE.RISK"))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	perms.AssertNotCalled(t, "IsAllowed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequireService_LookupError(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()
	perms := new(mocks.MockPermissionService)
	perms.On("IsAllowed", mock.Anything, tenantID, userID, "SAFE.INSP").Return(false, errors.New("db down"))

	r := gatedRouter(withIdentity(tenantID, userID, domain.RoleMember), middleware.RequireService(perms, "SAFE.INSP"))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireService_MissingIdentity(t *testing.T) {
	perms := new(mocks.MockPermissionService)

	r := gatedRouter(func(c *gin.Context) { c.Next() }, middleware.RequireService(perms, "SEC.EVAL"))
	w := serve(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
