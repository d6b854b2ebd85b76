package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/config"
	"hejazi/internal/domain"
	"hejazi/internal/handler"
	"hejazi/internal/router"
	"hejazi/internal/service"
	"hejazi/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	engine   *gin.Engine
	auth     *mocks.MockAuthService
	perms    *mocks.MockPermissionService
	security *mocks.MockAppSecurityService
	stats    *mocks.MockStatsService
	company  *mocks.MockCompanyService
	tenants  *mocks.MockTenantService
	tenantID uuid.UUID
}

func newHarness() *harness {
	h := &harness{
		auth:     new(mocks.MockAuthService),
		perms:    new(mocks.MockPermissionService),
		security: new(mocks.MockAppSecurityService),
		stats:    new(mocks.MockStatsService),
		company:  new(mocks.MockCompanyService),
		tenants:  new(mocks.MockTenantService),
		tenantID: uuid.New(),
	}

	handlers := router.Handlers{
		Health:      handler.NewHealthHandler(nil),
		Auth:        handler.NewAuthHandler(h.auth),
		Tenant:      handler.NewTenantHandler(h.tenants),
		User:        handler.NewUserHandler(new(mocks.MockUserService)),
		Profile:     handler.NewProfileHandler(new(mocks.MockProfileService)),
		Job:         handler.NewJobHandler(new(mocks.MockJobService)),
		Taxonomy:    handler.NewTaxonomyHandler(new(mocks.MockTaxonomyService)),
		Permission:  handler.NewPermissionHandler(h.perms),
		Company:     handler.NewCompanyHandler(h.company),
		Question:    handler.NewQuestionHandler(new(mocks.MockQuestionService)),
		Evaluation:  handler.NewEvaluationHandler(new(mocks.MockEvaluationService)),
		Violation:   handler.NewViolationHandler(new(mocks.MockViolationService)),
		Location:    handler.NewLocationHandler(new(mocks.MockLocationService)),
		Inspection:  handler.NewInspectionHandler(new(mocks.MockInspectionService)),
		Risk:        handler.NewRiskHandler(new(mocks.MockRiskService)),
		AppSecurity: handler.NewAppSecurityHandler(h.security),
		Stats:       handler.NewStatsHandler(h.stats),
	}
	guards := router.Guards{Auth: h.auth, Permissions: h.perms, AppSecurity: h.security}
	opts := router.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		Gates:          config.GatesConfig{Evaluations: "SEC.EVAL", Violations: "SEC.VIOL", Inspections: "SEC.INSP", Risks: "SEC.RISK"},
	}
	h.engine = router.Setup(opts, guards, handlers)
	return h
}

// token registers a bearer token for a caller with the given role.
func (h *harness) token(role domain.UserRole) (string, uuid.UUID) {
	return h.register(&service.Claims{Role: role})
}

// operatorToken registers a token for an admin holding the platform flag.
func (h *harness) operatorToken() (string, uuid.UUID) {
	return h.register(&service.Claims{Role: domain.RoleAdmin, PlatformAdmin: true})
}

func (h *harness) register(claims *service.Claims) (string, uuid.UUID) {
	claims.TenantID = h.tenantID
	claims.UserID = uuid.New()
	claims.Email = "u@hejazi.sa"
	tok := "tok-" + claims.UserID.String()
	h.auth.On("ValidateToken", tok).Return(claims, nil)
	return tok, claims.UserID
}

func (h *harness) do(method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	h.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_Healthz(t *testing.T) {
	h := newHarness()

	w := h.do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_ProtectedNeedsToken(t *testing.T) {
	h := newHarness()

	w := h.do(http.MethodGet, "/api/v1/stats", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_LockedTenantBlocksMembers(t *testing.T) {
	h := newHarness()
	tok, _ := h.token(domain.RoleMember)
	h.security.On("Get", mock.Anything, h.tenantID).
		Return(&domain.AppSecurity{TenantID: h.tenantID, IsLocked: true, Message: "closed for audit"}, nil)

	w := h.do(http.MethodGet, "/api/v1/stats", tok)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "APP_LOCKED")
	assert.Contains(t, w.Body.String(), "closed for audit")
	h.stats.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything)
}

func TestRouter_LockedTenantLetsAdminsThrough(t *testing.T) {
	h := newHarness()
	tok, _ := h.token(domain.RoleAdmin)
	h.stats.On("GetStats", mock.Anything, h.tenantID).Return(&domain.Stats{}, nil)

	w := h.do(http.MethodGet, "/api/v1/stats", tok)

	assert.Equal(t, http.StatusOK, w.Code)
	h.security.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRouter_AdminGroup(t *testing.T) {
	h := newHarness()
	adminTok, _ := h.token(domain.RoleAdmin)
	memberTok, _ := h.token(domain.RoleMember)
	h.security.On("Get", mock.Anything, h.tenantID).
		Return(&domain.AppSecurity{TenantID: h.tenantID, IsLocked: true}, nil)

	w := h.do(http.MethodGet, "/api/v1/admin/app-security", adminTok)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/v1/admin/app-security", memberTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_ServiceGate(t *testing.T) {
	h := newHarness()
	tok, userID := h.token(domain.RoleMember)
	h.security.On("Get", mock.Anything, h.tenantID).Return(&domain.AppSecurity{TenantID: h.tenantID}, nil)
	h.perms.On("IsAllowed", mock.Anything, h.tenantID, userID, "SEC.EVAL").Return(false, nil)

	w := h.do(http.MethodGet, "/api/v1/companies", tok)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "SERVICE_NOT_ALLOWED")
	h.company.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_ServiceGateAllows(t *testing.T) {
	h := newHarness()
	tok, userID := h.token(domain.RoleMember)
	h.security.On("Get", mock.Anything, h.tenantID).Return(&domain.AppSecurity{TenantID: h.tenantID}, nil)
	h.perms.On("IsAllowed", mock.Anything, h.tenantID, userID, "SEC.EVAL").Return(true, nil)
	h.company.On("List", mock.Anything, h.tenantID, false, 0, 20).Return([]service.CompanyView{}, 0, nil)

	w := h.do(http.MethodGet, "/api/v1/companies", tok)

	assert.Equal(t, http.StatusOK, w.Code)
	h.company.AssertExpectations(t)
}

func TestRouter_AppGateFailsClosed(t *testing.T) {
	h := newHarness()
	tok, _ := h.token(domain.RoleMember)
	h.security.On("Get", mock.Anything, h.tenantID).Return(nil, errors.New("db down"))

	w := h.do(http.MethodGet, "/api/v1/me/permissions", tok)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_TenantAdminCannotManageOtherTenants(t *testing.T) {
	h := newHarness()
	tok, _ := h.token(domain.RoleAdmin)
	other := uuid.New()

	for _, tc := range []struct{ method, path string }{
		{http.MethodDelete, "/api/v1/admin/tenants/" + other.String()},
		{http.MethodGet, "/api/v1/admin/tenants/" + other.String()},
		{http.MethodGet, "/api/v1/admin/tenants"},
	} {
		w := h.do(tc.method, tc.path, tok)

		assert.Equal(t, http.StatusForbidden, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), "PLATFORM_ADMIN_REQUIRED")
	}
	h.tenants.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	h.tenants.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	h.tenants.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_PlatformAdminDeletesTenant(t *testing.T) {
	h := newHarness()
	tok, _ := h.operatorToken()
	other := uuid.New()
	h.tenants.On("Delete", mock.Anything, h.tenantID, other).Return(nil)

	w := h.do(http.MethodDelete, "/api/v1/admin/tenants/"+other.String(), tok)

	assert.Equal(t, http.StatusOK, w.Code)
	h.tenants.AssertExpectations(t)
}
