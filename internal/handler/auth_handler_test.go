package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hejazi/internal/domain"
	"hejazi/internal/handler"
	"hejazi/internal/service"
	"hejazi/mocks"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockSvc)
	pair := &service.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour)}
	mockSvc.On("Login", mock.Anything, service.LoginInput{
		TenantSlug: "hejazi", Email: "admin@hejazi.sa", Password: "securepassword123",
	}).Return(pair, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"tenant_slug": "hejazi", "email": "admin@hejazi.sa", "password": "securepassword123",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data, _ := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "a", data["access_token"])
	mockSvc.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockSvc)
	mockSvc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"tenant_slug": "hejazi", "email": "admin@hejazi.sa", "password": "wrongpassword",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, w).Error.Code)
}

func TestAuthHandler_Login_BadEmail(t *testing.T) {
	h := handler.NewAuthHandler(new(mocks.MockAuthService))

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"tenant_slug": "hejazi", "email": "not-an-email", "password": "securepassword123",
	})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ProviderLogin_Disabled(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockSvc)
	mockSvc.On("ProviderLogin", mock.Anything, mock.Anything).Return(nil, domain.ErrProviderLoginDisabled)

	c, w := newContext(http.MethodPost, "/api/v1/auth/provider", map[string]string{
		"tenant_slug": "hejazi", "id_token": "tok",
	})
	h.ProviderLogin(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PROVIDER_LOGIN_DISABLED", decode(t, w).Error.Code)
}

func TestAuthHandler_RefreshToken_Expired(t *testing.T) {
	mockSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockSvc)
	mockSvc.On("RefreshToken", mock.Anything, "old").Return(nil, domain.ErrUnauthorized)

	c, w := newContext(http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": "old"})
	h.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
