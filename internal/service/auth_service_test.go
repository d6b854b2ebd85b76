package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hejazi/internal/config"
	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/service"
	"hejazi/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "hejazi-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func activeTenant() *domain.Tenant {
	return &domain.Tenant{ID: uuid.New(), Name: "Hejazi", Slug: "hejazi", IsActive: true}
}

func TestAuthService_Login_Success(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "guard@hejazi.sa",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleMember,
		IsActive:     true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "guard@hejazi.sa").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "hejazi",
		Email:      "guard@hejazi.sa",
		Password:   "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, tenant.ID, claims.TenantID)
	assert.Equal(t, domain.RoleMember, claims.Role)
	assert.False(t, claims.PlatformAdmin)

	tenantRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "guard@hejazi.sa",
		PasswordHash: hashPassword("correct-password"),
		IsActive:     true,
	}
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "guard@hejazi.sa").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "hejazi",
		Email:      "guard@hejazi.sa",
		Password:   "wrong-password",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownTenant(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	tenantRepo.On("GetBySlug", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{TenantSlug: "nope", Email: "a@b.sa", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_InactiveTenant(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	tenant := activeTenant()
	tenant.IsActive = false
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{TenantSlug: "hejazi", Email: "a@b.sa", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	tenant := activeTenant()
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, PasswordHash: hashPassword("password123")}
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "a@b.sa").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{TenantSlug: "hejazi", Email: "a@b.sa", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "a@b.sa",
		PasswordHash: hashPassword("password123"),
		IsActive:     true,
	}
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "a@b.sa").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, tenant.ID, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{TenantSlug: "hejazi", Email: "a@b.sa", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_PlatformFlagFollowsUserRecord(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	tenant := activeTenant()
	operator := &domain.User{
		ID:              uuid.New(),
		TenantID:        tenant.ID,
		Email:           "ops@hejazi.sa",
		PasswordHash:    hashPassword("password123"),
		Role:            domain.RoleAdmin,
		IsActive:        true,
		IsPlatformAdmin: true,
	}
	revoked := *operator
	revoked.IsPlatformAdmin = false
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ops@hejazi.sa").Return(operator, nil)
	userRepo.On("GetByID", mock.Anything, tenant.ID, operator.ID).Return(&revoked, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{TenantSlug: "hejazi", Email: "ops@hejazi.sa", Password: "password123"})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.PlatformAdmin)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	claims, err = svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.False(t, claims.PlatformAdmin)
}

func TestAuthService_TokenAudiencesAreNotInterchangeable(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	tenant := activeTenant()
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, Email: "a@b.sa", PasswordHash: hashPassword("password123"), IsActive: true}
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "a@b.sa").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{TenantSlug: "hejazi", Email: "a@b.sa", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	signer := service.NewAuthService(userRepo, tenantRepo, nil, testJWTConfig())

	other := testJWTConfig()
	other.Secret = "a-different-secret"
	verifier := service.NewAuthService(userRepo, tenantRepo, nil, other)

	tenant := activeTenant()
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, Email: "a@b.sa", PasswordHash: hashPassword("password123"), IsActive: true}
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "a@b.sa").Return(user, nil)

	pair, err := signer.Login(context.Background(), service.LoginInput{TenantSlug: "hejazi", Email: "a@b.sa", Password: "password123"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_ProviderLogin_Disabled(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), new(mocks.MockTenantRepo), nil, testJWTConfig())

	_, err := svc.ProviderLogin(context.Background(), service.ProviderLoginInput{TenantSlug: "hejazi", IDToken: "tok"})

	assert.ErrorIs(t, err, domain.ErrProviderLoginDisabled)
}

func TestAuthService_ProviderLogin_LinksExistingUser(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	verifier := new(mocks.MockIdentityVerifier)
	svc := service.NewAuthService(userRepo, tenantRepo, verifier, testJWTConfig())

	tenant := activeTenant()
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, Email: "guard@hejazi.sa", IsActive: true}

	verifier.On("VerifyIDToken", mock.Anything, "tok").Return(&port.IdentityClaims{
		UID:           "fb-uid-1",
		Email:         "Guard@Hejazi.sa",
		EmailVerified: true,
	}, nil)
	verifier.On("Provider").Return("firebase")
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "guard@hejazi.sa").Return(user, nil)
	userRepo.On("SetFirebaseUID", mock.Anything, tenant.ID, user.ID, "fb-uid-1").Return(nil)

	pair, err := svc.ProviderLogin(context.Background(), service.ProviderLoginInput{TenantSlug: "hejazi", IDToken: "tok"})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_ProviderLogin_AlreadyLinkedSkipsUpdate(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	verifier := new(mocks.MockIdentityVerifier)
	svc := service.NewAuthService(userRepo, tenantRepo, verifier, testJWTConfig())

	tenant := activeTenant()
	uid := "fb-uid-1"
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, Email: "a@b.sa", IsActive: true, FirebaseUID: &uid}

	verifier.On("VerifyIDToken", mock.Anything, "tok").Return(&port.IdentityClaims{UID: uid, Email: "a@b.sa", EmailVerified: true}, nil)
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "a@b.sa").Return(user, nil)

	_, err := svc.ProviderLogin(context.Background(), service.ProviderLoginInput{TenantSlug: "hejazi", IDToken: "tok"})

	require.NoError(t, err)
	userRepo.AssertNotCalled(t, "SetFirebaseUID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ProviderLogin_NoSelfSignUp(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	verifier := new(mocks.MockIdentityVerifier)
	svc := service.NewAuthService(userRepo, tenantRepo, verifier, testJWTConfig())

	tenant := activeTenant()
	verifier.On("VerifyIDToken", mock.Anything, "tok").Return(&port.IdentityClaims{UID: "x", Email: "new@b.sa", EmailVerified: true}, nil)
	tenantRepo.On("GetBySlug", mock.Anything, "hejazi").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "new@b.sa").Return(nil, domain.ErrNotFound)

	_, err := svc.ProviderLogin(context.Background(), service.ProviderLoginInput{TenantSlug: "hejazi", IDToken: "tok"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_ProviderLogin_RejectsBadTokens(t *testing.T) {
	cases := []struct {
		name   string
		claims *port.IdentityClaims
		err    error
	}{
		{"verify error", nil, errors.New("expired")},
		{"unverified email", &port.IdentityClaims{UID: "x", Email: "a@b.sa"}, nil},
		{"no email", &port.IdentityClaims{UID: "x", EmailVerified: true}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := new(mocks.MockIdentityVerifier)
			svc := service.NewAuthService(new(mocks.MockUserRepo), new(mocks.MockTenantRepo), verifier, testJWTConfig())
			verifier.On("VerifyIDToken", mock.Anything, "tok").Return(tc.claims, tc.err)

			_, err := svc.ProviderLogin(context.Background(), service.ProviderLoginInput{TenantSlug: "hejazi", IDToken: "tok"})

			assert.ErrorIs(t, err, domain.ErrProviderTokenInvalid)
		})
	}
}
