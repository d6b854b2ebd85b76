package handler

import (
	"github.com/google/uuid"

	"hejazi/internal/domain"
	"hejazi/internal/service"
)

// Swagger type definitions for API documentation. The request types that
// handlers bind directly carry binding tags.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"hejazi"`
	Email      string `json:"email" binding:"required" example:"admin@hejazi.sa"`
	Password   string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ProviderLoginRequest represents the Firebase login request body.
type ProviderLoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"hejazi"`
	IDToken    string `json:"id_token" binding:"required" example:"eyJhbGciOiJSUzI1NiIsImtpZCI6..."`
}

// CreateTenantRequest represents the create tenant request body.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required" example:"Hejazi Security"`
	Slug string `json:"slug" binding:"required" example:"hejazi"`
}

// UpdateTenantRequest represents the update tenant request body.
type UpdateTenantRequest struct {
	Name     *string `json:"name" example:"Hejazi Security Services"`
	Slug     *string `json:"slug" example:"hejazi-ss"`
	IsActive *bool   `json:"is_active" example:"true"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email          string          `json:"email" binding:"required" example:"inspector@hejazi.sa"`
	Password       string          `json:"password" binding:"required" example:"securepassword123"`
	FullName       string          `json:"full_name" binding:"required" example:"Faisal Al-Harbi"`
	Phone          string          `json:"phone" example:"+966500000000"`
	EmployeeNumber string          `json:"employee_number" example:"E-1042"`
	Role           domain.UserRole `json:"role" binding:"required" example:"member"`
	JobID          *uuid.UUID      `json:"job_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	FullName *string          `json:"full_name" example:"Faisal Al-Harbi"`
	Phone    *string          `json:"phone" example:"+966500000000"`
	Role     *domain.UserRole `json:"role" example:"admin"`
	JobID    *uuid.UUID       `json:"job_id"`
	ClearJob bool             `json:"clear_job" example:"false"`
	IsActive *bool            `json:"is_active" example:"true"`
}

// UpdateProfileRequest represents the update profile request body.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" example:"Faisal Al-Harbi"`
	Phone    *string `json:"phone" example:"+966500000000"`
}

// FavoritesRequest carries the caller's favorite service codes.
type FavoritesRequest struct {
	Codes []string `json:"codes" example:"SEC,SEC.EVAL"`
}

// PermissionsRequest carries a full permission set to store.
type PermissionsRequest struct {
	Permissions []service.PermissionEntry `json:"permissions" binding:"dive"`
}

// RiskStatusRequest carries a new risk status.
type RiskStatusRequest struct {
	Status domain.RiskStatus `json:"status" binding:"required" example:"mitigated"`
}

// --- Response Types ---

// ScoreResponse is the result of a score recompute.
type ScoreResponse struct {
	CompanyID uuid.UUID `json:"company_id"`
	Score     float64   `json:"score" example:"87.5"`
}

// MailtoResponse carries a ready-to-open mailto link.
type MailtoResponse struct {
	MailtoURL string `json:"mailto_url" example:"mailto:ops@guard.sa?subject=Violation%20notice%3A%20Gate%20left%20open"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
