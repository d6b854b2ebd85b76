package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable is checked in order; the first match wins.
var errorTable = []errorMapping{
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrTenantInactive, http.StatusForbidden, "TENANT_INACTIVE"},
	{domain.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE"},
	{domain.ErrInsufficientRole, http.StatusForbidden, "INSUFFICIENT_ROLE"},
	{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
	{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	{domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
	{domain.ErrDuplicateTenantSlug, http.StatusConflict, "DUPLICATE_SLUG"},
	{domain.ErrOwnTenant, http.StatusConflict, "OWN_TENANT"},
	{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
	{domain.ErrProviderLoginDisabled, http.StatusNotFound, "PROVIDER_LOGIN_DISABLED"},
	{domain.ErrProviderTokenInvalid, http.StatusUnauthorized, "INVALID_PROVIDER_TOKEN"},
	{domain.ErrDuplicateCode, http.StatusConflict, "DUPLICATE_CODE"},
	{domain.ErrUnknownResource, http.StatusBadRequest, "UNKNOWN_RESOURCE"},
	{domain.ErrInvalidLevel, http.StatusBadRequest, "INVALID_LEVEL"},
	{domain.ErrServiceNotAllowed, http.StatusForbidden, "SERVICE_NOT_ALLOWED"},
	{domain.ErrCompanyInactive, http.StatusUnprocessableEntity, "COMPANY_INACTIVE"},
	{domain.ErrQuestionInactive, http.StatusUnprocessableEntity, "QUESTION_INACTIVE"},
	{domain.ErrScoreOutOfRange, http.StatusBadRequest, "SCORE_OUT_OF_RANGE"},
	{domain.ErrDuplicateEvaluation, http.StatusConflict, "DUPLICATE_EVALUATION"},
	{domain.ErrEvaluationFinalized, http.StatusConflict, "EVALUATION_FINALIZED"},
	{domain.ErrSelfApproval, http.StatusForbidden, "SELF_APPROVAL"},
	{domain.ErrInvalidDecision, http.StatusBadRequest, "INVALID_DECISION"},
	{domain.ErrEmptyEvaluation, http.StatusBadRequest, "EMPTY_EVALUATION"},
	{domain.ErrViolationClosed, http.StatusConflict, "VIOLATION_CLOSED"},
	{domain.ErrInvalidRecipient, http.StatusBadRequest, "INVALID_RECIPIENT"},
	{domain.ErrInvalidSeverity, http.StatusBadRequest, "INVALID_SEVERITY"},
	{domain.ErrNotAssigned, http.StatusForbidden, "NOT_ASSIGNED"},
	{domain.ErrDuplicateAssignment, http.StatusConflict, "DUPLICATE_ASSIGNMENT"},
	{domain.ErrInvalidRating, http.StatusBadRequest, "INVALID_RATING"},
	{domain.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{domain.ErrAppLocked, http.StatusServiceUnavailable, "APP_LOCKED"},
	{domain.ErrEmptyChecklist, http.StatusBadRequest, "EMPTY_CHECKLIST"},
	{domain.ErrLocationMismatch, http.StatusBadRequest, "LOCATION_MISMATCH"},
	{domain.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
}

// MapDomainError translates domain errors to HTTP status codes and error
// codes. The message is the sentinel's text, never the wrapped detail.
func MapDomainError(err error) (status int, code, msg string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code, m.err.Error()
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("handler: internal error")
	}
	RespondError(c, status, code, msg)
}

// extractAuthContext extracts tenant ID, user ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (tenantID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	tenantID, err = middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return tenantID, userID, role, true
}

// tenantFromContext is extractAuthContext for handlers that only need the tenant.
func tenantFromContext(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, false
	}
	return tenantID, true
}

// parseIDParam parses a UUID path parameter, writing INVALID_ID on failure.
func parseIDParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery parses an optional UUID query parameter.
func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return nil, false
	}
	return &id, true
}

// parsePagination reads offset and limit, clamping limit to 1..100.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// bindJSON binds the request body, writing VALIDATION_ERROR on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return false
	}
	return true
}
