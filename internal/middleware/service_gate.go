package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hejazi/internal/service"
)

// RequireService lets the request through only when the caller's resolved
// permission set allows the taxonomy node with the given code. Admins
// bypass the check.
func RequireService(perms service.PermissionService, code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.Next()
			return
		}
		tenantID, err := GetTenantID(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
			return
		}
		userID, err := GetUserID(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
			return
		}

		allowed, err := perms.IsAllowed(c.Request.Context(), tenantID, userID, code)
		if err != nil {
			log.Error().Err(err).
				Str("request_id", c.GetString(ContextKeyRequestID)).
				Str("code", code).
				Msg("middleware.RequireService: permission lookup failed")
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
			return
		}
		if !allowed {
			abort(c, http.StatusForbidden, "SERVICE_NOT_ALLOWED", "service is not allowed for this user")
			return
		}
		c.Next()
	}
}
