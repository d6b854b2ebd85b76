package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hejazi/internal/service"
)

// AppGate rejects every non-admin request with 503 APP_LOCKED while the
// tenant's kill switch is on. It must run after AuthMiddleware.
func AppGate(appSecurity service.AppSecurityService) gin.HandlerFunc {
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

		setting, err := appSecurity.Get(c.Request.Context(), tenantID)
		if err != nil {
			log.Error().Err(err).
				Str("request_id", c.GetString(ContextKeyRequestID)).
				Str("tenant_id", tenantID.String()).
				Msg("middleware.AppGate: reading kill switch failed")
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
			return
		}
		if setting.IsLocked {
			msg := setting.Message
			if msg == "" {
				msg = "application is locked by an administrator"
			}
			abort(c, http.StatusServiceUnavailable, "APP_LOCKED", msg)
			return
		}
		c.Next()
	}
}
