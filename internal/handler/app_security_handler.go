package handler

import (
	"github.com/gin-gonic/gin"

	"hejazi/internal/service"
)

// AppSecurityHandler serves the tenant kill switch.
type AppSecurityHandler struct {
	appSecurityService service.AppSecurityService
}

// NewAppSecurityHandler creates a new AppSecurityHandler.
func NewAppSecurityHandler(appSecurityService service.AppSecurityService) *AppSecurityHandler {
	return &AppSecurityHandler{appSecurityService: appSecurityService}
}

// Get handles GET /api/v1/admin/app-security
// @Summary Read the kill switch
// @Tags app-security
// @Produce json
// @Success 200 {object} Response{data=domain.AppSecurity} "Current setting"
// @Security BearerAuth
// @Router /admin/app-security [get]
func (h *AppSecurityHandler) Get(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	setting, err := h.appSecurityService.Get(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, setting)
}

// Set handles PUT /api/v1/admin/app-security
// @Summary Lock or unlock the application
// @Description While locked every non-admin request gets 503 APP_LOCKED with the message.
// @Tags app-security
// @Accept json
// @Produce json
// @Param request body service.SetAppSecurityInput true "Setting"
// @Success 200 {object} Response{data=domain.AppSecurity} "Stored setting"
// @Security BearerAuth
// @Router /admin/app-security [put]
func (h *AppSecurityHandler) Set(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var input service.SetAppSecurityInput
	if !bindJSON(c, &input) {
		return
	}

	setting, err := h.appSecurityService.Set(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, setting)
}
