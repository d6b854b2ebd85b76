package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hejazi/internal/domain"
	"hejazi/internal/permission"
	"hejazi/internal/service"
)

// PermissionHandler serves job defaults, user exceptions and resolved sets.
type PermissionHandler struct {
	permissionService service.PermissionService
}

// NewPermissionHandler creates a new PermissionHandler.
func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// parseKeyParams reads a taxonomy key from two path parameters.
func parseKeyParams(c *gin.Context, levelParam, idParam string) (permission.Key, bool) {
	level, err := permission.ParseLevel(c.Param(levelParam))
	if err != nil {
		HandleError(c, err)
		return permission.Key{}, false
	}
	id, ok := parseIDParam(c, idParam, "resource")
	if !ok {
		return permission.Key{}, false
	}
	return permission.Key{Level: level, ID: id}, true
}

// GetJobPermissions handles GET /api/v1/jobs/:id/permissions
// @Summary List a job's default grants
// @Tags permissions
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Success 200 {object} Response{data=[]service.PermissionEntry} "Grants"
// @Security BearerAuth
// @Router /jobs/{id}/permissions [get]
func (h *PermissionHandler) GetJobPermissions(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}

	entries, err := h.permissionService.JobPermissions(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// SaveJobPermissions handles PUT /api/v1/jobs/:id/permissions
// @Summary Replace a job's default grants
// @Description The full set is replaced in one transaction. Entries with is_allowed=false are dropped since deny is the default.
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Param request body PermissionsRequest true "Grants"
// @Success 200 {object} Response{data=[]service.PermissionEntry} "Stored grants"
// @Failure 400 {object} ErrorResponseBody "Unknown resource"
// @Security BearerAuth
// @Router /jobs/{id}/permissions [put]
func (h *PermissionHandler) SaveJobPermissions(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}
	var req PermissionsRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.permissionService.SaveJobPermissions(ctx, tenantID, jobID, req.Permissions); err != nil {
		HandleError(c, err)
		return
	}
	entries, err := h.permissionService.JobPermissions(ctx, tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// GetUserExceptions handles GET /api/v1/users/:id/permission-exceptions
// @Summary List a user's permission exceptions
// @Tags permissions
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} Response{data=[]service.PermissionEntry} "Exceptions"
// @Security BearerAuth
// @Router /users/{id}/permission-exceptions [get]
func (h *PermissionHandler) GetUserExceptions(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	entries, err := h.permissionService.UserExceptions(c.Request.Context(), tenantID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// SaveUserExceptions handles PUT /api/v1/users/:id/permission-exceptions
// @Summary Replace a user's permission exceptions
// @Description Both allows and denies are stored; a deny shadows the job default.
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param request body PermissionsRequest true "Exceptions"
// @Success 200 {object} Response{data=[]service.PermissionEntry} "Stored exceptions"
// @Security BearerAuth
// @Router /users/{id}/permission-exceptions [put]
func (h *PermissionHandler) SaveUserExceptions(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	var req PermissionsRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.permissionService.SaveUserExceptions(ctx, tenantID, userID, req.Permissions); err != nil {
		HandleError(c, err)
		return
	}
	entries, err := h.permissionService.UserExceptions(ctx, tenantID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// UpsertUserException handles POST /api/v1/users/:id/permission-exceptions
// @Summary Set one permission exception
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param request body service.PermissionEntry true "Exception"
// @Success 200 {object} Response{data=service.PermissionEntry} "Stored exception"
// @Security BearerAuth
// @Router /users/{id}/permission-exceptions [post]
func (h *PermissionHandler) UpsertUserException(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	var entry service.PermissionEntry
	if !bindJSON(c, &entry) {
		return
	}

	if err := h.permissionService.UpsertUserException(c.Request.Context(), tenantID, userID, entry); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// DeleteUserException handles DELETE /api/v1/users/:id/permission-exceptions/:level/:resource_id
// @Summary Remove one permission exception
// @Description The user falls back to the job default for that node.
// @Tags permissions
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param level path string true "service, sub_service or sub_sub_service"
// @Param resource_id path string true "Node ID (UUID)"
// @Success 200 {object} Response "Exception removed"
// @Failure 404 {object} ErrorResponseBody "No such exception"
// @Security BearerAuth
// @Router /users/{id}/permission-exceptions/{level}/{resource_id} [delete]
func (h *PermissionHandler) DeleteUserException(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	key, ok := parseKeyParams(c, "level", "resource_id")
	if !ok {
		return
	}

	if err := h.permissionService.DeleteUserException(c.Request.Context(), tenantID, userID, key); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "exception removed"})
}

// UserEffective handles GET /api/v1/users/:id/permissions
// @Summary Get a user's resolved permissions
// @Description Every taxonomy node with its allow flag and the source that decided it (user, job, implied, default or role). Self or admin.
// @Tags permissions
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} Response{data=[]permission.Grant} "Resolved set"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Security BearerAuth
// @Router /users/{id}/permissions [get]
func (h *PermissionHandler) UserEffective(c *gin.Context) {
	tenantID, callerID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	if role != domain.RoleAdmin && callerID != userID {
		RespondError(c, http.StatusForbidden, "FORBIDDEN", "forbidden")
		return
	}

	h.respondEffective(c, tenantID, userID)
}

// MyPermissions handles GET /api/v1/me/permissions
// @Summary Get my resolved permissions
// @Tags permissions
// @Produce json
// @Success 200 {object} Response{data=[]permission.Grant} "Resolved set"
// @Security BearerAuth
// @Router /me/permissions [get]
func (h *PermissionHandler) MyPermissions(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	h.respondEffective(c, tenantID, userID)
}

func (h *PermissionHandler) respondEffective(c *gin.Context, tenantID, userID uuid.UUID) {
	set, err := h.permissionService.Effective(c.Request.Context(), tenantID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, set.Grants())
}

// MyMenu handles GET /api/v1/me/menu
// @Summary Get my navigation menu
// @Description Only allowed nodes, nested. A denied node hides its subtree.
// @Tags permissions
// @Produce json
// @Success 200 {object} Response{data=[]permission.MenuItem} "Menu"
// @Security BearerAuth
// @Router /me/menu [get]
func (h *PermissionHandler) MyMenu(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	menu, err := h.permissionService.Menu(c.Request.Context(), tenantID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, menu)
}
