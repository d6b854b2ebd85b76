package handler

import (
	"github.com/gin-gonic/gin"

	"hejazi/internal/service"
)

// LocationHandler serves sectors, buildings, subbuildings and the
// inspector distribution over them.
type LocationHandler struct {
	locationService service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// CreateSector handles POST /api/v1/sectors
// @Summary Create a sector
// @Tags locations
// @Accept json
// @Produce json
// @Param request body service.SectorInput true "Sector"
// @Success 201 {object} Response{data=domain.Sector} "Sector created"
// @Security BearerAuth
// @Router /sectors [post]
func (h *LocationHandler) CreateSector(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	var input service.SectorInput
	if !bindJSON(c, &input) {
		return
	}

	sector, err := h.locationService.CreateSector(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, sector)
}

// ListSectors handles GET /api/v1/sectors
// @Summary List sectors
// @Tags locations
// @Produce json
// @Success 200 {object} Response{data=[]domain.Sector} "Sectors"
// @Security BearerAuth
// @Router /sectors [get]
func (h *LocationHandler) ListSectors(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	sectors, err := h.locationService.ListSectors(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sectors)
}

// DeleteSector handles DELETE /api/v1/sectors/:id
// @Summary Delete a sector with its buildings
// @Tags locations
// @Produce json
// @Param id path string true "Sector ID (UUID)"
// @Success 200 {object} Response "Sector deleted"
// @Security BearerAuth
// @Router /sectors/{id} [delete]
func (h *LocationHandler) DeleteSector(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "sector")
	if !ok {
		return
	}

	if err := h.locationService.DeleteSector(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "sector deleted"})
}

// CreateBuilding handles POST /api/v1/buildings
// @Summary Create a building
// @Tags locations
// @Accept json
// @Produce json
// @Param request body service.BuildingInput true "Building"
// @Success 201 {object} Response{data=domain.Building} "Building created"
// @Failure 409 {object} ErrorResponseBody "Code already used"
// @Security BearerAuth
// @Router /buildings [post]
func (h *LocationHandler) CreateBuilding(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	var input service.BuildingInput
	if !bindJSON(c, &input) {
		return
	}

	b, err := h.locationService.CreateBuilding(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, b)
}

// ListBuildings handles GET /api/v1/buildings
// @Summary List buildings
// @Tags locations
// @Produce json
// @Param sector_id query string false "Sector ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Building} "Buildings"
// @Security BearerAuth
// @Router /buildings [get]
func (h *LocationHandler) ListBuildings(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	sectorID, ok := optionalUUIDQuery(c, "sector_id")
	if !ok {
		return
	}

	buildings, err := h.locationService.ListBuildings(c.Request.Context(), tenantID, sectorID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, buildings)
}

// DeleteBuilding handles DELETE /api/v1/buildings/:id
// @Summary Delete a building
// @Tags locations
// @Produce json
// @Param id path string true "Building ID (UUID)"
// @Success 200 {object} Response "Building deleted"
// @Security BearerAuth
// @Router /buildings/{id} [delete]
func (h *LocationHandler) DeleteBuilding(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "building")
	if !ok {
		return
	}

	if err := h.locationService.DeleteBuilding(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "building deleted"})
}

// CreateSubbuilding handles POST /api/v1/subbuildings
// @Summary Create a subbuilding
// @Tags locations
// @Accept json
// @Produce json
// @Param request body service.SubbuildingInput true "Subbuilding"
// @Success 201 {object} Response{data=domain.Subbuilding} "Subbuilding created"
// @Security BearerAuth
// @Router /subbuildings [post]
func (h *LocationHandler) CreateSubbuilding(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	var input service.SubbuildingInput
	if !bindJSON(c, &input) {
		return
	}

	sb, err := h.locationService.CreateSubbuilding(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, sb)
}

// ListSubbuildings handles GET /api/v1/buildings/:id/subbuildings
// @Summary List the subbuildings of a building
// @Tags locations
// @Produce json
// @Param id path string true "Building ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Subbuilding} "Subbuildings"
// @Security BearerAuth
// @Router /buildings/{id}/subbuildings [get]
func (h *LocationHandler) ListSubbuildings(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "building")
	if !ok {
		return
	}

	subs, err := h.locationService.ListSubbuildings(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, subs)
}

// DeleteSubbuilding handles DELETE /api/v1/subbuildings/:id
// @Summary Delete a subbuilding
// @Tags locations
// @Produce json
// @Param id path string true "Subbuilding ID (UUID)"
// @Success 200 {object} Response "Subbuilding deleted"
// @Security BearerAuth
// @Router /subbuildings/{id} [delete]
func (h *LocationHandler) DeleteSubbuilding(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "subbuilding")
	if !ok {
		return
	}

	if err := h.locationService.DeleteSubbuilding(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "subbuilding deleted"})
}

// Assign handles POST /api/v1/distribution
// @Summary Assign an inspector to a building or subbuilding
// @Tags distribution
// @Accept json
// @Produce json
// @Param request body service.AssignInput true "Assignment"
// @Success 201 {object} Response{data=domain.Distribution} "Assignment created"
// @Failure 400 {object} ErrorResponseBody "Subbuilding outside the building"
// @Failure 409 {object} ErrorResponseBody "Already assigned"
// @Security BearerAuth
// @Router /distribution [post]
func (h *LocationHandler) Assign(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var input service.AssignInput
	if !bindJSON(c, &input) {
		return
	}

	d, err := h.locationService.Assign(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, d)
}

// ListAssignments handles GET /api/v1/distribution
// @Summary List all inspector assignments
// @Tags distribution
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Distribution,meta=PagMeta} "Assignments"
// @Security BearerAuth
// @Router /distribution [get]
func (h *LocationHandler) ListAssignments(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.locationService.ListAssignments(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListMine handles GET /api/v1/distribution/me
// @Summary List my assignments
// @Tags distribution
// @Produce json
// @Success 200 {object} Response{data=[]domain.Distribution} "Assignments"
// @Security BearerAuth
// @Router /distribution/me [get]
func (h *LocationHandler) ListMine(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	items, err := h.locationService.ListMine(c.Request.Context(), tenantID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}

// Unassign handles DELETE /api/v1/distribution/:id
// @Summary Remove an assignment
// @Tags distribution
// @Produce json
// @Param id path string true "Assignment ID (UUID)"
// @Success 200 {object} Response "Assignment removed"
// @Security BearerAuth
// @Router /distribution/{id} [delete]
func (h *LocationHandler) Unassign(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "assignment")
	if !ok {
		return
	}

	if err := h.locationService.Unassign(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "assignment removed"})
}
