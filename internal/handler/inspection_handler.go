package handler

import (
	"github.com/gin-gonic/gin"

	"hejazi/internal/port"
	"hejazi/internal/service"
)

// InspectionHandler handles safety inspection endpoints.
type InspectionHandler struct {
	inspectionService service.InspectionService
}

// NewInspectionHandler creates a new InspectionHandler.
func NewInspectionHandler(inspectionService service.InspectionService) *InspectionHandler {
	return &InspectionHandler{inspectionService: inspectionService}
}

// Create handles POST /api/v1/inspections
// @Summary Record an inspection
// @Description Non-admin inspectors must be assigned to the building. Any failed checklist item makes the inspection non_compliant.
// @Tags inspections
// @Accept json
// @Produce json
// @Param request body service.CreateInspectionInput true "Inspection"
// @Success 201 {object} Response{data=domain.Inspection} "Inspection recorded"
// @Failure 400 {object} ErrorResponseBody "Empty checklist"
// @Failure 403 {object} ErrorResponseBody "Not assigned"
// @Security BearerAuth
// @Router /inspections [post]
func (h *InspectionHandler) Create(c *gin.Context) {
	tenantID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var input service.CreateInspectionInput
	if !bindJSON(c, &input) {
		return
	}

	in, err := h.inspectionService.Create(c.Request.Context(), tenantID, userID, role, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, in)
}

// List handles GET /api/v1/inspections
// @Summary List inspections
// @Tags inspections
// @Produce json
// @Param building_id query string false "Building ID (UUID)"
// @Param inspector_id query string false "Inspector ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Inspection,meta=PagMeta} "Inspections"
// @Security BearerAuth
// @Router /inspections [get]
func (h *InspectionHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	buildingID, ok := optionalUUIDQuery(c, "building_id")
	if !ok {
		return
	}
	inspectorID, ok := optionalUUIDQuery(c, "inspector_id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.inspectionService.List(c.Request.Context(), tenantID,
		port.InspectionFilter{BuildingID: buildingID, InspectorID: inspectorID}, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/inspections/:id
// @Summary Get an inspection
// @Tags inspections
// @Produce json
// @Param id path string true "Inspection ID (UUID)"
// @Success 200 {object} Response{data=domain.Inspection} "Inspection"
// @Failure 404 {object} ErrorResponseBody "Inspection not found"
// @Security BearerAuth
// @Router /inspections/{id} [get]
func (h *InspectionHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "inspection")
	if !ok {
		return
	}

	in, err := h.inspectionService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, in)
}
