package handler

import (
	"github.com/gin-gonic/gin"

	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/service"
)

// RiskHandler handles the risk register and maintenance log.
type RiskHandler struct {
	riskService service.RiskService
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(riskService service.RiskService) *RiskHandler {
	return &RiskHandler{riskService: riskService}
}

// CreateRisk handles POST /api/v1/risks
// @Summary Register a risk
// @Description Rating is likelihood times impact; the level is derived from the rating.
// @Tags risks
// @Accept json
// @Produce json
// @Param request body service.CreateRiskInput true "Risk"
// @Success 201 {object} Response{data=domain.Risk} "Risk created"
// @Failure 400 {object} ErrorResponseBody "Likelihood or impact outside 1..5"
// @Security BearerAuth
// @Router /risks [post]
func (h *RiskHandler) CreateRisk(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var input service.CreateRiskInput
	if !bindJSON(c, &input) {
		return
	}

	r, err := h.riskService.CreateRisk(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, r)
}

// ListRisks handles GET /api/v1/risks
// @Summary List risks
// @Tags risks
// @Produce json
// @Param building_id query string false "Building ID (UUID)"
// @Param status query string false "open, mitigated or closed"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Risk,meta=PagMeta} "Risks"
// @Security BearerAuth
// @Router /risks [get]
func (h *RiskHandler) ListRisks(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	buildingID, ok := optionalUUIDQuery(c, "building_id")
	if !ok {
		return
	}
	filter := port.RiskFilter{BuildingID: buildingID}
	if s := c.Query("status"); s != "" {
		status := domain.RiskStatus(s)
		filter.Status = &status
	}
	offset, limit := parsePagination(c)

	items, total, err := h.riskService.ListRisks(c.Request.Context(), tenantID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetRisk handles GET /api/v1/risks/:id
// @Summary Get a risk
// @Tags risks
// @Produce json
// @Param id path string true "Risk ID (UUID)"
// @Success 200 {object} Response{data=domain.Risk} "Risk"
// @Security BearerAuth
// @Router /risks/{id} [get]
func (h *RiskHandler) GetRisk(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "risk")
	if !ok {
		return
	}

	r, err := h.riskService.GetRisk(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, r)
}

// UpdateRiskStatus handles PUT /api/v1/risks/:id/status
// @Summary Change a risk's status
// @Tags risks
// @Accept json
// @Produce json
// @Param id path string true "Risk ID (UUID)"
// @Param request body RiskStatusRequest true "Status"
// @Success 200 {object} Response{data=domain.Risk} "Updated risk"
// @Failure 400 {object} ErrorResponseBody "Invalid status"
// @Security BearerAuth
// @Router /risks/{id}/status [put]
func (h *RiskHandler) UpdateRiskStatus(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "risk")
	if !ok {
		return
	}
	var req RiskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.riskService.UpdateRiskStatus(c.Request.Context(), tenantID, id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, r)
}

// CreateMaintenance handles POST /api/v1/maintenance
// @Summary Schedule maintenance work
// @Tags maintenance
// @Accept json
// @Produce json
// @Param request body service.MaintenanceInput true "Maintenance"
// @Success 201 {object} Response{data=domain.MaintenanceLog} "Maintenance scheduled"
// @Security BearerAuth
// @Router /maintenance [post]
func (h *RiskHandler) CreateMaintenance(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var input service.MaintenanceInput
	if !bindJSON(c, &input) {
		return
	}

	m, err := h.riskService.CreateMaintenance(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, m)
}

// ListMaintenance handles GET /api/v1/maintenance
// @Summary List maintenance work
// @Tags maintenance
// @Produce json
// @Param building_id query string false "Building ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.MaintenanceLog,meta=PagMeta} "Maintenance log"
// @Security BearerAuth
// @Router /maintenance [get]
func (h *RiskHandler) ListMaintenance(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	buildingID, ok := optionalUUIDQuery(c, "building_id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.riskService.ListMaintenance(c.Request.Context(), tenantID, buildingID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// CompleteMaintenance handles POST /api/v1/maintenance/:id/complete
// @Summary Mark maintenance work as done
// @Tags maintenance
// @Accept json
// @Produce json
// @Param id path string true "Maintenance ID (UUID)"
// @Param request body service.CompleteMaintenanceInput true "Completion"
// @Success 200 {object} Response{data=domain.MaintenanceLog} "Completed entry"
// @Failure 400 {object} ErrorResponseBody "Already completed"
// @Security BearerAuth
// @Router /maintenance/{id}/complete [post]
func (h *RiskHandler) CompleteMaintenance(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "maintenance")
	if !ok {
		return
	}
	var input service.CompleteMaintenanceInput
	if !bindJSON(c, &input) {
		return
	}

	m, err := h.riskService.CompleteMaintenance(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, m)
}
