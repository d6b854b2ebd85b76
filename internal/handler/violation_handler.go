package handler

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"

	"hejazi/internal/domain"
	"hejazi/internal/export"
	"hejazi/internal/port"
	"hejazi/internal/service"
)

// ViolationHandler handles violation endpoints.
type ViolationHandler struct {
	violationService service.ViolationService
}

// NewViolationHandler creates a new ViolationHandler.
func NewViolationHandler(violationService service.ViolationService) *ViolationHandler {
	return &ViolationHandler{violationService: violationService}
}

func violationFilter(c *gin.Context) (port.ViolationFilter, bool) {
	var f port.ViolationFilter
	companyID, ok := optionalUUIDQuery(c, "company_id")
	if !ok {
		return f, false
	}
	f.CompanyID = companyID
	if s := c.Query("status"); s != "" {
		status := domain.ViolationStatus(s)
		f.Status = &status
	}
	return f, true
}

// Create handles POST /api/v1/violations
// @Summary Record a violation against a company
// @Tags violations
// @Accept json
// @Produce json
// @Param request body service.CreateViolationInput true "Violation"
// @Success 201 {object} Response{data=domain.Violation} "Violation created"
// @Failure 400 {object} ErrorResponseBody "Invalid severity"
// @Security BearerAuth
// @Router /violations [post]
func (h *ViolationHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var input service.CreateViolationInput
	if !bindJSON(c, &input) {
		return
	}

	v, err := h.violationService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, v)
}

// List handles GET /api/v1/violations
// @Summary List violations
// @Tags violations
// @Produce json
// @Param company_id query string false "Company ID (UUID)"
// @Param status query string false "open or closed"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Violation,meta=PagMeta} "Violations"
// @Security BearerAuth
// @Router /violations [get]
func (h *ViolationHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := violationFilter(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.violationService.List(c.Request.Context(), tenantID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/violations/:id
// @Summary Get a violation
// @Tags violations
// @Produce json
// @Param id path string true "Violation ID (UUID)"
// @Success 200 {object} Response{data=domain.Violation} "Violation"
// @Failure 404 {object} ErrorResponseBody "Violation not found"
// @Security BearerAuth
// @Router /violations/{id} [get]
func (h *ViolationHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "violation")
	if !ok {
		return
	}

	v, err := h.violationService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, v)
}

// Close handles POST /api/v1/violations/:id/close
// @Summary Close a violation
// @Tags violations
// @Produce json
// @Param id path string true "Violation ID (UUID)"
// @Success 200 {object} Response{data=domain.Violation} "Closed violation"
// @Failure 409 {object} ErrorResponseBody "Already closed"
// @Security BearerAuth
// @Router /violations/{id}/close [post]
func (h *ViolationHandler) Close(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "violation")
	if !ok {
		return
	}

	v, err := h.violationService.Close(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, v)
}

// Mailto handles GET /api/v1/violations/:id/mailto
// @Summary Build a mailto link for a violation notice
// @Description Recipients default to the company's contact email.
// @Tags violations
// @Produce json
// @Param id path string true "Violation ID (UUID)"
// @Param to query []string false "Recipient addresses" collectionFormat(multi)
// @Success 200 {object} Response{data=MailtoResponse} "Link"
// @Failure 400 {object} ErrorResponseBody "Invalid recipient"
// @Security BearerAuth
// @Router /violations/{id}/mailto [get]
func (h *ViolationHandler) Mailto(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "violation")
	if !ok {
		return
	}

	link, err := h.violationService.Mailto(c.Request.Context(), tenantID, id, c.QueryArray("to"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MailtoResponse{MailtoURL: link})
}

// Notify handles POST /api/v1/violations/:id/notify
// @Summary Send a violation notice
// @Description Channel email delivers through the configured sender; channel mailto returns a link. Both are recorded in the send log.
// @Tags violations
// @Accept json
// @Produce json
// @Param id path string true "Violation ID (UUID)"
// @Param request body service.NotifyInput true "Recipients and channel"
// @Success 201 {object} Response{data=service.NotifyResult} "Send recorded"
// @Failure 400 {object} ErrorResponseBody "Invalid recipient or channel"
// @Security BearerAuth
// @Router /violations/{id}/notify [post]
func (h *ViolationHandler) Notify(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "violation")
	if !ok {
		return
	}
	var input service.NotifyInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.violationService.Notify(c.Request.Context(), tenantID, userID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// ListSends handles GET /api/v1/violations/:id/sends
// @Summary List the notices sent for a violation
// @Tags violations
// @Produce json
// @Param id path string true "Violation ID (UUID)"
// @Success 200 {object} Response{data=[]domain.ViolationSend} "Send log"
// @Security BearerAuth
// @Router /violations/{id}/sends [get]
func (h *ViolationHandler) ListSends(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "violation")
	if !ok {
		return
	}

	sends, err := h.violationService.ListSends(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sends)
}

// Export handles GET /api/v1/violations/export
// @Summary Download violations as CSV
// @Description UTF-8 with a byte order mark so spreadsheet tools show Arabic text correctly.
// @Tags violations
// @Produce text/csv
// @Param company_id query string false "Company ID (UUID)"
// @Param status query string false "open or closed"
// @Success 200 {file} file "CSV"
// @Security BearerAuth
// @Router /violations/export [get]
func (h *ViolationHandler) Export(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := violationFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.violationService.Export(c.Request.Context(), tenantID, filter, &buf); err != nil {
		HandleError(c, err)
		return
	}

	sendAttachment(c, "text/csv; charset=utf-8", export.BuildFilename("violations", "csv", time.Now().UTC()), buf.Bytes())
}
