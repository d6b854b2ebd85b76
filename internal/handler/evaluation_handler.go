package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hejazi/internal/domain"
	"hejazi/internal/export"
	"hejazi/internal/port"
	"hejazi/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EvaluationHandler handles company evaluation endpoints.
type EvaluationHandler struct {
	evaluationService service.EvaluationService
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(evaluationService service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

func evaluationFilter(c *gin.Context) (port.EvaluationFilter, bool) {
	var f port.EvaluationFilter
	companyID, ok := optionalUUIDQuery(c, "company_id")
	if !ok {
		return f, false
	}
	f.CompanyID = companyID
	if s := c.Query("status"); s != "" {
		status := domain.EvaluationStatus(s)
		f.Status = &status
	}
	return f, true
}

// Create handles POST /api/v1/evaluations
// @Summary Submit a company evaluation
// @Description Scores every answered question; the company must be active and may have one evaluation per month.
// @Tags evaluations
// @Accept json
// @Produce json
// @Param request body service.CreateEvaluationInput true "Evaluation"
// @Success 201 {object} Response{data=domain.EvaluationWithDetails} "Evaluation created"
// @Failure 400 {object} ErrorResponseBody "Score out of range or no answers"
// @Failure 409 {object} ErrorResponseBody "Duplicate evaluation for the month"
// @Failure 422 {object} ErrorResponseBody "Company or question inactive"
// @Security BearerAuth
// @Router /evaluations [post]
func (h *EvaluationHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var input service.CreateEvaluationInput
	if !bindJSON(c, &input) {
		return
	}

	eval, err := h.evaluationService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, eval)
}

// List handles GET /api/v1/evaluations
// @Summary List evaluations
// @Tags evaluations
// @Produce json
// @Param company_id query string false "Company ID (UUID)"
// @Param status query string false "pending, approved, rejected or returned"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.SecurityEvaluation,meta=PagMeta} "Evaluations"
// @Security BearerAuth
// @Router /evaluations [get]
func (h *EvaluationHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := evaluationFilter(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	evals, total, err := h.evaluationService.List(c.Request.Context(), tenantID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, evals, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/evaluations/:id
// @Summary Get an evaluation with details and approvals
// @Tags evaluations
// @Produce json
// @Param id path string true "Evaluation ID (UUID)"
// @Success 200 {object} Response{data=domain.EvaluationWithDetails} "Evaluation"
// @Failure 404 {object} ErrorResponseBody "Evaluation not found"
// @Security BearerAuth
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	evalID, ok := parseIDParam(c, "id", "evaluation")
	if !ok {
		return
	}

	eval, err := h.evaluationService.Get(c.Request.Context(), tenantID, evalID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, eval)
}

// UpdateDetails handles PUT /api/v1/evaluations/:id
// @Summary Resubmit a returned evaluation
// @Description Only the evaluator, and only while the evaluation is returned. Moves it back to pending.
// @Tags evaluations
// @Accept json
// @Produce json
// @Param id path string true "Evaluation ID (UUID)"
// @Param request body service.UpdateEvaluationInput true "Answers"
// @Success 200 {object} Response{data=domain.EvaluationWithDetails} "Evaluation"
// @Failure 403 {object} ErrorResponseBody "Not the evaluator"
// @Failure 409 {object} ErrorResponseBody "Not returned"
// @Security BearerAuth
// @Router /evaluations/{id} [put]
func (h *EvaluationHandler) UpdateDetails(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	evalID, ok := parseIDParam(c, "id", "evaluation")
	if !ok {
		return
	}
	var input service.UpdateEvaluationInput
	if !bindJSON(c, &input) {
		return
	}

	eval, err := h.evaluationService.UpdateDetails(c.Request.Context(), tenantID, userID, evalID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, eval)
}

// Decide handles POST /api/v1/evaluations/:id/decision
// @Summary Approve, reject or return an evaluation
// @Description Admin only. The evaluator cannot decide on their own evaluation. Approval refreshes the company schedule and score.
// @Tags evaluations
// @Accept json
// @Produce json
// @Param id path string true "Evaluation ID (UUID)"
// @Param request body service.DecideInput true "Decision"
// @Success 200 {object} Response{data=domain.EvaluationWithDetails} "Evaluation"
// @Failure 400 {object} ErrorResponseBody "Invalid decision"
// @Failure 403 {object} ErrorResponseBody "Self approval"
// @Failure 409 {object} ErrorResponseBody "Already decided"
// @Security BearerAuth
// @Router /evaluations/{id}/decision [post]
func (h *EvaluationHandler) Decide(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	evalID, ok := parseIDParam(c, "id", "evaluation")
	if !ok {
		return
	}
	var input service.DecideInput
	if !bindJSON(c, &input) {
		return
	}

	eval, err := h.evaluationService.Decide(c.Request.Context(), tenantID, userID, evalID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, eval)
}

// Delete handles DELETE /api/v1/evaluations/:id
// @Summary Delete an evaluation
// @Description Only while pending or returned.
// @Tags evaluations
// @Produce json
// @Param id path string true "Evaluation ID (UUID)"
// @Success 200 {object} Response "Evaluation deleted"
// @Failure 409 {object} ErrorResponseBody "Already decided"
// @Security BearerAuth
// @Router /evaluations/{id} [delete]
func (h *EvaluationHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	evalID, ok := parseIDParam(c, "id", "evaluation")
	if !ok {
		return
	}

	if err := h.evaluationService.Delete(c.Request.Context(), tenantID, evalID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "evaluation deleted"})
}

// Export handles GET /api/v1/evaluations/export
// @Summary Download evaluations as an XLSX workbook
// @Tags evaluations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param company_id query string false "Company ID (UUID)"
// @Param status query string false "Evaluation status"
// @Success 200 {file} file "Workbook"
// @Security BearerAuth
// @Router /evaluations/export [get]
func (h *EvaluationHandler) Export(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := evaluationFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.evaluationService.Export(c.Request.Context(), tenantID, filter, &buf); err != nil {
		HandleError(c, err)
		return
	}

	sendAttachment(c, xlsxContentType, export.BuildFilename("evaluations", "xlsx", time.Now().UTC()), buf.Bytes())
}

// sendAttachment writes a downloadable file.
func sendAttachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
