package handler

import (
	"github.com/gin-gonic/gin"

	"hejazi/internal/service"
)

// CompanyHandler handles guard company endpoints.
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles POST /api/v1/companies
// @Summary Register a guard company
// @Tags companies
// @Accept json
// @Produce json
// @Param request body service.CompanyInput true "Company"
// @Success 201 {object} Response{data=service.CompanyView} "Company created"
// @Security BearerAuth
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	var input service.CompanyInput
	if !bindJSON(c, &input) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, company)
}

// List handles GET /api/v1/companies
// @Summary List companies
// @Tags companies
// @Produce json
// @Param active query bool false "Only active companies"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]service.CompanyView,meta=PagMeta} "Companies with next evaluation month"
// @Security BearerAuth
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	activeOnly := c.Query("active") == "true"

	companies, total, err := h.companyService.List(c.Request.Context(), tenantID, activeOnly, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, companies, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/companies/:id
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {object} Response{data=service.CompanyView} "Company"
// @Failure 404 {object} ErrorResponseBody "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	companyID, ok := parseIDParam(c, "id", "company")
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), tenantID, companyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, company)
}

// Update handles PUT /api/v1/companies/:id
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param request body service.UpdateCompanyInput true "Fields to update"
// @Success 200 {object} Response{data=service.CompanyView} "Updated company"
// @Security BearerAuth
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	companyID, ok := parseIDParam(c, "id", "company")
	if !ok {
		return
	}
	var input service.UpdateCompanyInput
	if !bindJSON(c, &input) {
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), tenantID, companyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, company)
}

// Delete handles DELETE /api/v1/companies/:id
// @Summary Delete a company
// @Tags companies
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {object} Response "Company deleted"
// @Security BearerAuth
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	companyID, ok := parseIDParam(c, "id", "company")
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), tenantID, companyID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "company deleted"})
}

// RecomputeScore handles POST /api/v1/companies/:id/recompute-score
// @Summary Recompute a company's rolling score
// @Description Average percentage of the most recent approved evaluations.
// @Tags companies
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {object} Response{data=ScoreResponse} "New score"
// @Security BearerAuth
// @Router /companies/{id}/recompute-score [post]
func (h *CompanyHandler) RecomputeScore(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	companyID, ok := parseIDParam(c, "id", "company")
	if !ok {
		return
	}

	score, err := h.companyService.RecomputeScore(c.Request.Context(), tenantID, companyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ScoreResponse{CompanyID: companyID, Score: score})
}
