package handler

import (
	"github.com/gin-gonic/gin"

	"hejazi/internal/service"
)

// JobHandler handles job title endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Create handles POST /api/v1/jobs
// @Summary Create a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body service.JobInput true "Job"
// @Success 201 {object} Response{data=domain.Job} "Job created"
// @Security BearerAuth
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	var input service.JobInput
	if !bindJSON(c, &input) {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, job)
}

// List handles GET /api/v1/jobs
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Job,meta=PagMeta} "Jobs"
// @Security BearerAuth
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	jobs, total, err := h.jobService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/jobs/:id
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Success 200 {object} Response{data=domain.Job} "Job"
// @Failure 404 {object} ErrorResponseBody "Job not found"
// @Security BearerAuth
// @Router /jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}

// Update handles PUT /api/v1/jobs/:id
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Param request body service.JobInput true "Job"
// @Success 200 {object} Response{data=domain.Job} "Updated job"
// @Security BearerAuth
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}
	var input service.JobInput
	if !bindJSON(c, &input) {
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), tenantID, jobID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}

// Delete handles DELETE /api/v1/jobs/:id
// @Summary Delete a job
// @Description Users holding the job keep their user exceptions and lose the job defaults.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Success 200 {object} Response "Job deleted"
// @Security BearerAuth
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "job")
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), tenantID, jobID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "job deleted"})
}
