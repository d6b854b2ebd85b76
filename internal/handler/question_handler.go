package handler

import (
	"github.com/gin-gonic/gin"

	"hejazi/internal/service"
)

// QuestionHandler handles security question endpoints.
type QuestionHandler struct {
	questionService service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Create handles POST /api/v1/questions
// @Summary Add a security question
// @Tags questions
// @Accept json
// @Produce json
// @Param request body service.QuestionInput true "Question"
// @Success 201 {object} Response{data=domain.SecurityQuestion} "Question created"
// @Security BearerAuth
// @Router /questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	var input service.QuestionInput
	if !bindJSON(c, &input) {
		return
	}

	q, err := h.questionService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, q)
}

// List handles GET /api/v1/questions
// @Summary List security questions
// @Tags questions
// @Produce json
// @Param all query bool false "Include inactive questions"
// @Success 200 {object} Response{data=[]domain.SecurityQuestion} "Questions"
// @Security BearerAuth
// @Router /questions [get]
func (h *QuestionHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	activeOnly := c.Query("all") != "true"

	questions, err := h.questionService.List(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, questions)
}

// Update handles PUT /api/v1/questions/:id
// @Summary Update a security question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID (UUID)"
// @Param request body service.UpdateQuestionInput true "Fields to update"
// @Success 200 {object} Response{data=domain.SecurityQuestion} "Updated question"
// @Security BearerAuth
// @Router /questions/{id} [put]
func (h *QuestionHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	questionID, ok := parseIDParam(c, "id", "question")
	if !ok {
		return
	}
	var input service.UpdateQuestionInput
	if !bindJSON(c, &input) {
		return
	}

	q, err := h.questionService.Update(c.Request.Context(), tenantID, questionID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Deactivate handles DELETE /api/v1/questions/:id
// @Summary Deactivate a security question
// @Description Questions are never removed so past evaluations keep their details.
// @Tags questions
// @Produce json
// @Param id path string true "Question ID (UUID)"
// @Success 200 {object} Response "Question deactivated"
// @Security BearerAuth
// @Router /questions/{id} [delete]
func (h *QuestionHandler) Deactivate(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	questionID, ok := parseIDParam(c, "id", "question")
	if !ok {
		return
	}

	if err := h.questionService.Deactivate(c.Request.Context(), tenantID, questionID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "question deactivated"})
}
