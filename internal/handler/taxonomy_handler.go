package handler

import (
	"github.com/gin-gonic/gin"

	"hejazi/internal/domain"
	"hejazi/internal/service"
)

// TaxonomyHandler serves the service taxonomy.
type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(taxonomyService service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// Tree handles GET /api/v1/services/tree
// @Summary Get the full service taxonomy
// @Description Includes inactive nodes so administrators can re-enable them.
// @Tags taxonomy
// @Produce json
// @Success 200 {object} Response{data=[]service.TreeNode} "Nested tree"
// @Security BearerAuth
// @Router /services/tree [get]
func (h *TaxonomyHandler) Tree(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	tree, err := h.taxonomyService.Tree(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tree)
}

// ListSubServices handles GET /api/v1/services/:id/sub-services
// @Summary List the sub-services of a service
// @Tags taxonomy
// @Produce json
// @Param id path string true "Service ID (UUID)"
// @Success 200 {object} Response{data=[]domain.TaxonomyNode} "Sub-services"
// @Security BearerAuth
// @Router /services/{id}/sub-services [get]
func (h *TaxonomyHandler) ListSubServices(c *gin.Context) {
	h.listChildren(c, domain.LevelService)
}

// ListSubSubServices handles GET /api/v1/sub-services/:id/sub-sub-services
// @Summary List the sub-sub-services of a sub-service
// @Tags taxonomy
// @Produce json
// @Param id path string true "Sub-service ID (UUID)"
// @Success 200 {object} Response{data=[]domain.TaxonomyNode} "Sub-sub-services"
// @Security BearerAuth
// @Router /sub-services/{id}/sub-sub-services [get]
func (h *TaxonomyHandler) ListSubSubServices(c *gin.Context) {
	h.listChildren(c, domain.LevelSubService)
}

func (h *TaxonomyHandler) listChildren(c *gin.Context, parent domain.TaxonomyLevel) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	parentID, ok := parseIDParam(c, "id", string(parent))
	if !ok {
		return
	}

	nodes, err := h.taxonomyService.ListChildren(c.Request.Context(), tenantID, parent, parentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, nodes)
}

// Create handles POST /api/v1/taxonomy
// @Summary Create a taxonomy node
// @Description Services have no parent; sub-services need a service parent and sub-sub-services a sub-service parent. Codes are unique per tenant across all levels.
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param request body service.CreateNodeInput true "Node"
// @Success 201 {object} Response{data=domain.TaxonomyNode} "Node created"
// @Failure 400 {object} ErrorResponseBody "Invalid level or parent"
// @Failure 409 {object} ErrorResponseBody "Code already used"
// @Security BearerAuth
// @Router /taxonomy [post]
func (h *TaxonomyHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	var input service.CreateNodeInput
	if !bindJSON(c, &input) {
		return
	}

	node, err := h.taxonomyService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, node)
}

// Update handles PUT /api/v1/taxonomy/:level/:id
// @Summary Update a taxonomy node
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param level path string true "service, sub_service or sub_sub_service"
// @Param id path string true "Node ID (UUID)"
// @Param request body service.UpdateNodeInput true "Fields to update"
// @Success 200 {object} Response{data=domain.TaxonomyNode} "Updated node"
// @Security BearerAuth
// @Router /taxonomy/{level}/{id} [put]
func (h *TaxonomyHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	key, ok := parseKeyParams(c, "level", "id")
	if !ok {
		return
	}
	var input service.UpdateNodeInput
	if !bindJSON(c, &input) {
		return
	}

	node, err := h.taxonomyService.Update(c.Request.Context(), tenantID, key.Level, key.ID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, node)
}

// Delete handles DELETE /api/v1/taxonomy/:level/:id
// @Summary Delete a taxonomy node and its descendants
// @Tags taxonomy
// @Produce json
// @Param level path string true "service, sub_service or sub_sub_service"
// @Param id path string true "Node ID (UUID)"
// @Success 200 {object} Response "Node deleted"
// @Security BearerAuth
// @Router /taxonomy/{level}/{id} [delete]
func (h *TaxonomyHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	key, ok := parseKeyParams(c, "level", "id")
	if !ok {
		return
	}

	if err := h.taxonomyService.Delete(c.Request.Context(), tenantID, key.Level, key.ID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, map[string]string{"message": "node deleted"})
}
