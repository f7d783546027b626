package handler

import (
	"github.com/gin-gonic/gin"

	promptapp "github.com/promptdeck/backend/internal/application/prompt"
)

// PromptHandler handles prompt template HTTP requests, scoped to the
// authenticated tenant
type PromptHandler struct {
	BaseHandler
	promptService *promptapp.PromptService
}

// NewPromptHandler creates a new PromptHandler
func NewPromptHandler(promptService *promptapp.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

// RegisterRoutes registers prompt routes
func (h *PromptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prompts := rg.Group("/prompts")
	prompts.POST("", h.Create)
	prompts.GET("", h.List)
	prompts.GET("/:id", h.Get)
	prompts.PUT("/:id", h.Update)
	prompts.POST("/:id/publish", h.Publish)
	prompts.DELETE("/:id", h.Delete)
}

// Create adds a draft prompt for the tenant
func (h *PromptHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var input promptapp.CreatePromptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.promptService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a page of prompt views for the tenant
func (h *PromptHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	criteria, err := bindListCriteria(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.promptService.List(c.Request.Context(), tenantID, criteria)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one prompt
func (h *PromptHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prompt ID")
		return
	}

	result, err := h.promptService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update changes a prompt's name, template and model parameters
func (h *PromptHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prompt ID")
		return
	}

	var input promptapp.UpdatePromptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.promptService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Publish moves a draft prompt to the published state
func (h *PromptHandler) Publish(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prompt ID")
		return
	}

	result, err := h.promptService.Publish(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a prompt
func (h *PromptHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prompt ID")
		return
	}

	if err := h.promptService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
