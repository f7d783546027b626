package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/promptdeck/backend/internal/application/billing"
)

// PlanHandler handles subscription plan HTTP requests. Plans belong to
// the platform catalog, not to a tenant.
type PlanHandler struct {
	BaseHandler
	planService *billingapp.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *billingapp.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// RegisterRoutes registers plan routes
func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/plans")
	plans.POST("", h.Create)
	plans.GET("", h.List)
	plans.GET("/:id", h.Get)
	plans.PUT("/:id", h.Update)
	plans.POST("/:id/retire", h.Retire)
	plans.DELETE("/:id", h.Delete)
}

// Create adds a plan to the catalog
func (h *PlanHandler) Create(c *gin.Context) {
	var input billingapp.CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.planService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a page of plan views
func (h *PlanHandler) List(c *gin.Context) {
	criteria, err := bindListCriteria(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.planService.List(c.Request.Context(), criteria)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one plan
func (h *PlanHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	result, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update changes a plan's price and limits
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var input billingapp.UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.planService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Retire takes a plan off the catalog for new subscriptions
func (h *PlanHandler) Retire(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	result, err := h.planService.Retire(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a plan
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
