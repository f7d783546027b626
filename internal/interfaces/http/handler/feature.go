package handler

import (
	"github.com/gin-gonic/gin"

	featureflagapp "github.com/promptdeck/backend/internal/application/featureflag"
)

// FeatureHandler handles feature flag HTTP requests, scoped to the
// authenticated tenant
type FeatureHandler struct {
	BaseHandler
	featureService *featureflagapp.FeatureService
}

// NewFeatureHandler creates a new FeatureHandler
func NewFeatureHandler(featureService *featureflagapp.FeatureService) *FeatureHandler {
	return &FeatureHandler{featureService: featureService}
}

// RegisterRoutes registers feature flag routes
func (h *FeatureHandler) RegisterRoutes(rg *gin.RouterGroup) {
	features := rg.Group("/features")
	features.POST("", h.Create)
	features.GET("", h.List)
	features.GET("/evaluate/:key", h.Evaluate)
	features.PUT("/:id/description", h.UpdateDescription)
	features.POST("/:id/enable", h.Enable)
	features.POST("/:id/disable", h.Disable)
	features.DELETE("/:id", h.Delete)
}

// updateDescriptionRequest is the request body for description updates
type updateDescriptionRequest struct {
	Description string `json:"description" binding:"max=1000"`
}

// evaluationResult is the response payload of a flag evaluation
type evaluationResult struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

// Create registers a feature flag for the tenant (disabled by default)
func (h *FeatureHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var input featureflagapp.CreateFeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.featureService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a page of feature flag views for the tenant
func (h *FeatureHandler) List(c *gin.Context) {
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

	result, err := h.featureService.List(c.Request.Context(), tenantID, criteria)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Evaluate reports whether a flag is enabled for the tenant. Unknown
// keys evaluate to false rather than erroring.
func (h *FeatureHandler) Evaluate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	key := c.Param("key")
	if key == "" {
		h.BadRequest(c, "Feature flag key is required")
		return
	}

	enabled, err := h.featureService.IsEnabled(c.Request.Context(), tenantID, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, evaluationResult{Key: key, Enabled: enabled})
}

// UpdateDescription changes a flag's description
func (h *FeatureHandler) UpdateDescription(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid feature flag ID")
		return
	}

	var req updateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.featureService.UpdateDescription(c.Request.Context(), tenantID, id, req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Enable turns a flag on
func (h *FeatureHandler) Enable(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid feature flag ID")
		return
	}

	result, err := h.featureService.Enable(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Disable turns a flag off
func (h *FeatureHandler) Disable(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid feature flag ID")
		return
	}

	result, err := h.featureService.Disable(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a feature flag
func (h *FeatureHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid feature flag ID")
		return
	}

	if err := h.featureService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
