package handler

import (
	"github.com/gin-gonic/gin"

	sagaapp "github.com/promptdeck/backend/internal/application/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// SagaHandler handles saga orchestration HTTP requests, scoped to the
// authenticated tenant. Reads that return pages go through the query
// bus; single-aggregate reads and writes call the service directly.
type SagaHandler struct {
	BaseHandler
	instanceService *sagaapp.InstanceService
	executor        *sagaapp.Executor
	stepHandler     sagaapp.StepHandler
	queryBus        shared.QueryBus
}

// NewSagaHandler creates a new SagaHandler. The step handler supplies
// the business work each step performs when a saga runs.
func NewSagaHandler(
	instanceService *sagaapp.InstanceService,
	executor *sagaapp.Executor,
	stepHandler sagaapp.StepHandler,
	queryBus shared.QueryBus,
) *SagaHandler {
	return &SagaHandler{
		instanceService: instanceService,
		executor:        executor,
		stepHandler:     stepHandler,
		queryBus:        queryBus,
	}
}

// RegisterRoutes registers saga routes
func (h *SagaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sagas := rg.Group("/sagas")
	sagas.POST("", h.Create)
	sagas.GET("", h.List)
	sagas.GET("/:id", h.Get)
	sagas.PUT("/:id", h.Rename)
	sagas.POST("/:id/run", h.Run)
	sagas.GET("/:id/steps", h.ListSteps)
	sagas.GET("/:id/logs", h.ListLogs)
	sagas.DELETE("/:id", h.Delete)
}

// renameSagaRequest is the request body for renaming a saga instance
type renameSagaRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// Create provisions a saga instance with its ordered steps
func (h *SagaHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var input sagaapp.CreateSagaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.instanceService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a page of saga instance views for the tenant
func (h *SagaHandler) List(c *gin.Context) {
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

	result, err := sagaapp.InstancePage(c.Request.Context(), h.queryBus, sagaapp.ListInstancesQuery{
		TenantID: tenantID,
		Criteria: criteria,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a saga instance bundled with its steps
func (h *SagaHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid saga instance ID")
		return
	}

	result, err := h.instanceService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Rename changes a saga instance's name
func (h *SagaHandler) Rename(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid saga instance ID")
		return
	}

	var req renameSagaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.instanceService.Rename(c.Request.Context(), tenantID, id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Run executes a pending saga to a terminal status. The caller blocks
// until the saga completes or fails; a saga failed by step exhaustion
// is a successful request with a FAILED instance in the body.
func (h *SagaHandler) Run(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid saga instance ID")
		return
	}

	result, err := h.executor.Run(c.Request.Context(), tenantID, id, h.stepHandler)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListSteps returns the instance's steps in execution order
func (h *SagaHandler) ListSteps(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid saga instance ID")
		return
	}

	steps, err := h.instanceService.ListSteps(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, steps)
}

// ListLogs returns the instance's audit trail
func (h *SagaHandler) ListLogs(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid saga instance ID")
		return
	}

	criteria, err := bindListCriteria(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := sagaapp.LogPage(c.Request.Context(), h.queryBus, sagaapp.ListLogsQuery{
		TenantID:   tenantID,
		InstanceID: id,
		Criteria:   criteria,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete removes a saga instance and its steps. Running sagas cannot
// be deleted; log entries always survive.
func (h *SagaHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid saga instance ID")
		return
	}

	if err := h.instanceService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
