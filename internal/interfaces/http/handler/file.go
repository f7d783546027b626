package handler

import (
	"github.com/gin-gonic/gin"

	storageapp "github.com/promptdeck/backend/internal/application/storage"
)

// FileHandler handles stored file HTTP requests, scoped to the
// authenticated tenant
type FileHandler struct {
	BaseHandler
	fileService *storageapp.FileService
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(fileService *storageapp.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// RegisterRoutes registers file routes
func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.POST("", h.Register)
	files.GET("", h.List)
	files.GET("/:id", h.Get)
	files.POST("/:id/uploaded", h.MarkAsUploaded)
	files.POST("/:id/failed", h.MarkAsFailed)
	files.DELETE("/:id", h.Delete)
}

// markUploadedRequest is the request body for upload confirmations
type markUploadedRequest struct {
	SizeBytes int64 `json:"size_bytes" binding:"min=0"`
}

// Register records a pending file upload
func (h *FileHandler) Register(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var input storageapp.RegisterFileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.fileService.Register(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a page of file views for the tenant
func (h *FileHandler) List(c *gin.Context) {
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

	result, err := h.fileService.List(c.Request.Context(), tenantID, criteria)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one file record
func (h *FileHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid file ID")
		return
	}

	result, err := h.fileService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkAsUploaded confirms a pending upload with its final size
func (h *FileHandler) MarkAsUploaded(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid file ID")
		return
	}

	var req markUploadedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.fileService.MarkAsUploaded(c.Request.Context(), tenantID, id, req.SizeBytes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkAsFailed records that a pending upload failed
func (h *FileHandler) MarkAsFailed(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid file ID")
		return
	}

	result, err := h.fileService.MarkAsFailed(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a file record
func (h *FileHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid file ID")
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
