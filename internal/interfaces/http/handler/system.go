package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promptdeck/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	readDB    *gorm.DB
	appName   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. readDB may equal db
// when no separate read store is configured.
func NewSystemHandler(db, readDB *gorm.DB, appName string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		readDB:    readDB,
		appName:   appName,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	system := rg.Group("/system")
	system.GET("/info", h.GetSystemInfo)
}

// HealthResponse reports the liveness of the service and its stores
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp string            `json:"timestamp"`
}

// SystemInfoResponse carries basic runtime information
type SystemInfoResponse struct {
	Name      string `json:"name"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health pings both stores and reports per-store status. A failing
// store degrades the response to 503.
func (h *SystemHandler) Health(c *gin.Context) {
	checks := map[string]string{
		"write_store": h.pingStore(c, h.db),
		"read_store":  h.pingStore(c, h.readDB),
	}

	status := "ok"
	code := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, dto.NewSuccessResponse(HealthResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}

func (h *SystemHandler) pingStore(c *gin.Context, db *gorm.DB) string {
	if db == nil {
		return "not configured"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err.Error()
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		return err.Error()
	}
	return "ok"
}

// GetSystemInfo returns basic system information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.appName,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
