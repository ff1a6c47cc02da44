package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trendlens/backend/internal/interfaces/http/dto"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. db may be nil, in
// which case the readiness probe only reports process liveness.
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"TrendLens Backend API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "TrendLens Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// HealthResponse represents the liveness response
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// GetHealth godoc
// @Summary      Liveness probe
// @Description  Reports whether the process is up
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Router       /system/health [get]
func (h *SystemHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}))
}

// ReadinessResponse represents the readiness response
type ReadinessResponse struct {
	Status   string `json:"status" example:"ready"`
	Database string `json:"database" example:"up"`
}

// GetReadiness godoc
// @Summary      Readiness probe
// @Description  Reports whether the service can reach its database
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[ReadinessResponse]
// @Failure      503 {object} ErrorResponse
// @Router       /system/ready [get]
func (h *SystemHandler) GetReadiness(c *gin.Context) {
	resp := ReadinessResponse{Status: "ready", Database: "up"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pingDatabase(ctx); err != nil {
			h.ServiceUnavailable(c, dto.ErrCodeUnavailable, "database is not reachable")
			return
		}
	} else {
		resp.Database = "not_configured"
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

func (h *SystemHandler) pingDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
