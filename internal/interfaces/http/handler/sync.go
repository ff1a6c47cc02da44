package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	analyticsapp "github.com/trendlens/backend/internal/application/analytics"
	"github.com/trendlens/backend/internal/infrastructure/scheduler"
	"github.com/trendlens/backend/internal/interfaces/http/dto"
)

// SyncHandler handles manual sync control and run history endpoints
type SyncHandler struct {
	BaseHandler
	scheduler *scheduler.SyncScheduler
	analytics *analyticsapp.Service
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(sched *scheduler.SyncScheduler, analytics *analyticsapp.Service) *SyncHandler {
	return &SyncHandler{
		scheduler: sched,
		analytics: analytics,
	}
}

// TriggerSync godoc
// @Summary      Run a sync cycle now
// @Description  Starts an immediate cycle outside the fixed schedule. Only one cycle runs at a time.
// @Tags         sync
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sync/trigger [post]
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	result, err := h.scheduler.TriggerNow(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrCycleInProgress):
			h.Conflict(c, dto.ErrCodeSyncInProgress, "a sync cycle is already running")
		case errors.Is(err, scheduler.ErrSchedulerNotRunning):
			h.ServiceUnavailable(c, dto.ErrCodeUnavailable, "the sync scheduler is not running")
		default:
			h.HandleError(c, err)
		}
		return
	}

	h.Success(c, result)
}

// GetSyncStatus godoc
// @Summary      Get the scheduler status
// @Tags         sync
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /sync/status [get]
func (h *SyncHandler) GetSyncStatus(c *gin.Context) {
	status := SyncStatusData{
		Running:     h.scheduler.Running(),
		CycleActive: h.scheduler.CycleActive(),
	}
	if last := h.scheduler.LastResult(); last != nil {
		ts := last.Timestamp
		status.LastCycle = &ts
	}

	h.Success(c, status)
}

// GetSyncRuns godoc
// @Summary      List recent collection runs
// @Description  Returns the newest scrape runs from the audit trail
// @Tags         sync
// @Produce      json
// @Param        limit query int false "Maximum results (default 20)"
// @Success      200 {object} dto.Response
// @Router       /sync/runs [get]
func (h *SyncHandler) GetSyncRuns(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", analyticsapp.DefaultRunsLimit)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	runs, err := h.analytics.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, runs)
}
