package handler

import (
	"time"

	"github.com/trendlens/backend/internal/interfaces/http/dto"
)

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// CountData represents count data in response
// @Description Count data
type CountData struct {
	Count int64 `json:"count"`
}

// SyncStatusData represents the scheduler's current state
// @Description Sync scheduler status information
type SyncStatusData struct {
	Running     bool       `json:"running"`
	CycleActive bool       `json:"cycle_active"`
	LastCycle   *time.Time `json:"last_cycle,omitempty"`
}
