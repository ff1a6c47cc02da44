package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned for operations on a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrCycleInProgress is returned when a sync cycle is already running
	ErrCycleInProgress = errors.New("sync cycle already in progress")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)
