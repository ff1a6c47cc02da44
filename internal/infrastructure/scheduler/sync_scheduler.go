// Package scheduler drives the periodic synchronization cycle: an
// immediate run on start, then one cycle per interval, with an overlap
// guard so cycles never stack.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	syncapp "github.com/trendlens/backend/internal/application/sync"
)

// Orchestrator runs one full synchronization cycle
type Orchestrator interface {
	SyncAll(ctx context.Context) *syncapp.SyncResult
}

// SyncSchedulerConfig holds configuration for the sync scheduler
type SyncSchedulerConfig struct {
	// Interval is the time between cycles
	Interval time.Duration
	// RunOnStart fires one cycle immediately when the scheduler starts
	RunOnStart bool
	// StopGrace bounds how long Stop waits for an in-flight cycle
	StopGrace time.Duration
}

// DefaultSyncSchedulerConfig returns the default configuration
func DefaultSyncSchedulerConfig() SyncSchedulerConfig {
	return SyncSchedulerConfig{
		Interval:   8 * time.Hour,
		RunOnStart: true,
		StopGrace:  30 * time.Second,
	}
}

// Validate validates the configuration
func (c *SyncSchedulerConfig) Validate() error {
	if c.Interval <= 0 {
		return ErrInvalidConfig
	}
	if c.StopGrace <= 0 {
		c.StopGrace = 30 * time.Second
	}
	return nil
}

// tickerFactory creates the interval signal, injectable for tests
type tickerFactory func(interval time.Duration) (<-chan time.Time, func())

func defaultTickerFactory(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

// SyncScheduler runs the sync orchestrator on a fixed interval
type SyncScheduler struct {
	config       SyncSchedulerConfig
	orchestrator Orchestrator
	logger       *zap.Logger
	newTicker    tickerFactory

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	cycleActive atomic.Bool

	resultMu   sync.RWMutex
	lastResult *syncapp.SyncResult
}

// SchedulerOption configures optional scheduler behavior
type SchedulerOption func(*SyncScheduler)

// WithTickerFactory replaces the interval source, for deterministic tests
func WithTickerFactory(factory tickerFactory) SchedulerOption {
	return func(s *SyncScheduler) {
		s.newTicker = factory
	}
}

// NewSyncScheduler creates a sync scheduler
func NewSyncScheduler(config SyncSchedulerConfig, orchestrator Orchestrator, logger *zap.Logger, opts ...SchedulerOption) (*SyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &SyncScheduler{
		config:       config,
		orchestrator: orchestrator,
		logger:       logger.Named("scheduler"),
		newTicker:    defaultTickerFactory,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start starts the scheduler loop. Calling Start on a running
// scheduler is a no-op.
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)
	return nil
}

// Stop stops the scheduler and waits, bounded by the stop grace, for
// an in-flight cycle to finish. Calling Stop on a stopped scheduler is
// a no-op.
func (s *SyncScheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped")
		return nil
	case <-time.After(s.config.StopGrace):
		s.logger.Warn("Sync scheduler stop timed out with a cycle in flight",
			zap.Duration("stop_grace", s.config.StopGrace))
		return context.DeadlineExceeded
	}
}

// TriggerNow runs one cycle outside the schedule. A cycle already in
// flight yields ErrCycleInProgress instead of a concurrent run.
func (s *SyncScheduler) TriggerNow(ctx context.Context) (*syncapp.SyncResult, error) {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()
	if !running {
		return nil, ErrSchedulerNotRunning
	}

	if !s.cycleActive.CompareAndSwap(false, true) {
		return nil, ErrCycleInProgress
	}
	defer s.cycleActive.Store(false)

	result := s.orchestrator.SyncAll(ctx)
	s.storeResult(result)
	return result, nil
}

// Running reports whether the scheduler loop has been started
func (s *SyncScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// CycleActive reports whether a cycle is currently running
func (s *SyncScheduler) CycleActive() bool {
	return s.cycleActive.Load()
}

// LastResult returns the most recent cycle result, nil before the
// first cycle finishes
func (s *SyncScheduler) LastResult() *syncapp.SyncResult {
	s.resultMu.RLock()
	defer s.resultMu.RUnlock()
	return s.lastResult
}

// runLoop fires cycles until the scheduler context is canceled
func (s *SyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.runCycle(ctx)
	}

	tick, stop := s.newTicker(s.config.Interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			s.runCycle(ctx)
		}
	}
}

// runCycle runs one guarded cycle. A tick that lands while a cycle is
// still running is skipped, never queued.
func (s *SyncScheduler) runCycle(ctx context.Context) {
	if !s.cycleActive.CompareAndSwap(false, true) {
		s.logger.Warn("Skipping scheduled sync, previous cycle still running")
		return
	}
	defer s.cycleActive.Store(false)

	result := s.orchestrator.SyncAll(ctx)
	s.storeResult(result)

	if !result.Success {
		s.logger.Warn("Scheduled sync cycle failed", zap.String("message", result.Message))
	}
}

func (s *SyncScheduler) storeResult(result *syncapp.SyncResult) {
	s.resultMu.Lock()
	s.lastResult = result
	s.resultMu.Unlock()
}
