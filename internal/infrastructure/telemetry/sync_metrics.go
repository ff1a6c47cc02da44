package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil indicates no meter was supplied
var ErrMeterNil = errors.New("meter is required")

// SyncMetrics tracks the health of the data collection pipeline:
// cycle outcomes and durations, per-platform record volumes and actor
// run behavior.
type SyncMetrics struct {
	logger *zap.Logger

	// Counters
	cycleTotal      *Counter
	productsUpdated *Counter
	sellersUpdated  *Counter
	recordsFailed   *Counter
	alertsFired     *Counter

	// Histograms
	cycleDuration    *Histogram
	actorRunDuration *Histogram

	// Gauges
	cycleActive *Gauge
}

// NewSyncMetrics creates the sync pipeline instruments on the given meter
func NewSyncMetrics(meter metric.Meter, logger *zap.Logger) (*SyncMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &SyncMetrics{logger: logger}

	var err error
	if sm.cycleTotal, err = NewCounter(meter,
		"sync_cycles_total", "Total completed sync cycles by outcome", "{cycle}"); err != nil {
		return nil, err
	}
	if sm.productsUpdated, err = NewCounter(meter,
		"sync_products_updated_total", "Total product records reconciled", "{record}"); err != nil {
		return nil, err
	}
	if sm.sellersUpdated, err = NewCounter(meter,
		"sync_sellers_updated_total", "Total seller records reconciled", "{record}"); err != nil {
		return nil, err
	}
	if sm.recordsFailed, err = NewCounter(meter,
		"sync_records_failed_total", "Total records that failed reconciliation", "{record}"); err != nil {
		return nil, err
	}
	if sm.alertsFired, err = NewCounter(meter,
		"alerts_fired_total", "Total alerts fired after sync cycles", "{alert}"); err != nil {
		return nil, err
	}
	if sm.cycleDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "sync_cycle_duration_seconds",
		Description: "Duration of full sync cycles",
		Unit:        "s",
	}); err != nil {
		return nil, err
	}
	if sm.actorRunDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "actor_run_duration_seconds",
		Description: "Wall time of hosted scraper actor runs",
		Unit:        "s",
	}); err != nil {
		return nil, err
	}
	if sm.cycleActive, err = NewGauge(meter,
		"sync_cycle_active", "Whether a sync cycle is currently running", "{cycle}"); err != nil {
		return nil, err
	}

	return sm, nil
}

// RecordCycle records the outcome of one full sync cycle
func (sm *SyncMetrics) RecordCycle(ctx context.Context, success bool, products, sellers int, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}

	sm.cycleTotal.Inc(ctx, AttrCycleOutcome.String(outcome))
	sm.productsUpdated.Add(ctx, int64(products))
	sm.sellersUpdated.Add(ctx, int64(sellers))
	sm.cycleDuration.RecordDuration(ctx, duration, AttrCycleOutcome.String(outcome))
}

// RecordFailedRecords records reconciliation failures for one platform leg
func (sm *SyncMetrics) RecordFailedRecords(ctx context.Context, platform string, count int) {
	if count == 0 {
		return
	}
	sm.recordsFailed.Add(ctx, int64(count), AttrPlatform.String(platform))
}

// RecordActorRun records the wall time and final status of one actor run
func (sm *SyncMetrics) RecordActorRun(ctx context.Context, platform, status string, duration time.Duration) {
	sm.actorRunDuration.RecordDuration(ctx, duration,
		AttrPlatform.String(platform),
		AttrRunStatus.String(status),
	)
}

// RecordAlert counts one fired alert by type
func (sm *SyncMetrics) RecordAlert(ctx context.Context, alertType string) {
	sm.alertsFired.Inc(ctx, AttrCollectionType.String(alertType))
}

// SetCycleActive records whether a cycle is in flight
func (sm *SyncMetrics) SetCycleActive(ctx context.Context, active bool) {
	var value int64
	if active {
		value = 1
	}
	sm.cycleActive.Record(ctx, value)
}
