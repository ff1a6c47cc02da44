package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendlens/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewSyncMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	sm, err := telemetry.NewSyncMetrics(meter, zap.NewNop())

	require.NoError(t, err)
	require.NotNil(t, sm)
}

func TestNewSyncMetrics_NilMeter(t *testing.T) {
	sm, err := telemetry.NewSyncMetrics(nil, zap.NewNop())

	require.Error(t, err)
	assert.Nil(t, sm)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestNewSyncMetrics_NilLogger(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	sm, err := telemetry.NewSyncMetrics(meter, nil)

	require.NoError(t, err)
	require.NotNil(t, sm)
}

func TestSyncMetrics_RecordCycle(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	sm, err := telemetry.NewSyncMetrics(meter, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	sm.RecordCycle(ctx, true, 120, 15, 42*time.Second)
	sm.RecordCycle(ctx, false, 0, 0, time.Second)
}

func TestSyncMetrics_RecordFailedRecords(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	sm, err := telemetry.NewSyncMetrics(meter, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()

	sm.RecordFailedRecords(ctx, "tiktok_shop", 3)
	sm.RecordFailedRecords(ctx, "instagram", 0)
}

func TestSyncMetrics_RecordActorRun(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	sm, err := telemetry.NewSyncMetrics(meter, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()

	sm.RecordActorRun(ctx, "instagram", "SUCCEEDED", 90*time.Second)
	sm.RecordActorRun(ctx, "instagram", "TIMED-OUT", 5*time.Minute)
}

func TestSyncMetrics_RecordAlert(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	sm, err := telemetry.NewSyncMetrics(meter, zap.NewNop())
	require.NoError(t, err)

	sm.RecordAlert(context.Background(), "top_product")
	sm.RecordAlert(context.Background(), "seller_milestone")
}

func TestSyncMetrics_SetCycleActive(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	sm, err := telemetry.NewSyncMetrics(meter, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()

	sm.SetCycleActive(ctx, true)
	sm.SetCycleActive(ctx, false)
}
