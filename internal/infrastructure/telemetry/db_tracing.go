package telemetry

import (
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// queryStartKey is the GORM instance-settings key carrying the query
// start time from the before callback to the after callback.
const queryStartKey = "trendlens:query_start"

// DBTracingConfig controls how market queries are traced.
type DBTracingConfig struct {
	// LogFullSQL includes bind variables in span SQL. Keep off outside
	// development, observation payloads can carry seller data.
	LogFullSQL bool
	// SlowQueryThreshold marks queries slower than this on their span.
	SlowQueryThreshold time.Duration
}

func (c *DBTracingConfig) applyDefaults() {
	if c.SlowQueryThreshold <= 0 {
		c.SlowQueryThreshold = 200 * time.Millisecond
	}
}

// DBTracing installs otelgorm spans on a GORM connection and enriches
// them with row counts, table names, error status and slow-query
// events.
type DBTracing struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracing creates a query tracing plugin
func NewDBTracing(config DBTracingConfig, logger *zap.Logger) *DBTracing {
	config.applyDefaults()
	return &DBTracing{
		config: config,
		logger: logger.Named("db_tracing"),
	}
}

// gormCallback is the registration surface of one GORM callback slot
type gormCallback interface {
	Register(name string, fn func(*gorm.DB)) error
}

// Register installs the otelgorm plugin and the enrichment callbacks
// on every operation type
func (t *DBTracing) Register(db *gorm.DB) error {
	var opts []otelgorm.Option
	if !t.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("install otelgorm plugin: %w", err)
	}

	cb := db.Callback()
	hooks := []struct {
		op     string
		before gormCallback
		after  gormCallback
	}{
		{"create", cb.Create().Before("gorm:create"), cb.Create().After("gorm:create")},
		{"query", cb.Query().Before("gorm:query"), cb.Query().After("gorm:query")},
		{"update", cb.Update().Before("gorm:update"), cb.Update().After("gorm:update")},
		{"delete", cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete")},
		{"row", cb.Row().Before("gorm:row"), cb.Row().After("gorm:row")},
		{"raw", cb.Raw().Before("gorm:raw"), cb.Raw().After("gorm:raw")},
	}

	for _, h := range hooks {
		if err := h.before.Register("trendlens_tracing:before_"+h.op, markQueryStart); err != nil {
			return fmt.Errorf("register before %s callback: %w", h.op, err)
		}
		if err := h.after.Register("trendlens_tracing:after_"+h.op, t.enrichSpan); err != nil {
			return fmt.Errorf("register after %s callback: %w", h.op, err)
		}
	}

	t.logger.Info("Query tracing enabled",
		zap.Bool("log_full_sql", t.config.LogFullSQL),
		zap.Duration("slow_query_threshold", t.config.SlowQueryThreshold))
	return nil
}

func markQueryStart(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

// enrichSpan annotates the otelgorm span of the finished query
func (t *DBTracing) enrichSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// Missing rows are an expected lookup outcome, not a failure
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := db.InstanceGet(queryStartKey)
	if !ok {
		return
	}
	startTime, ok := start.(time.Time)
	if !ok {
		return
	}

	if elapsed := time.Since(startTime); elapsed > t.config.SlowQueryThreshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()))
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", t.config.SlowQueryThreshold.Milliseconds())))
	}
}
