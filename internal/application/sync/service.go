// Package sync orchestrates the periodic collection cycle: for each
// monitored platform it runs the hosted scraper, maps the dataset into
// canonical observations and reconciles them into the store.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/application/collection"
	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/social"
)

// PlatformResolver looks up configured platform adapters
type PlatformResolver interface {
	Get(platform market.Platform) (social.Platform, error)
	All() []social.Platform
}

// Collector reconciles observations and keeps the collection audit trail
type Collector interface {
	ProcessBatch(ctx context.Context, observations []market.ProductObservation) *collection.BatchResult
	ProcessSeller(ctx context.Context, obs market.SellerObservation) (*market.Seller, error)
	StartRun(ctx context.Context, platform market.Platform, collectionType market.CollectionType) *market.CollectionRun
	FinishRun(ctx context.Context, run *market.CollectionRun, records int, runErr error)
}

// CycleObserver receives measurements from the sync flow. Methods must
// be safe for concurrent use.
type CycleObserver interface {
	RecordCycle(ctx context.Context, success bool, productsUpdated, sellersUpdated int, duration time.Duration)
	RecordFailedRecords(ctx context.Context, platform string, count int)
	RecordActorRun(ctx context.Context, platform, status string, duration time.Duration)
	SetCycleActive(ctx context.Context, active bool)
}

// Config holds the scrape parameters of one cycle
type Config struct {
	// SearchQuery is the product search term handed to the scraper
	SearchQuery string
	// MaxResults bounds the dataset size per run
	MaxResults int
	// ActorIDs maps each platform to its hosted scraper actor
	ActorIDs map[market.Platform]string
}

// SyncResult summarizes one full synchronization cycle
type SyncResult struct {
	Success         bool      `json:"success"`
	Timestamp       time.Time `json:"timestamp"`
	ProductsUpdated int       `json:"products_updated"`
	SellersUpdated  int       `json:"sellers_updated"`
	Message         string    `json:"message"`
}

// Service runs synchronization cycles across all configured platforms
type Service struct {
	platforms PlatformResolver
	runner    social.ActorRunner
	collector Collector
	config    Config
	logger    *zap.Logger
	now       func() time.Time
	hooks     []func(context.Context)
	observer  CycleObserver
}

// Option configures optional service behavior
type Option func(*Service)

// WithAfterSyncHook registers a callback fired after every successful
// cycle, in registration order. Alert evaluation and cache
// invalidation hang off this.
func WithAfterSyncHook(hook func(context.Context)) Option {
	return func(s *Service) {
		s.hooks = append(s.hooks, hook)
	}
}

// WithCycleObserver attaches a measurement sink for cycles, actor runs
// and record failures
func WithCycleObserver(observer CycleObserver) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

// NewService creates a sync orchestrator
func NewService(
	platforms PlatformResolver,
	runner social.ActorRunner,
	collector Collector,
	config Config,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		platforms: platforms,
		runner:    runner,
		collector: collector,
		config:    config,
		logger:    logger.Named("sync"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncAll runs one full cycle: for each configured platform, sellers
// first, then products. A failing leg is recorded and skipped, never
// fatal to the cycle.
func (s *Service) SyncAll(ctx context.Context) *SyncResult {
	start := s.now()
	s.logger.Info("starting data synchronization cycle")

	if s.observer != nil {
		s.observer.SetCycleActive(ctx, true)
		defer s.observer.SetCycleActive(ctx, false)
	}

	var productsUpdated, sellersUpdated int
	for _, adapter := range s.platforms.All() {
		platform := adapter.Code()

		count, err := s.SyncSellers(ctx, platform)
		if err != nil {
			s.logger.Warn("seller sync leg failed",
				zap.String("platform", platform.String()), zap.Error(err))
		}
		sellersUpdated += count

		count, err = s.SyncProducts(ctx, platform)
		if err != nil {
			s.logger.Warn("product sync leg failed",
				zap.String("platform", platform.String()), zap.Error(err))
		}
		productsUpdated += count

		if ctx.Err() != nil {
			break
		}
	}

	duration := s.now().Sub(start)
	if err := ctx.Err(); err != nil {
		result := &SyncResult{
			Success:         false,
			Timestamp:       s.now(),
			ProductsUpdated: productsUpdated,
			SellersUpdated:  sellersUpdated,
			Message:         fmt.Sprintf("sync aborted after %s: %v", duration.Round(time.Millisecond), err),
		}
		s.logger.Warn("sync cycle aborted", zap.String("message", result.Message))
		if s.observer != nil {
			s.observer.RecordCycle(ctx, false, productsUpdated, sellersUpdated, duration)
		}
		return result
	}

	result := &SyncResult{
		Success:         true,
		Timestamp:       s.now(),
		ProductsUpdated: productsUpdated,
		SellersUpdated:  sellersUpdated,
		Message: fmt.Sprintf("sync completed in %s: %d products and %d sellers updated",
			duration.Round(time.Millisecond), productsUpdated, sellersUpdated),
	}
	s.logger.Info("sync cycle finished",
		zap.Int("products_updated", productsUpdated),
		zap.Int("sellers_updated", sellersUpdated),
		zap.Duration("duration", duration))

	if s.observer != nil {
		s.observer.RecordCycle(ctx, true, productsUpdated, sellersUpdated, duration)
	}

	for _, hook := range s.hooks {
		hook(ctx)
	}
	return result
}

// SyncProducts scrapes one platform's product listings and reconciles
// them. Returns the number of records stored.
func (s *Service) SyncProducts(ctx context.Context, platform market.Platform) (int, error) {
	adapter, err := s.platforms.Get(platform)
	if err != nil {
		return 0, err
	}

	run := s.collector.StartRun(ctx, platform, market.CollectionProducts)

	items, err := s.scrape(ctx, platform)
	if err != nil {
		s.collector.FinishRun(ctx, run, 0, err)
		return 0, err
	}

	observations := make([]market.ProductObservation, 0, len(items))
	var mapFailures int
	for _, raw := range items {
		obs, err := adapter.MapProduct(raw)
		if err != nil {
			mapFailures++
			s.logger.Warn("skipping unmappable product record",
				zap.String("platform", platform.String()), zap.Error(err))
			continue
		}
		observations = append(observations, *obs)
	}

	batch := s.collector.ProcessBatch(ctx, observations)
	if mapFailures > 0 || batch.Failed > 0 {
		s.logger.Warn("product sync finished with record failures",
			zap.String("platform", platform.String()),
			zap.Int("map_failures", mapFailures),
			zap.Int("store_failures", batch.Failed))
	}
	if s.observer != nil && mapFailures+batch.Failed > 0 {
		s.observer.RecordFailedRecords(ctx, platform.String(), mapFailures+batch.Failed)
	}

	s.collector.FinishRun(ctx, run, batch.Succeeded, nil)
	return batch.Succeeded, nil
}

// SyncSellers scrapes one platform's seller records and reconciles
// them. Returns the number of records stored.
func (s *Service) SyncSellers(ctx context.Context, platform market.Platform) (int, error) {
	adapter, err := s.platforms.Get(platform)
	if err != nil {
		return 0, err
	}

	run := s.collector.StartRun(ctx, platform, market.CollectionSellers)

	items, err := s.scrape(ctx, platform)
	if err != nil {
		s.collector.FinishRun(ctx, run, 0, err)
		return 0, err
	}

	var stored, failed int
	for _, raw := range items {
		obs, err := adapter.MapSeller(raw)
		if err != nil {
			failed++
			s.logger.Warn("skipping unmappable seller record",
				zap.String("platform", platform.String()), zap.Error(err))
			continue
		}
		if _, err := s.collector.ProcessSeller(ctx, *obs); err != nil {
			failed++
			s.logger.Warn("failed to store seller record",
				zap.String("platform", platform.String()),
				zap.String("seller_uid", obs.SellerUID),
				zap.Error(err))
			continue
		}
		stored++
	}
	if s.observer != nil && failed > 0 {
		s.observer.RecordFailedRecords(ctx, platform.String(), failed)
	}

	s.collector.FinishRun(ctx, run, stored, nil)
	return stored, nil
}

// scrape runs the platform's actor to completion and downloads its dataset
func (s *Service) scrape(ctx context.Context, platform market.Platform) ([]json.RawMessage, error) {
	if s.runner == nil {
		return nil, social.ErrActorNotConfigured
	}
	actorID, ok := s.config.ActorIDs[platform]
	if !ok || actorID == "" {
		return nil, fmt.Errorf("%s: %w", platform, social.ErrActorNotConfigured)
	}

	started := s.now()
	run, err := s.runner.StartRun(ctx, actorID, social.ScrapeRequest{
		SearchQuery: s.config.SearchQuery,
		MaxResults:  s.config.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("start actor run: %w", err)
	}

	final, err := s.runner.WaitForCompletion(ctx, run.ID)
	if s.observer != nil {
		status := social.ActorStatusFailed
		if final != nil {
			status = final.Status
		}
		s.observer.RecordActorRun(ctx, platform.String(), status, s.now().Sub(started))
	}
	if err != nil {
		return nil, fmt.Errorf("wait for actor run %s: %w", run.ID, err)
	}

	items, err := s.runner.FetchResults(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch actor results %s: %w", run.ID, err)
	}
	return items, nil
}
