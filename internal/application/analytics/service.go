// Package analytics serves the dashboard read side: revenue rankings,
// single-record lookups, metric trend series and the collection audit
// trail. Rankings are served through the ranking cache; everything
// else reads straight from the repositories.
package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/domain/market"
)

const (
	// DefaultRankingLimit caps rankings when the caller passes no limit
	DefaultRankingLimit = 10
	// MaxRankingLimit bounds rankings regardless of what the caller asks for
	MaxRankingLimit = 100
	// DefaultTrendDays is the trend window when the caller passes none
	DefaultTrendDays = 30
	// DefaultRunsLimit caps the audit trail listing
	DefaultRunsLimit = 20

	productRankingKind = "products"
	sellerRankingKind  = "sellers"
)

// Service answers dashboard queries over the collected data
type Service struct {
	products market.ProductRepository
	sellers  market.SellerRepository
	samples  market.MetricSampleRepository
	runs     market.CollectionRunRepository
	cache    market.RankingCache
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates an analytics service. Cache may be nil, in which
// case every ranking query goes to the repository.
func NewService(
	products market.ProductRepository,
	sellers market.SellerRepository,
	samples market.MetricSampleRepository,
	runs market.CollectionRunRepository,
	cache market.RankingCache,
	logger *zap.Logger,
) *Service {
	return &Service{
		products: products,
		sellers:  sellers,
		samples:  samples,
		runs:     runs,
		cache:    cache,
		ttl:      market.DefaultRankingTTL,
		logger:   logger.Named("analytics"),
		now:      time.Now,
	}
}

// TopProducts returns products ordered by estimated revenue, highest
// first, optionally restricted to one platform
func (s *Service) TopProducts(ctx context.Context, limit int, platform *market.Platform) ([]market.Product, error) {
	limit = clampLimit(limit)
	key := market.RankingKey(productRankingKind, limit, platform)

	if s.cache != nil {
		cached, hit, err := s.cache.GetProducts(ctx, key)
		if err != nil {
			s.logger.Warn("Product ranking cache read failed",
				zap.String("key", key),
				zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	products, err := s.products.TopByRevenue(ctx, limit, platform)
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetProducts(ctx, key, products, s.ttl); err != nil {
			s.logger.Warn("Product ranking cache write failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}
	return products, nil
}

// TopSellers returns sellers ordered by total revenue, highest first,
// optionally restricted to one platform
func (s *Service) TopSellers(ctx context.Context, limit int, platform *market.Platform) ([]market.Seller, error) {
	limit = clampLimit(limit)
	key := market.RankingKey(sellerRankingKind, limit, platform)

	if s.cache != nil {
		cached, hit, err := s.cache.GetSellers(ctx, key)
		if err != nil {
			s.logger.Warn("Seller ranking cache read failed",
				zap.String("key", key),
				zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	sellers, err := s.sellers.TopByRevenue(ctx, limit, platform)
	if err != nil {
		return nil, fmt.Errorf("query top sellers: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetSellers(ctx, key, sellers, s.ttl); err != nil {
			s.logger.Warn("Seller ranking cache write failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}
	return sellers, nil
}

// ProductByUID resolves one product by its platform natural key.
// Returns shared.ErrNotFound when absent.
func (s *Service) ProductByUID(ctx context.Context, productUID string) (*market.Product, error) {
	return s.products.FindByUID(ctx, productUID)
}

// SellerByUID resolves one seller by its platform natural key.
// Returns shared.ErrNotFound when absent.
func (s *Service) SellerByUID(ctx context.Context, sellerUID string) (*market.Seller, error) {
	return s.sellers.FindByUID(ctx, sellerUID)
}

// ProductTrend returns the metric samples recorded for a product over
// the trailing window, oldest first. Days at or below zero means the
// default window.
func (s *Service) ProductTrend(ctx context.Context, productUID string, days int) ([]market.MetricSample, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	product, err := s.products.FindByUID(ctx, productUID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -days)
	series, err := s.samples.SeriesForProduct(ctx, product.ID, since)
	if err != nil {
		return nil, fmt.Errorf("query trend for %s: %w", productUID, err)
	}
	return series, nil
}

// RecentRuns returns the newest collection audit records
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]market.CollectionRun, error) {
	if limit <= 0 || limit > MaxRankingLimit {
		limit = DefaultRunsLimit
	}
	return s.runs.Recent(ctx, limit)
}

// InvalidateRankings drops every cached ranking. Wired as an
// after-sync hook so stale rankings never survive a cycle.
func (s *Service) InvalidateRankings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("Ranking cache invalidation failed", zap.Error(err))
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRankingLimit
	}
	if limit > MaxRankingLimit {
		return MaxRankingLimit
	}
	return limit
}
