package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/domain/market"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryRankingCache implements RankingCache with process-local
// storage. Suitable for single-instance deployments and tests;
// rankings cached here are not shared across instances.
type InMemoryRankingCache struct {
	products sync.Map // map[string]*cacheEntry[[]market.Product]
	sellers  sync.Map // map[string]*cacheEntry[[]market.Seller]
	ttl      time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	stopped  int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached value with expiration time
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e *cacheEntry[T]) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryRankingCacheOption is a functional option for configuring the cache
type InMemoryRankingCacheOption func(*InMemoryRankingCache)

// WithInMemoryTTL sets the default entry time-to-live
func WithInMemoryTTL(ttl time.Duration) InMemoryRankingCacheOption {
	return func(c *InMemoryRankingCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryRankingCacheOption {
	return func(c *InMemoryRankingCache) {
		c.logger = logger
	}
}

// NewInMemoryRankingCache creates a new in-memory ranking cache
func NewInMemoryRankingCache(opts ...InMemoryRankingCacheOption) *InMemoryRankingCache {
	cache := &InMemoryRankingCache{
		ttl:    market.DefaultRankingTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// GetProducts retrieves a cached product ranking
func (c *InMemoryRankingCache) GetProducts(ctx context.Context, key string) ([]market.Product, bool, error) {
	if value, ok := c.products.Load(key); ok {
		entry := value.(*cacheEntry[[]market.Product])
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Cache hit for product ranking", zap.String("key", key))
			return entry.value, true, nil
		}
		c.products.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Cache miss for product ranking", zap.String("key", key))
	return nil, false, nil
}

// SetProducts stores a product ranking
func (c *InMemoryRankingCache) SetProducts(ctx context.Context, key string, products []market.Product, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	c.products.Store(key, &cacheEntry[[]market.Product]{
		value:     products,
		expiresAt: time.Now().Add(ttl),
	})
	c.logger.Debug("Cached product ranking",
		zap.String("key", key),
		zap.Int("count", len(products)),
		zap.Duration("ttl", ttl))
	return nil
}

// GetSellers retrieves a cached seller ranking
func (c *InMemoryRankingCache) GetSellers(ctx context.Context, key string) ([]market.Seller, bool, error) {
	if value, ok := c.sellers.Load(key); ok {
		entry := value.(*cacheEntry[[]market.Seller])
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Cache hit for seller ranking", zap.String("key", key))
			return entry.value, true, nil
		}
		c.sellers.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Cache miss for seller ranking", zap.String("key", key))
	return nil, false, nil
}

// SetSellers stores a seller ranking
func (c *InMemoryRankingCache) SetSellers(ctx context.Context, key string, sellers []market.Seller, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	c.sellers.Store(key, &cacheEntry[[]market.Seller]{
		value:     sellers,
		expiresAt: time.Now().Add(ttl),
	})
	c.logger.Debug("Cached seller ranking",
		zap.String("key", key),
		zap.Int("count", len(sellers)),
		zap.Duration("ttl", ttl))
	return nil
}

// InvalidateAll drops every cached ranking
func (c *InMemoryRankingCache) InvalidateAll(ctx context.Context) error {
	c.products.Range(func(key, _ any) bool {
		c.products.Delete(key)
		return true
	})
	c.sellers.Range(func(key, _ any) bool {
		c.sellers.Delete(key)
		return true
	})

	c.logger.Debug("Invalidated all cached rankings")
	return nil
}

// Close stops the background cleanup. Safe to call more than once.
func (c *InMemoryRankingCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns hit and miss counters
func (c *InMemoryRankingCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// cleanupExpired periodically removes expired entries
func (c *InMemoryRankingCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

func (c *InMemoryRankingCache) doCleanup() {
	var removed int

	c.products.Range(func(key, value any) bool {
		if value.(*cacheEntry[[]market.Product]).isExpired() {
			c.products.Delete(key)
			removed++
		}
		return true
	})
	c.sellers.Range(func(key, value any) bool {
		if value.(*cacheEntry[[]market.Seller]).isExpired() {
			c.sellers.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Cleaned up expired ranking entries", zap.Int("removed", removed))
	}
}

// Ensure InMemoryRankingCache implements RankingCache
var _ market.RankingCache = (*InMemoryRankingCache)(nil)
