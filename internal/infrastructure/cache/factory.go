package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/infrastructure/config"
)

// RankingCacheFactory creates ranking caches based on configuration
type RankingCacheFactory struct {
	backend               string
	ttl                   time.Duration
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// RankingCacheFactoryOption is a functional option for configuring the factory
type RankingCacheFactoryOption func(*RankingCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) RankingCacheFactoryOption {
	return func(f *RankingCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) RankingCacheFactoryOption {
	return func(f *RankingCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewRankingCacheFactory creates a new factory
func NewRankingCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...RankingCacheFactoryOption) *RankingCacheFactory {
	f := &RankingCacheFactory{
		backend:               cacheCfg.Backend,
		ttl:                   cacheCfg.TTL,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed ranking cache
func (f *RankingCacheFactory) CreateRedisCache() (market.RankingCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisRankingCache(redisCfg,
		WithRedisTTL(f.ttl),
		WithRedisLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis ranking cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates a process-local ranking cache.
// WARNING: in-memory rankings are not shared across process instances,
// so each instance warms its own copy after a sync cycle.
func (f *RankingCacheFactory) CreateInMemoryCache() market.RankingCache {
	return NewInMemoryRankingCache(
		WithInMemoryTTL(f.ttl),
		WithInMemoryLogger(f.logger))
}

// CreateCache creates a ranking cache for the configured backend.
// Backend "memory" always yields the in-memory cache; anything else
// tries Redis first and falls back to in-memory when allowed.
func (f *RankingCacheFactory) CreateCache() (market.RankingCache, error) {
	if f.backend == "memory" {
		f.logger.Info("using in-memory ranking cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis ranking cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for ranking cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory ranking cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
