// Package cache holds the ranking cache implementations: a
// process-local store for single-instance deployments and a Redis
// store for shared deployments, selected by a config-driven factory.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/domain/market"
)

const (
	rankingKeyPrefix     = "ranking:"
	defaultScanBatchSize = 100
)

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisRankingCache implements RankingCache using Redis
type RedisRankingCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisRankingCacheOption is a functional option for configuring the cache
type RedisRankingCacheOption func(*RedisRankingCache)

// WithRedisTTL sets the default entry time-to-live
func WithRedisTTL(ttl time.Duration) RedisRankingCacheOption {
	return func(c *RedisRankingCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisRankingCacheOption {
	return func(c *RedisRankingCache) {
		c.logger = logger
	}
}

// NewRedisRankingCache creates a Redis-backed ranking cache and
// verifies the connection before returning
func NewRedisRankingCache(cfg RedisConfig, opts ...RedisRankingCacheOption) (*RedisRankingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisRankingCache{
		client:     client,
		ownsClient: true,
		ttl:        market.DefaultRankingTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisRankingCacheWithClient creates a cache over an existing
// Redis client. The caller retains ownership of the client.
func NewRedisRankingCacheWithClient(client *redis.Client, opts ...RedisRankingCacheOption) *RedisRankingCache {
	cache := &RedisRankingCache{
		client:     client,
		ownsClient: false,
		ttl:        market.DefaultRankingTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisRankingCache) cacheKey(key string) string {
	return rankingKeyPrefix + key
}

// GetProducts retrieves a cached product ranking
func (c *RedisRankingCache) GetProducts(ctx context.Context, key string) ([]market.Product, bool, error) {
	var products []market.Product
	hit, err := c.get(ctx, key, &products)
	return products, hit, err
}

// SetProducts stores a product ranking
func (c *RedisRankingCache) SetProducts(ctx context.Context, key string, products []market.Product, ttl time.Duration) error {
	return c.set(ctx, key, products, ttl)
}

// GetSellers retrieves a cached seller ranking
func (c *RedisRankingCache) GetSellers(ctx context.Context, key string) ([]market.Seller, bool, error) {
	var sellers []market.Seller
	hit, err := c.get(ctx, key, &sellers)
	return sellers, hit, err
}

// SetSellers stores a seller ranking
func (c *RedisRankingCache) SetSellers(ctx context.Context, key string, sellers []market.Seller, ttl time.Duration) error {
	return c.set(ctx, key, sellers, ttl)
}

func (c *RedisRankingCache) get(ctx context.Context, key string, out any) (bool, error) {
	cacheKey := c.cacheKey(key)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for ranking", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get ranking from cache",
			zap.String("key", key),
			zap.Error(err))
		return false, fmt.Errorf("failed to get ranking from cache: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error("Failed to unmarshal cached ranking",
			zap.String("key", key),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return false, fmt.Errorf("failed to unmarshal ranking: %w", err)
	}

	c.logger.Debug("Cache hit for ranking", zap.String("key", key))
	return true, nil
}

func (c *RedisRankingCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	cacheKey := c.cacheKey(key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal ranking: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set ranking in cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to set ranking in cache: %w", err)
	}

	c.logger.Debug("Cached ranking",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// InvalidateAll removes all cached rankings. Uses SCAN to avoid
// blocking Redis with the KEYS command.
func (c *RedisRankingCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, rankingKeyPrefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan ranking keys", zap.Error(err))
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete ranking keys", zap.Error(err))
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Invalidated all cached rankings", zap.Int64("deleted_count", deletedCount))
	return nil
}

// Close releases the Redis client when this cache owns it
func (c *RedisRankingCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisRankingCache implements RankingCache
var _ market.RankingCache = (*RedisRankingCache)(nil)
