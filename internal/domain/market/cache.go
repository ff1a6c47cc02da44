package market

import (
	"context"
	"fmt"
	"time"
)

// DefaultRankingTTL is the time-to-live for cached ranking lists when
// the caller does not supply one
const DefaultRankingTTL = 10 * time.Minute

// RankingCache holds top-N product and seller lists between sync
// cycles. A miss is reported through the bool, never through an error.
// Implementations must treat a cached empty list as a hit.
type RankingCache interface {
	GetProducts(ctx context.Context, key string) ([]Product, bool, error)
	SetProducts(ctx context.Context, key string, products []Product, ttl time.Duration) error
	GetSellers(ctx context.Context, key string) ([]Seller, bool, error)
	SetSellers(ctx context.Context, key string, sellers []Seller, ttl time.Duration) error

	// InvalidateAll drops every cached ranking. Called after each
	// successful sync cycle so rankings never outlive fresh data.
	InvalidateAll(ctx context.Context) error

	// Close releases any resources held by the cache
	Close() error
}

// RankingKey builds the cache key for one ranking query
func RankingKey(kind string, limit int, platform *Platform) string {
	if platform == nil {
		return fmt.Sprintf("%s:%d:all", kind, limit)
	}
	return fmt.Sprintf("%s:%d:%s", kind, limit, *platform)
}
