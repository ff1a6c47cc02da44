package market

import (
	"context"
	"time"
)

// SellerRepository persists sellers keyed by platform natural key
type SellerRepository interface {
	// Upsert inserts the seller or, when a row with the same natural
	// key exists, overwrites its mutable snapshot fields. Surrogate id
	// and created_at are never modified on the update path.
	Upsert(ctx context.Context, seller *Seller) error
	// FindByUID resolves the stored row (and its surrogate id) by
	// natural key. Returns shared.ErrNotFound when absent.
	FindByUID(ctx context.Context, uid string) (*Seller, error)
	FindByID(ctx context.Context, id int64) (*Seller, error)
	// TopByRevenue returns sellers ordered by total_revenue descending,
	// optionally restricted to one platform.
	TopByRevenue(ctx context.Context, limit int, platform *Platform) ([]Seller, error)
}

// ProductRepository persists products keyed by platform natural key
type ProductRepository interface {
	Upsert(ctx context.Context, product *Product) error
	FindByUID(ctx context.Context, uid string) (*Product, error)
	FindByID(ctx context.Context, id int64) (*Product, error)
	TopByRevenue(ctx context.Context, limit int, platform *Platform) ([]Product, error)
}

// MetricSampleRepository is the append-only metrics ledger
type MetricSampleRepository interface {
	// Append inserts a new sample unconditionally. There is no upsert
	// path: the ledger is strictly append-only.
	Append(ctx context.Context, sample *MetricSample) error
	// SeriesForProduct returns samples for a product since the given
	// time, oldest first.
	SeriesForProduct(ctx context.Context, productRef int64, since time.Time) ([]MetricSample, error)
}

// CollectionRunRepository persists the collection audit trail
type CollectionRunRepository interface {
	Create(ctx context.Context, run *CollectionRun) error
	Update(ctx context.Context, run *CollectionRun) error
	Recent(ctx context.Context, limit int) ([]CollectionRun, error)
}
