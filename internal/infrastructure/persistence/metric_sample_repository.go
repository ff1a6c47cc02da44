package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/trendlens/backend/internal/domain/market"
)

// GormMetricSampleRepository implements market.MetricSampleRepository
// using GORM. The ledger is append-only: there is deliberately no
// update or upsert path here.
type GormMetricSampleRepository struct {
	db *gorm.DB
}

// NewGormMetricSampleRepository creates a new GormMetricSampleRepository
func NewGormMetricSampleRepository(db *gorm.DB) *GormMetricSampleRepository {
	return &GormMetricSampleRepository{db: db}
}

var _ market.MetricSampleRepository = (*GormMetricSampleRepository)(nil)

// Append inserts a new sample row unconditionally
func (r *GormMetricSampleRepository) Append(ctx context.Context, sample *market.MetricSample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

// SeriesForProduct returns samples for a product since the given time,
// oldest first
func (r *GormMetricSampleRepository) SeriesForProduct(ctx context.Context, productRef int64, since time.Time) ([]market.MetricSample, error) {
	var samples []market.MetricSample
	if err := r.db.WithContext(ctx).
		Where("product_ref = ? AND sampled_at >= ?", productRef, since).
		Order("sampled_at ASC").
		Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}
