package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/trendlens/backend/internal/domain/market"
)

// GormCollectionRunRepository implements market.CollectionRunRepository using GORM
type GormCollectionRunRepository struct {
	db *gorm.DB
}

// NewGormCollectionRunRepository creates a new GormCollectionRunRepository
func NewGormCollectionRunRepository(db *gorm.DB) *GormCollectionRunRepository {
	return &GormCollectionRunRepository{db: db}
}

var _ market.CollectionRunRepository = (*GormCollectionRunRepository)(nil)

// Create inserts a new audit record
func (r *GormCollectionRunRepository) Create(ctx context.Context, run *market.CollectionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Update saves a run's terminal state
func (r *GormCollectionRunRepository) Update(ctx context.Context, run *market.CollectionRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// Recent returns the latest runs, newest first
func (r *GormCollectionRunRepository) Recent(ctx context.Context, limit int) ([]market.CollectionRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []market.CollectionRun
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
