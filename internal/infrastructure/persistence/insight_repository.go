package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/trendlens/backend/internal/domain/insight"
)

// GormInsightRepository implements insight.Repository using GORM
type GormInsightRepository struct {
	db *gorm.DB
}

// NewGormInsightRepository creates a new GormInsightRepository
func NewGormInsightRepository(db *gorm.DB) *GormInsightRepository {
	return &GormInsightRepository{db: db}
}

var _ insight.Repository = (*GormInsightRepository)(nil)

// Create inserts a new insight
func (r *GormInsightRepository) Create(ctx context.Context, ins *insight.Insight) error {
	return r.db.WithContext(ctx).Create(ins).Error
}

// Latest returns the newest insights, optionally filtered by type
func (r *GormInsightRepository) Latest(ctx context.Context, limit int, insightType *insight.Type) ([]insight.Insight, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit)
	if insightType != nil {
		query = query.Where("insight_type = ?", *insightType)
	}

	var insights []insight.Insight
	if err := query.Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}
