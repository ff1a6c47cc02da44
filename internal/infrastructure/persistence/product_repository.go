package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/shared"
)

// productUpsertColumns are the snapshot fields refreshed when a product
// with the same natural key already exists
var productUpsertColumns = []string{
	"sold_count",
	"rating",
	"review_count",
	"price",
	"estimated_revenue",
	"estimated_profit",
	"last_updated",
}

// GormProductRepository implements market.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

var _ market.ProductRepository = (*GormProductRepository)(nil)

// Upsert inserts the product or refreshes the snapshot fields of the
// existing row with the same natural key
func (r *GormProductRepository) Upsert(ctx context.Context, product *market.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_uid"}},
			DoUpdates: clause.AssignmentColumns(productUpsertColumns),
		}).
		Create(product).Error
}

// FindByUID finds a product by its platform natural key
func (r *GormProductRepository) FindByUID(ctx context.Context, uid string) (*market.Product, error) {
	var product market.Product
	if err := r.db.WithContext(ctx).First(&product, "product_uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByID finds a product by its surrogate id
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*market.Product, error) {
	var product market.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// TopByRevenue returns products ordered by estimated revenue descending
func (r *GormProductRepository) TopByRevenue(ctx context.Context, limit int, platform *market.Platform) ([]market.Product, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&market.Product{}).
		Order("estimated_revenue DESC").
		Limit(limit)
	if platform != nil {
		query = query.Where("platform = ?", *platform)
	}

	var products []market.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
