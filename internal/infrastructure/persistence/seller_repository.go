package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/shared"
)

// sellerUpsertColumns are the snapshot fields refreshed when a seller
// with the same natural key already exists. Identity and bookkeeping
// columns (seller_uid, platform, id, created_at) are never touched.
var sellerUpsertColumns = []string{
	"rating",
	"review_count",
	"items_sold_count",
	"total_revenue",
	"total_profit",
	"last_updated",
}

// GormSellerRepository implements market.SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

var _ market.SellerRepository = (*GormSellerRepository)(nil)

// Upsert inserts the seller or refreshes the snapshot fields of the
// existing row with the same natural key
func (r *GormSellerRepository) Upsert(ctx context.Context, seller *market.Seller) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "seller_uid"}},
			DoUpdates: clause.AssignmentColumns(sellerUpsertColumns),
		}).
		Create(seller).Error
}

// FindByUID finds a seller by its platform natural key
func (r *GormSellerRepository) FindByUID(ctx context.Context, uid string) (*market.Seller, error) {
	var seller market.Seller
	if err := r.db.WithContext(ctx).First(&seller, "seller_uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &seller, nil
}

// FindByID finds a seller by its surrogate id
func (r *GormSellerRepository) FindByID(ctx context.Context, id int64) (*market.Seller, error) {
	var seller market.Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &seller, nil
}

// TopByRevenue returns sellers ordered by total revenue descending
func (r *GormSellerRepository) TopByRevenue(ctx context.Context, limit int, platform *market.Platform) ([]market.Seller, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&market.Seller{}).
		Order("total_revenue DESC").
		Limit(limit)
	if platform != nil {
		query = query.Where("platform = ?", *platform)
	}

	var sellers []market.Seller
	if err := query.Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}
