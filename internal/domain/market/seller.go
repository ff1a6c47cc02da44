package market

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trendlens/backend/internal/domain/shared"
)

// Seller is a storefront observed on a social-commerce platform.
// SellerUID is the platform natural key; ID is the surrogate key other
// tables reference. Derived aggregates (TotalRevenue, TotalProfit) are
// snapshot-overwritten on every sync, not accumulated.
type Seller struct {
	shared.BaseRecord
	SellerUID       string          `json:"seller_uid" gorm:"column:seller_uid;size:255;not null;uniqueIndex"`
	Name            string          `json:"name" gorm:"size:500;not null"`
	Platform        Platform        `json:"platform" gorm:"size:32;not null;index"`
	Rating          string          `json:"rating" gorm:"size:10"`
	ReviewCount     int             `json:"review_count" gorm:"not null;default:0"`
	ItemsSoldCount  int             `json:"items_sold_count" gorm:"not null;default:0"`
	ShopPerformance string          `json:"shop_performance" gorm:"size:50"`
	SellerURL       string          `json:"seller_url" gorm:"size:1000"`
	ProfileImageURL string          `json:"profile_image_url" gorm:"size:1000"`
	Description     string          `json:"description" gorm:"type:text"`
	TotalRevenue    decimal.Decimal `json:"total_revenue" gorm:"type:decimal(18,2);not null;default:0"`
	TotalProfit     decimal.Decimal `json:"total_profit" gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName specifies the table name for GORM
func (Seller) TableName() string {
	return "sellers"
}

// ApplyObservation overwrites the mutable snapshot fields from a fresh
// observation. Identity fields (SellerUID, Platform) and bookkeeping
// fields (ID, CreatedAt) are left untouched.
func (s *Seller) ApplyObservation(obs SellerObservation, now time.Time) {
	s.Name = obs.Name
	s.Rating = obs.Rating
	s.ReviewCount = obs.ReviewCount
	s.ItemsSoldCount = obs.ItemsSoldCount
	s.ShopPerformance = obs.ShopPerformance
	s.SellerURL = obs.SellerURL
	s.ProfileImageURL = obs.ProfileImageURL
	s.Description = obs.Description
	s.TotalRevenue = obs.TotalRevenue
	s.TotalProfit = obs.TotalProfit
	s.LastUpdated = now
}

// NewSellerFromObservation builds a seller row ready for insert
func NewSellerFromObservation(obs SellerObservation, now time.Time) *Seller {
	s := &Seller{
		SellerUID: obs.SellerUID,
		Platform:  obs.Platform,
	}
	s.Touch(now)
	s.ApplyObservation(obs, now)
	return s
}
