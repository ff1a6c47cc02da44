package market

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trendlens/backend/internal/domain/shared"
)

// Product is a listing observed on a social-commerce platform.
// ProductUID is the platform natural key. Price keeps the raw scraped
// string (currency symbols included); the parsed value only exists
// inside the metric computation. SellerRef must point at an existing
// sellers row before the product may be written.
type Product struct {
	shared.BaseRecord
	ProductUID       string          `json:"product_uid" gorm:"column:product_uid;size:255;not null;uniqueIndex"`
	Name             string          `json:"name" gorm:"size:1000;not null"`
	Platform         Platform        `json:"platform" gorm:"size:32;not null;index"`
	SellerRef        int64           `json:"seller_ref" gorm:"not null;index"`
	Price            string          `json:"price" gorm:"size:50;not null"`
	Currency         string          `json:"currency" gorm:"size:10;not null;default:'USD'"`
	SoldCount        int             `json:"sold_count" gorm:"not null;default:0"`
	Rating           string          `json:"rating" gorm:"size:10"`
	ReviewCount      int             `json:"review_count" gorm:"not null;default:0"`
	Description      string          `json:"description" gorm:"type:text"`
	ImageURL         string          `json:"image_url" gorm:"size:1000"`
	ProductURL       string          `json:"product_url" gorm:"size:1000"`
	Category         string          `json:"category" gorm:"size:255"`
	EstimatedRevenue decimal.Decimal `json:"estimated_revenue" gorm:"type:decimal(18,2);not null;default:0"`
	EstimatedProfit  decimal.Decimal `json:"estimated_profit" gorm:"type:decimal(18,2);not null;default:0"`
	CostOfGoods      decimal.Decimal `json:"cost_of_goods" gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ApplyObservation overwrites the mutable snapshot fields from a fresh
// observation plus the metrics computed for it
func (p *Product) ApplyObservation(obs ProductObservation, revenue, profit decimal.Decimal, now time.Time) {
	p.Name = obs.Name
	p.Price = obs.Price
	if obs.Currency != "" {
		p.Currency = obs.Currency
	}
	p.SoldCount = obs.SoldCount
	p.Rating = obs.Rating
	p.ReviewCount = obs.ReviewCount
	p.Description = obs.Description
	p.ImageURL = obs.ImageURL
	p.ProductURL = obs.ProductURL
	p.Category = obs.Category
	p.EstimatedRevenue = revenue
	p.EstimatedProfit = profit
	p.CostOfGoods = obs.CostOfGoods
	p.LastUpdated = now
}

// NewProductFromObservation builds a product row ready for insert
func NewProductFromObservation(obs ProductObservation, sellerRef int64, revenue, profit decimal.Decimal, now time.Time) *Product {
	p := &Product{
		ProductUID: obs.ProductUID,
		Platform:   obs.Platform,
		SellerRef:  sellerRef,
		Currency:   "USD",
	}
	p.Touch(now)
	p.ApplyObservation(obs, revenue, profit, now)
	return p
}
