package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricSample is one row of the append-only metrics ledger. Samples
// are never updated or deduplicated: processing the same product twice
// yields two rows, and a sold count lower than the previous sample is
// recorded exactly as observed.
type MetricSample struct {
	ID          int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductRef  int64           `json:"product_ref" gorm:"not null;index"`
	SellerRef   int64           `json:"seller_ref" gorm:"not null;index"`
	SampledAt   time.Time       `json:"sampled_at" gorm:"not null;index"`
	SoldCount   int             `json:"sold_count" gorm:"not null;default:0"`
	Revenue     decimal.Decimal `json:"revenue" gorm:"type:decimal(18,2);not null;default:0"`
	Profit      decimal.Decimal `json:"profit" gorm:"type:decimal(18,2);not null;default:0"`
	Rating      string          `json:"rating" gorm:"size:10"`
	ReviewCount int             `json:"review_count" gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (MetricSample) TableName() string {
	return "metric_samples"
}
