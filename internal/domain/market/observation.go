package market

import "github.com/shopspring/decimal"

// ProductObservation is one normalized product record scraped from a
// platform, before reconciliation. Adapters fill defaults for missing
// source fields (0 for numbers, "" for strings), so an observation is
// always structurally complete even when the upstream record was not.
type ProductObservation struct {
	ProductUID  string
	Name        string
	Platform    Platform
	SellerUID   string
	SellerName  string
	Price       string
	Currency    string
	SoldCount   int
	Rating      string
	ReviewCount int
	Description string
	ImageURL    string
	ProductURL  string
	Category    string
	CostOfGoods decimal.Decimal

	// Seller stats carried on the product record, used when the seller
	// row is created or refreshed through the product path.
	SellerRating      string
	SellerReviewCount int
	SellerItemsSold   int
}

// SellerObservation is one normalized seller record scraped from a
// platform. TotalRevenue/TotalProfit are the platform-reported (or
// adapter-estimated) aggregates that snapshot-overwrite the stored row.
type SellerObservation struct {
	SellerUID       string
	Name            string
	Platform        Platform
	Rating          string
	ReviewCount     int
	ItemsSoldCount  int
	ShopPerformance string
	SellerURL       string
	ProfileImageURL string
	Description     string
	TotalRevenue    decimal.Decimal
	TotalProfit     decimal.Decimal
}

// SellerObservationFromProduct derives the seller observation embedded
// in a product record, used when a product arrives before its seller
// has been synced directly. The product's computed revenue and profit
// become the seller's snapshot totals, so every product reconcile
// refreshes the owning seller's aggregates.
func SellerObservationFromProduct(obs ProductObservation, revenue, profit decimal.Decimal) SellerObservation {
	return SellerObservation{
		SellerUID:      obs.SellerUID,
		Name:           obs.SellerName,
		Platform:       obs.Platform,
		Rating:         obs.SellerRating,
		ReviewCount:    obs.SellerReviewCount,
		ItemsSoldCount: obs.SellerItemsSold,
		TotalRevenue:   revenue,
		TotalProfit:    profit,
	}
}

// Flat-price assumptions for sellers scraped from storefront listings,
// which report a lifetime items-sold figure but no financials.
const (
	estimatedItemPrice   = 200
	estimatedProfitShare = 0.5
)

// EstimateSellerTotals derives snapshot revenue and profit aggregates
// from a seller's lifetime items-sold figure. The seller leg of a sync
// stores this estimate; the product leg then overwrites it with values
// computed from real prices.
func EstimateSellerTotals(itemsSold int) (revenue, profit decimal.Decimal) {
	revenue = decimal.NewFromInt(int64(itemsSold)).Mul(decimal.NewFromInt(estimatedItemPrice))
	profit = revenue.Mul(decimal.NewFromFloat(estimatedProfitShare))
	return revenue, profit
}
