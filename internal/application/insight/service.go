// Package insight composes analysis prompts over the collected sales
// data, runs them through the text-generation port, and stores the
// returned prose. Generation is best-effort: a generator failure
// yields a nil insight and a warning, nothing more.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/domain/insight"
	"github.com/trendlens/backend/internal/domain/market"
)

const (
	// DefaultLatestLimit caps the insight listing
	DefaultLatestLimit = 10
	// salesSampleSize is how many top records feed a prompt
	salesSampleSize = 20

	confidenceTrend       = 85
	confidenceNiche       = 80
	confidenceSeasonality = 75
	confidenceCompetitor  = 80
)

// salesDatum is one product row serialized into a prompt
type salesDatum struct {
	ProductName string  `json:"productName"`
	SoldCount   int     `json:"soldCount"`
	Revenue     float64 `json:"revenue"`
	Rating      string  `json:"rating"`
	Category    string  `json:"category"`
	Platform    string  `json:"platform"`
}

// competitorDatum is one seller row serialized into a prompt
type competitorDatum struct {
	SellerName    string  `json:"sellerName"`
	AverageRating string  `json:"averageRating"`
	TotalSales    int     `json:"totalSales"`
	TotalRevenue  float64 `json:"totalRevenue"`
	Platform      string  `json:"platform"`
}

// seasonalityDatum is one ledger sample serialized into a prompt
type seasonalityDatum struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Sales    int    `json:"sales"`
}

// Service generates and serves stored insights
type Service struct {
	repo      insight.Repository
	generator insight.TextGenerator
	products  market.ProductRepository
	sellers   market.SellerRepository
	samples   market.MetricSampleRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates an insight service. Generator may be nil, in
// which case every generation call is a logged no-op.
func NewService(
	repo insight.Repository,
	generator insight.TextGenerator,
	products market.ProductRepository,
	sellers market.SellerRepository,
	samples market.MetricSampleRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		products:  products,
		sellers:   sellers,
		samples:   samples,
		logger:    logger.Named("insight"),
		now:       time.Now,
	}
}

// GenerateTrendAnalysis analyzes current top products for trends
func (s *Service) GenerateTrendAnalysis(ctx context.Context) (*insight.Insight, error) {
	data, err := s.salesSample(ctx)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Analyze this sales data and identify key trends:\n\n%s\n\n"+
		"Provide insights about:\n"+
		"1. Top performing categories\n"+
		"2. Emerging trends\n"+
		"3. Seasonal patterns if visible\n"+
		"4. Recommendations for sellers", data)

	return s.generate(ctx,
		"You are an e-commerce analyst expert. Analyze sales data and provide insights about trending products and categories. Be concise and actionable.",
		prompt,
		insight.TypeTrendAnalysis,
		"Sales Trend Analysis",
		confidenceTrend)
}

// GenerateNicheRecommendation surfaces promising niches from current
// top products
func (s *Service) GenerateNicheRecommendation(ctx context.Context) (*insight.Insight, error) {
	data, err := s.salesSample(ctx)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Based on this sales data, identify promising niches:\n\n%s\n\n"+
		"For each niche, provide:\n"+
		"1. Market opportunity\n"+
		"2. Competition level\n"+
		"3. Estimated demand\n"+
		"4. Entry difficulty\n"+
		"5. Profit potential", data)

	return s.generate(ctx,
		"You are a market research expert specializing in e-commerce niches. Identify untapped niches and opportunities based on sales data.",
		prompt,
		insight.TypeNicheRecommendation,
		"Promising Niche Recommendations",
		confidenceNiche)
}

// GenerateSeasonalityAnalysis analyzes the metric ledger of the top
// products over the trailing window for seasonal patterns
func (s *Service) GenerateSeasonalityAnalysis(ctx context.Context, days int) (*insight.Insight, error) {
	if days <= 0 {
		days = 90
	}

	top, err := s.products.TopByRevenue(ctx, 5, nil)
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}

	since := s.now().AddDate(0, 0, -days)
	var history []seasonalityDatum
	for _, product := range top {
		series, err := s.samples.SeriesForProduct(ctx, product.ID, since)
		if err != nil {
			s.logger.Warn("Skipping product ledger in seasonality prompt",
				zap.String("product_uid", product.ProductUID),
				zap.Error(err))
			continue
		}
		for _, sample := range series {
			history = append(history, seasonalityDatum{
				Date:     sample.SampledAt.Format("2006-01-02"),
				Category: product.Category,
				Sales:    sample.SoldCount,
			})
		}
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal seasonality data: %w", err)
	}

	prompt := fmt.Sprintf("Analyze this historical sales data for seasonality patterns:\n\n%s\n\n"+
		"Provide:\n"+
		"1. Seasonal peaks and valleys\n"+
		"2. Peak months for each category\n"+
		"3. Year-over-year growth patterns\n"+
		"4. Recommendations for inventory planning", data)

	return s.generate(ctx,
		"You are a data analyst expert in seasonality patterns. Analyze historical sales data to identify seasonal trends and patterns.",
		prompt,
		insight.TypeSeasonality,
		"Seasonality Analysis",
		confidenceSeasonality)
}

// GenerateCompetitorAnalysis analyzes the current top sellers
func (s *Service) GenerateCompetitorAnalysis(ctx context.Context) (*insight.Insight, error) {
	top, err := s.sellers.TopByRevenue(ctx, salesSampleSize, nil)
	if err != nil {
		return nil, fmt.Errorf("query top sellers: %w", err)
	}

	competitors := make([]competitorDatum, 0, len(top))
	for _, seller := range top {
		competitors = append(competitors, competitorDatum{
			SellerName:    seller.Name,
			AverageRating: seller.Rating,
			TotalSales:    seller.ItemsSoldCount,
			TotalRevenue:  seller.TotalRevenue.InexactFloat64(),
			Platform:      string(seller.Platform),
		})
	}

	data, err := json.MarshalIndent(competitors, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal competitor data: %w", err)
	}

	prompt := fmt.Sprintf("Analyze this competitor data:\n\n%s\n\n"+
		"Provide:\n"+
		"1. Market leaders and their strategies\n"+
		"2. Competitive advantages\n"+
		"3. Market gaps and opportunities\n"+
		"4. Recommendations for differentiation", data)

	return s.generate(ctx,
		"You are a competitive intelligence analyst. Analyze competitor data and provide strategic insights.",
		prompt,
		insight.TypeCompetitor,
		"Competitor Analysis",
		confidenceCompetitor)
}

// Latest returns stored insights, newest first, optionally filtered by
// type
func (s *Service) Latest(ctx context.Context, insightType *insight.Type) ([]insight.Insight, error) {
	return s.repo.Latest(ctx, DefaultLatestLimit, insightType)
}

// salesSample serializes the current top products for a prompt
func (s *Service) salesSample(ctx context.Context) (string, error) {
	top, err := s.products.TopByRevenue(ctx, salesSampleSize, nil)
	if err != nil {
		return "", fmt.Errorf("query top products: %w", err)
	}

	sample := make([]salesDatum, 0, len(top))
	for _, product := range top {
		sample = append(sample, salesDatum{
			ProductName: product.Name,
			SoldCount:   product.SoldCount,
			Revenue:     product.EstimatedRevenue.InexactFloat64(),
			Rating:      product.Rating,
			Category:    product.Category,
			Platform:    string(product.Platform),
		})
	}

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sales data: %w", err)
	}
	return string(data), nil
}

// generate runs one prompt and stores the result. A generator failure
// or empty completion is logged and yields (nil, nil); a store failure
// is logged and the insight is still returned.
func (s *Service) generate(ctx context.Context, system, prompt string, insightType insight.Type, title string, confidence int) (*insight.Insight, error) {
	if s.generator == nil {
		s.logger.Warn("Text generator not configured, skipping insight",
			zap.String("insight_type", string(insightType)))
		return nil, nil
	}

	content, err := s.generator.Generate(ctx, []insight.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	})
	if err != nil || content == "" {
		s.logger.Warn("Insight generation failed",
			zap.String("insight_type", string(insightType)),
			zap.Error(err))
		return nil, nil
	}

	stored := &insight.Insight{
		InsightType: insightType,
		Title:       title,
		Content:     content,
		Confidence:  confidence,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, stored); err != nil {
		s.logger.Warn("Insight store failed",
			zap.String("insight_type", string(insightType)),
			zap.Error(err))
	}
	return stored, nil
}
