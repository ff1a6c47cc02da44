package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/shared"
)

// RecordResult is the outcome of reconciling one observation
type RecordResult struct {
	ProductUID string `json:"product_uid"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// BatchResult summarizes a reconciliation batch. A failed record never
// aborts the batch; it is counted and reported here instead.
type BatchResult struct {
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []RecordResult `json:"results"`
}

// Service reconciles normalized observations into the store. When
// constructed without repositories (persistence unavailable) every
// write becomes a logged no-op with a zero-value return.
type Service struct {
	sellers  market.SellerRepository
	products market.ProductRepository
	samples  market.MetricSampleRepository
	runs     market.CollectionRunRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a reconciliation service backed by the given repositories
func NewService(
	sellers market.SellerRepository,
	products market.ProductRepository,
	samples market.MetricSampleRepository,
	runs market.CollectionRunRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		sellers:  sellers,
		products: products,
		samples:  samples,
		runs:     runs,
		logger:   logger.Named("collection"),
		now:      time.Now,
	}
}

// NewDetachedService creates a service with no persistence behind it.
// Writes warn and return zero values instead of failing.
func NewDetachedService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger.Named("collection"),
		now:    time.Now,
	}
}

func (s *Service) available() bool {
	return s.sellers != nil && s.products != nil && s.samples != nil
}

// ProcessSeller upserts one seller observation and resolves the stored row
func (s *Service) ProcessSeller(ctx context.Context, obs market.SellerObservation) (*market.Seller, error) {
	if !s.available() {
		s.logger.Warn("persistence unavailable, skipping seller write",
			zap.String("seller_uid", obs.SellerUID))
		return nil, nil
	}

	now := s.now().UTC()
	if err := s.sellers.Upsert(ctx, market.NewSellerFromObservation(obs, now)); err != nil {
		return nil, fmt.Errorf("upsert seller %s: %w", obs.SellerUID, err)
	}

	seller, err := s.sellers.FindByUID(ctx, obs.SellerUID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("seller %s: %w", obs.SellerUID, shared.ErrDependencyMissing)
		}
		return nil, fmt.Errorf("resolve seller %s: %w", obs.SellerUID, err)
	}
	return seller, nil
}

// ProcessProduct reconciles one product observation: computes metrics,
// makes sure the seller row exists, upserts the product snapshot and
// appends one metric sample. The seller must resolve before the
// product is written, and the product before its sample.
func (s *Service) ProcessProduct(ctx context.Context, obs market.ProductObservation) (*market.Product, error) {
	if !s.available() {
		s.logger.Warn("persistence unavailable, skipping product write",
			zap.String("product_uid", obs.ProductUID))
		return nil, nil
	}

	price := ParsePrice(obs.Price)
	revenue, profit := CalculateMetrics(price, obs.SoldCount, obs.CostOfGoods.InexactFloat64())
	revenueDec := decimal.NewFromFloat(revenue)
	profitDec := decimal.NewFromFloat(profit)

	seller, err := s.ProcessSeller(ctx, market.SellerObservationFromProduct(obs, revenueDec, profitDec))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	row := market.NewProductFromObservation(obs, seller.ID, revenueDec, profitDec, now)
	if err := s.products.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("upsert product %s: %w", obs.ProductUID, err)
	}

	product, err := s.products.FindByUID(ctx, obs.ProductUID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", obs.ProductUID, shared.ErrDependencyMissing)
		}
		return nil, fmt.Errorf("resolve product %s: %w", obs.ProductUID, err)
	}

	sample := &market.MetricSample{
		ProductRef:  product.ID,
		SellerRef:   seller.ID,
		SampledAt:   now,
		SoldCount:   obs.SoldCount,
		Revenue:     revenueDec,
		Profit:      profitDec,
		Rating:      obs.Rating,
		ReviewCount: obs.ReviewCount,
	}
	if err := s.samples.Append(ctx, sample); err != nil {
		return nil, fmt.Errorf("append metric sample for %s: %w", obs.ProductUID, err)
	}

	return product, nil
}

// ProcessBatch reconciles a batch of product observations with
// per-record error isolation
func (s *Service) ProcessBatch(ctx context.Context, observations []market.ProductObservation) *BatchResult {
	result := &BatchResult{
		Total:   len(observations),
		Results: make([]RecordResult, 0, len(observations)),
	}

	for _, obs := range observations {
		if _, err := s.ProcessProduct(ctx, obs); err != nil {
			s.logger.Warn("failed to process product record",
				zap.String("product_uid", obs.ProductUID),
				zap.String("platform", obs.Platform.String()),
				zap.Error(err))
			result.Failed++
			result.Results = append(result.Results, RecordResult{
				ProductUID: obs.ProductUID,
				Error:      err.Error(),
			})
			continue
		}
		result.Succeeded++
		result.Results = append(result.Results, RecordResult{
			ProductUID: obs.ProductUID,
			Success:    true,
		})
	}

	return result
}

// StartRun opens an in-progress audit record for one collection leg.
// Audit failures are logged, never escalated.
func (s *Service) StartRun(ctx context.Context, platform market.Platform, collectionType market.CollectionType) *market.CollectionRun {
	run := market.NewCollectionRun(platform, collectionType, s.now().UTC())
	if s.runs == nil {
		s.logger.Warn("persistence unavailable, audit record not stored",
			zap.String("platform", platform.String()))
		return run
	}
	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.Warn("failed to create collection run record", zap.Error(err))
	}
	return run
}

// FinishRun closes an audit record as completed or failed
func (s *Service) FinishRun(ctx context.Context, run *market.CollectionRun, records int, runErr error) {
	now := s.now().UTC()
	if runErr != nil {
		run.Fail(records, runErr.Error(), now)
	} else {
		run.Complete(records, now)
	}

	if s.runs == nil || run.ID == 0 {
		return
	}
	if err := s.runs.Update(ctx, run); err != nil {
		s.logger.Warn("failed to update collection run record",
			zap.Int64("run_id", run.ID), zap.Error(err))
	}
}
