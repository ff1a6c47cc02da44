// Package notification composes and delivers alerts: an in-app row is
// always persisted, and an email copy goes out through the configured
// sender. The after-sync evaluation decides which alerts a fresh data
// cycle warrants.
package notification

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/notification"
)

// Config holds alerting thresholds
type Config struct {
	// Enabled gates the after-sync evaluation; direct Notify calls
	// always run
	Enabled bool
	// TopProductRank is the ranking window a product must enter to
	// fire a trending alert
	TopProductRank int
	// SellerMilestones are cumulative items-sold thresholds, ascending
	SellerMilestones []int64
	// DefaultUserID receives system-generated alerts
	DefaultUserID string
}

// DefaultConfig returns the default alerting configuration
func DefaultConfig() Config {
	return Config{
		Enabled:          true,
		TopProductRank:   10,
		SellerMilestones: []int64{10000, 100000, 1000000},
		DefaultUserID:    "system",
	}
}

func (c *Config) applyDefaults() {
	if c.TopProductRank <= 0 {
		c.TopProductRank = 10
	}
	if len(c.SellerMilestones) == 0 {
		c.SellerMilestones = []int64{10000, 100000, 1000000}
	}
	if c.DefaultUserID == "" {
		c.DefaultUserID = "system"
	}
}

// Service persists in-app alerts and mirrors them to email
type Service struct {
	repo        notification.Repository
	email       notification.EmailSender
	products    market.ProductRepository
	sellers     market.SellerRepository
	config      Config
	logger      *zap.Logger
	recordAlert func(ctx context.Context, alertType string)

	// Alert state from earlier evaluations, so a product that stays in
	// the ranking or a milestone already announced does not re-fire
	// every cycle. Held in memory only; a restart reseeds from storage.
	mu                sync.Mutex
	seeded            bool
	knownTop          map[string]struct{}
	notifiedMilestone map[string]int64
}

// Option configures optional service behavior
type Option func(*Service)

// WithAlertRecorder attaches a sink that counts delivered alerts by type
func WithAlertRecorder(record func(ctx context.Context, alertType string)) Option {
	return func(s *Service) {
		s.recordAlert = record
	}
}

// NewService creates a notification service
func NewService(
	repo notification.Repository,
	email notification.EmailSender,
	products market.ProductRepository,
	sellers market.SellerRepository,
	config Config,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	config.applyDefaults()
	s := &Service{
		repo:              repo,
		email:             email,
		products:          products,
		sellers:           sellers,
		config:            config,
		logger:            logger.Named("notification"),
		knownTop:          make(map[string]struct{}),
		notifiedMilestone: make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NotifyTopProduct records a trending-product alert
func (s *Service) NotifyTopProduct(ctx context.Context, product *market.Product, rank int) (*notification.Notification, error) {
	title := fmt.Sprintf("Trending product: %s", product.Name)
	message := fmt.Sprintf("%s entered the top %d on %s at rank #%d with estimated revenue %s.",
		product.Name, s.config.TopProductRank, product.Platform, rank, product.EstimatedRevenue.StringFixed(2))

	return s.deliver(ctx, &notification.Notification{
		UserID:     s.config.DefaultUserID,
		Type:       notification.TypeTopProduct,
		Title:      title,
		Message:    message,
		ProductRef: &product.ID,
	})
}

// NotifySellerMilestone records a seller sales-milestone alert
func (s *Service) NotifySellerMilestone(ctx context.Context, seller *market.Seller, milestone int64) (*notification.Notification, error) {
	title := fmt.Sprintf("Seller milestone: %s", seller.Name)
	message := fmt.Sprintf("%s on %s passed %d items sold (currently %d).",
		seller.Name, seller.Platform, milestone, seller.ItemsSoldCount)

	return s.deliver(ctx, &notification.Notification{
		UserID:    s.config.DefaultUserID,
		Type:      notification.TypeSellerMilestone,
		Title:     title,
		Message:   message,
		SellerRef: &seller.ID,
	})
}

// NotifyTrend records a free-form trend alert
func (s *Service) NotifyTrend(ctx context.Context, userID, title, message string) (*notification.Notification, error) {
	if userID == "" {
		userID = s.config.DefaultUserID
	}
	return s.deliver(ctx, &notification.Notification{
		UserID:  userID,
		Type:    notification.TypeTrendAlert,
		Title:   title,
		Message: message,
	})
}

// deliver persists the in-app row, then mirrors it to email. Email
// failure is logged and swallowed; the stored row is the source of
// truth for the alert.
func (s *Service) deliver(ctx context.Context, n *notification.Notification) (*notification.Notification, error) {
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}

	if s.recordAlert != nil {
		s.recordAlert(ctx, string(n.Type))
	}

	if s.email != nil {
		err := s.email.Send(ctx, notification.Email{
			To:      n.UserID,
			Subject: n.Title,
			Body:    n.Message,
		})
		if err != nil {
			s.logger.Warn("Alert email delivery failed",
				zap.String("title", n.Title),
				zap.Error(err))
		}
	}

	return n, nil
}

// Unread returns the unread alerts for a user, newest first
func (s *Service) Unread(ctx context.Context, userID string) ([]notification.Notification, error) {
	if userID == "" {
		userID = s.config.DefaultUserID
	}
	return s.repo.Unread(ctx, userID)
}

// UnreadCount returns the number of unread alerts for a user
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		userID = s.config.DefaultUserID
	}
	return s.repo.UnreadCount(ctx, userID)
}

// MarkRead marks one alert as read. Returns shared.ErrNotFound when
// the alert does not exist.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}

// EvaluateAfterSync inspects the freshly synced rankings and fires the
// alerts they warrant. Wired as an after-sync hook. The first
// evaluation seeds the known-top set without alerting, so a restart
// does not replay alerts for products already ranked.
func (s *Service) EvaluateAfterSync(ctx context.Context) {
	if !s.config.Enabled {
		return
	}

	s.evaluateTopProducts(ctx)
	s.evaluateSellerMilestones(ctx)
}

func (s *Service) evaluateTopProducts(ctx context.Context) {
	top, err := s.products.TopByRevenue(ctx, s.config.TopProductRank, nil)
	if err != nil {
		s.logger.Warn("Top-product alert evaluation failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	seeded := s.seeded
	previous := s.knownTop
	current := make(map[string]struct{}, len(top))
	for _, product := range top {
		current[product.ProductUID] = struct{}{}
	}
	s.knownTop = current
	s.seeded = true
	s.mu.Unlock()

	if !seeded {
		return
	}

	for rank, product := range top {
		if _, known := previous[product.ProductUID]; known {
			continue
		}
		if _, err := s.NotifyTopProduct(ctx, &product, rank+1); err != nil {
			s.logger.Warn("Top-product alert failed",
				zap.String("product_uid", product.ProductUID),
				zap.Error(err))
		}
	}
}

func (s *Service) evaluateSellerMilestones(ctx context.Context) {
	top, err := s.sellers.TopByRevenue(ctx, s.config.TopProductRank, nil)
	if err != nil {
		s.logger.Warn("Seller milestone evaluation failed", zap.Error(err))
		return
	}

	for _, seller := range top {
		milestone := s.highestMilestone(int64(seller.ItemsSoldCount))
		if milestone == 0 {
			continue
		}

		s.mu.Lock()
		alreadyNotified := s.notifiedMilestone[seller.SellerUID] >= milestone
		if !alreadyNotified {
			s.notifiedMilestone[seller.SellerUID] = milestone
		}
		s.mu.Unlock()

		if alreadyNotified {
			continue
		}
		if _, err := s.NotifySellerMilestone(ctx, &seller, milestone); err != nil {
			s.logger.Warn("Seller milestone alert failed",
				zap.String("seller_uid", seller.SellerUID),
				zap.Error(err))
		}
	}
}

// highestMilestone returns the largest configured milestone at or
// below the sold count, zero when none is reached
func (s *Service) highestMilestone(soldCount int64) int64 {
	var reached int64
	for _, milestone := range s.config.SellerMilestones {
		if soldCount >= milestone && milestone > reached {
			reached = milestone
		}
	}
	return reached
}
