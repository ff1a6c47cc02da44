package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	syncapp "github.com/trendlens/backend/internal/application/sync"
	"github.com/trendlens/backend/internal/domain/insight"
	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/notification"
	"github.com/trendlens/backend/internal/domain/social"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Upsert(ctx context.Context, product *market.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByUID(ctx context.Context, uid string) (*market.Product, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*market.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Product), args.Error(1)
}

func (m *MockProductRepository) TopByRevenue(ctx context.Context, limit int, platform *market.Platform) ([]market.Product, error) {
	args := m.Called(ctx, limit, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]market.Product), args.Error(1)
}

type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) Upsert(ctx context.Context, seller *market.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

func (m *MockSellerRepository) FindByUID(ctx context.Context, uid string) (*market.Seller, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindByID(ctx context.Context, id int64) (*market.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Seller), args.Error(1)
}

func (m *MockSellerRepository) TopByRevenue(ctx context.Context, limit int, platform *market.Platform) ([]market.Seller, error) {
	args := m.Called(ctx, limit, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]market.Seller), args.Error(1)
}

type MockMetricSampleRepository struct {
	mock.Mock
}

func (m *MockMetricSampleRepository) Append(ctx context.Context, sample *market.MetricSample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockMetricSampleRepository) SeriesForProduct(ctx context.Context, productRef int64, since time.Time) ([]market.MetricSample, error) {
	args := m.Called(ctx, productRef, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]market.MetricSample), args.Error(1)
}

type MockCollectionRunRepository struct {
	mock.Mock
}

func (m *MockCollectionRunRepository) Create(ctx context.Context, run *market.CollectionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockCollectionRunRepository) Update(ctx context.Context, run *market.CollectionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockCollectionRunRepository) Recent(ctx context.Context, limit int) ([]market.CollectionRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]market.CollectionRun), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Unread(ctx context.Context, userID string) ([]notification.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInsightRepository struct {
	mock.Mock
}

func (m *MockInsightRepository) Create(ctx context.Context, ins *insight.Insight) error {
	args := m.Called(ctx, ins)
	return args.Error(0)
}

func (m *MockInsightRepository) Latest(ctx context.Context, limit int, insightType *insight.Type) ([]insight.Insight, error) {
	args := m.Called(ctx, limit, insightType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]insight.Insight), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, messages []insight.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

type MockSocialPlatform struct {
	mock.Mock
	code market.Platform
}

func (m *MockSocialPlatform) Code() market.Platform {
	return m.code
}

func (m *MockSocialPlatform) FetchUserInfo(ctx context.Context, userID string) (*social.CreatorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.CreatorProfile), args.Error(1)
}

func (m *MockSocialPlatform) FetchTopPosts(ctx context.Context, userID string, count int) ([]social.Post, error) {
	args := m.Called(ctx, userID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]social.Post), args.Error(1)
}

func (m *MockSocialPlatform) AnalyzePerformance(ctx context.Context, userID string) (*social.PerformanceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.PerformanceSummary), args.Error(1)
}

func (m *MockSocialPlatform) MapProduct(raw json.RawMessage) (*market.ProductObservation, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.ProductObservation), args.Error(1)
}

func (m *MockSocialPlatform) MapSeller(raw json.RawMessage) (*market.SellerObservation, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.SellerObservation), args.Error(1)
}

type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) SyncAll(ctx context.Context) *syncapp.SyncResult {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*syncapp.SyncResult)
}
