package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/trendlens/backend/internal/domain/notification"
	"github.com/trendlens/backend/internal/domain/shared"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

var _ notification.Repository = (*GormNotificationRepository)(nil)

// Create inserts a new in-app notification
func (r *GormNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// Unread returns unread notifications for a user, newest first
func (r *GormNotificationRepository) Unread(ctx context.Context, userID string) ([]notification.Notification, error) {
	var notifications []notification.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user
func (r *GormNotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead flags a notification as read
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
