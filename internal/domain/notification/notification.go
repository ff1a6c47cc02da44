// Package notification holds in-app alerts and the outbound email port.
package notification

import (
	"context"
	"time"
)

// Type classifies an alert
type Type string

const (
	TypeTopProduct      Type = "top_product"
	TypeSellerMilestone Type = "seller_milestone"
	TypePriceDrop       Type = "price_drop"
	TypeTrendAlert      Type = "trend_alert"
)

// Notification is one in-app alert for a user
type Notification struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"user_id" gorm:"size:255;not null;index"`
	Type       Type      `json:"type" gorm:"size:32;not null"`
	Title      string    `json:"title" gorm:"size:500;not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	ProductRef *int64    `json:"product_ref"`
	SellerRef  *int64    `json:"seller_ref"`
	Read       bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// Repository persists in-app notifications
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Unread(ctx context.Context, userID string) ([]Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id int64) error
}

// Email is an outbound email message
type Email struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers alert emails. Delivery failure is reported but
// never fatal to the alert flow.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}
