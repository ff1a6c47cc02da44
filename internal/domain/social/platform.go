// Package social defines the outbound ports for the monitored social
// platforms: per-user profile/engagement lookups and the bulk-scrape
// actor contract. Implementations live in infrastructure.
package social

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/trendlens/backend/internal/domain/market"
)

// Sentinel errors shared by all platform implementations. Callers
// distinguish outcomes with errors.Is: a missing credential is not a
// network failure, and an unknown user is not an upstream outage.
var (
	ErrPlatformNotConfigured = errors.New("platform is not configured")
	ErrUserNotFound          = errors.New("user not found on platform")
	ErrRequestFailed         = errors.New("platform request failed")
	ErrInvalidResponse       = errors.New("platform returned an invalid response")
)

// CreatorProfile is the normalized identity + audience stats of a
// platform account. Counts default to zero when the source payload
// omits its stats object.
type CreatorProfile struct {
	UserID         string          `json:"user_id"`
	Username       string          `json:"username"`
	Nickname       string          `json:"nickname"`
	AvatarURL      string          `json:"avatar_url"`
	Signature      string          `json:"signature"`
	Verified       bool            `json:"verified"`
	FollowerCount  int64           `json:"follower_count"`
	FollowingCount int64           `json:"following_count"`
	LikeCount      int64           `json:"like_count"`
	VideoCount     int64           `json:"video_count"`
	Platform       market.Platform `json:"platform"`
}

// Post is one normalized piece of content with engagement counts
type Post struct {
	PostID       string    `json:"post_id"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	ShareCount   int64     `json:"share_count"`
	CoverURL     string    `json:"cover_url"`
	PostURL      string    `json:"post_url"`
}

// Engagement returns the summed interaction count for one post
func (p Post) Engagement() int64 {
	return p.LikeCount + p.CommentCount + p.ShareCount
}

// PerformanceSummary aggregates a creator's recent engagement.
// EngagementRate is a percentage of followers and is zero when the
// follower count is zero.
type PerformanceSummary struct {
	Profile         *CreatorProfile `json:"profile"`
	AvgEngagement   float64         `json:"avg_engagement"`
	AvgViews        float64         `json:"avg_views"`
	EngagementRate  float64         `json:"engagement_rate"`
	TotalEngagement int64           `json:"total_engagement"`
	TopPosts        []Post          `json:"top_posts"`
}

// Platform is the per-platform lookup and normalization port
type Platform interface {
	// Code identifies which platform this adapter serves
	Code() market.Platform
	// FetchUserInfo resolves a creator profile. A clean miss returns
	// ErrUserNotFound; transport and decode failures wrap
	// ErrRequestFailed / ErrInvalidResponse.
	FetchUserInfo(ctx context.Context, userID string) (*CreatorProfile, error)
	// FetchTopPosts returns up to count recent popular posts. Transient
	// upstream failures degrade to an empty slice with a nil error.
	FetchTopPosts(ctx context.Context, userID string, count int) ([]Post, error)
	// AnalyzePerformance combines the profile with recent posts into an
	// engagement summary. ErrUserNotFound from the profile lookup
	// propagates unchanged.
	AnalyzePerformance(ctx context.Context, userID string) (*PerformanceSummary, error)
	// MapProduct normalizes one raw scraped record into a canonical
	// product observation, defaulting missing fields.
	MapProduct(raw json.RawMessage) (*market.ProductObservation, error)
	// MapSeller normalizes one raw scraped record into a canonical
	// seller observation.
	MapSeller(raw json.RawMessage) (*market.SellerObservation, error)
}
