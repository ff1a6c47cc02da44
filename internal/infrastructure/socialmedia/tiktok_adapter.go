// Package socialmedia implements the social platform ports: per-user
// profile and engagement lookups against the platform APIs, the hosted
// bulk-scrape actor client, and the mapping of scraped dataset records
// into canonical market observations.
package socialmedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/social"
)

const (
	// maxResponseSize limits response body reads to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB

	// tiktokMaxPostCount is the largest page the popular-posts endpoint serves
	tiktokMaxPostCount = 35
)

// TikTokAdapter implements the social.Platform interface for TikTok
// and TikTok Shop
type TikTokAdapter struct {
	config     *TikTokConfig
	httpClient *http.Client
}

// NewTikTokAdapter creates a new TikTok adapter with the given configuration
func NewTikTokAdapter(config *TikTokConfig) (*TikTokAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &TikTokAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Code returns the platform this adapter serves
func (a *TikTokAdapter) Code() market.Platform {
	return market.PlatformTikTokShop
}

// FetchUserInfo resolves a creator profile by its public username
func (a *TikTokAdapter) FetchUserInfo(ctx context.Context, userID string) (*social.CreatorProfile, error) {
	detail, err := a.fetchUserDetail(ctx, userID)
	if err != nil {
		return nil, err
	}
	return convertTikTokUser(detail), nil
}

// fetchUserDetail returns the raw user payload. The secUid it carries
// is needed for the posts endpoint and is not part of the normalized
// profile.
func (a *TikTokAdapter) fetchUserDetail(ctx context.Context, userID string) (*tiktokUserInfo, error) {
	query := url.Values{}
	query.Set("uniqueId", userID)

	body, err := a.doRequest(ctx, "/user/detail", query)
	if err != nil {
		return nil, err
	}

	var resp TikTokUserDetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrInvalidResponse, err)
	}
	if resp.UserInfo == nil {
		return nil, fmt.Errorf("tiktok user %s: %w", userID, social.ErrUserNotFound)
	}
	return resp.UserInfo, nil
}

// FetchTopPosts returns up to count recent popular posts for a user.
// An upstream failure on the posts listing degrades to an empty slice
// so that a profile remains usable without its content.
func (a *TikTokAdapter) FetchTopPosts(ctx context.Context, userID string, count int) ([]social.Post, error) {
	detail, err := a.fetchUserDetail(ctx, userID)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		count = 10
	}
	if count > tiktokMaxPostCount {
		count = tiktokMaxPostCount
	}

	query := url.Values{}
	query.Set("secUid", detail.User.SecUID)
	query.Set("count", strconv.Itoa(count))
	query.Set("cursor", "0")

	body, err := a.doRequest(ctx, "/user/popular-posts", query)
	if err != nil {
		return []social.Post{}, nil
	}

	var resp TikTokPopularPostsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return []social.Post{}, nil
	}
	if resp.Data == nil {
		return []social.Post{}, nil
	}

	posts := make([]social.Post, 0, len(resp.Data.ItemList))
	for _, item := range resp.Data.ItemList {
		posts = append(posts, convertTikTokPost(item))
	}
	return posts, nil
}

// AnalyzePerformance combines the profile with recent popular posts
// into an engagement summary
func (a *TikTokAdapter) AnalyzePerformance(ctx context.Context, userID string) (*social.PerformanceSummary, error) {
	profile, err := a.FetchUserInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := a.FetchTopPosts(ctx, userID, 10)
	if err != nil {
		posts = []social.Post{}
	}

	return summarizePerformance(profile, posts), nil
}

// MapProduct normalizes one scraped TikTok Shop record into a product
// observation
func (a *TikTokAdapter) MapProduct(raw json.RawMessage) (*market.ProductObservation, error) {
	var item TikTokShopItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrInvalidResponse, err)
	}
	if item.ProductID == "" {
		return nil, fmt.Errorf("%w: scraped record has no product id", social.ErrInvalidResponse)
	}

	currency := item.Currency
	if currency == "" {
		currency = "USD"
	}

	return &market.ProductObservation{
		ProductUID:        item.ProductID,
		Name:              item.Title,
		Platform:          market.PlatformTikTokShop,
		SellerUID:         item.Seller.SellerID,
		SellerName:        item.Seller.Name,
		Price:             item.Price,
		Currency:          currency,
		SoldCount:         item.SoldCount,
		Rating:            item.Rating,
		ReviewCount:       item.ReviewCount,
		Description:       item.Description,
		ImageURL:          item.ImageURL,
		ProductURL:        item.ProductURL,
		Category:          item.Category,
		CostOfGoods:       decimal.NewFromFloat(item.CostOfGoods),
		SellerRating:      item.Seller.Rating,
		SellerReviewCount: item.Seller.ReviewCount,
		SellerItemsSold:   item.Seller.SoldCount,
	}, nil
}

// MapSeller normalizes one scraped TikTok Shop record into a seller
// observation
func (a *TikTokAdapter) MapSeller(raw json.RawMessage) (*market.SellerObservation, error) {
	var item TikTokShopItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrInvalidResponse, err)
	}

	seller := item.Seller
	if seller.SellerID == "" {
		return nil, fmt.Errorf("%w: scraped record has no seller id", social.ErrInvalidResponse)
	}

	revenue, profit := market.EstimateSellerTotals(seller.SoldCount)
	return &market.SellerObservation{
		SellerUID:       seller.SellerID,
		Name:            seller.Name,
		Platform:        market.PlatformTikTokShop,
		Rating:          seller.Rating,
		ReviewCount:     seller.ReviewCount,
		ItemsSoldCount:  seller.SoldCount,
		SellerURL:       seller.ShopURL,
		ProfileImageURL: seller.AvatarURL,
		TotalRevenue:    revenue,
		TotalProfit:     profit,
	}, nil
}

// doRequest performs a GET against the TikTok web API
func (a *TikTokAdapter) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s%s?%s", a.config.BaseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("tiktok: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", social.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("tiktok: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, social.ErrUserNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", social.ErrRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// convertTikTokUser converts a raw user payload to a creator profile
func convertTikTokUser(info *tiktokUserInfo) *social.CreatorProfile {
	avatar := info.User.AvatarMedium
	if avatar == "" {
		avatar = info.User.AvatarLarger
	}

	return &social.CreatorProfile{
		UserID:         info.User.ID,
		Username:       info.User.UniqueID,
		Nickname:       info.User.Nickname,
		AvatarURL:      avatar,
		Signature:      info.User.Signature,
		Verified:       info.User.Verified,
		FollowerCount:  info.Stats.FollowerCount,
		FollowingCount: info.Stats.FollowingCount,
		LikeCount:      info.Stats.HeartCount,
		VideoCount:     info.Stats.VideoCount,
		Platform:       market.PlatformTikTokShop,
	}
}

// convertTikTokPost converts a raw post item to a normalized post
func convertTikTokPost(item tiktokPost) social.Post {
	postURL := item.Video.DownloadAddr
	if postURL == "" {
		postURL = item.Video.PlayAddr
	}

	return social.Post{
		PostID:       item.ID,
		Description:  item.Desc,
		CreatedAt:    time.Unix(item.CreateTime, 0).UTC(),
		ViewCount:    item.Stats.PlayCount,
		LikeCount:    item.Stats.DiggCount,
		CommentCount: item.Stats.CommentCount,
		ShareCount:   item.Stats.ShareCount,
		CoverURL:     item.Video.Cover,
		PostURL:      postURL,
	}
}

// Ensure TikTokAdapter implements the platform interface
var _ social.Platform = (*TikTokAdapter)(nil)
