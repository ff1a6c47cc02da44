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

// instagramUserFields are the profile fields requested from the Graph API
const instagramUserFields = "id,username,name,biography,website,profile_picture_url,followers_count,follows_count,media_count"

// instagramMediaFields are the media fields requested from the Graph API
const instagramMediaFields = "id,caption,media_type,media_url,permalink,timestamp,like_count,comments_count"

// InstagramAdapter implements the social.Platform interface for
// Instagram business accounts via the Graph API
type InstagramAdapter struct {
	config     *InstagramConfig
	httpClient *http.Client
}

// NewInstagramAdapter creates a new Instagram adapter with the given configuration
func NewInstagramAdapter(config *InstagramConfig) (*InstagramAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &InstagramAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Code returns the platform this adapter serves
func (a *InstagramAdapter) Code() market.Platform {
	return market.PlatformInstagram
}

// FetchUserInfo resolves a business profile by its Graph user id
func (a *InstagramAdapter) FetchUserInfo(ctx context.Context, userID string) (*social.CreatorProfile, error) {
	query := url.Values{}
	query.Set("fields", instagramUserFields)

	body, err := a.doRequest(ctx, "/"+userID, query)
	if err != nil {
		return nil, err
	}

	var resp InstagramUserResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrInvalidResponse, err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("instagram user %s: %w", userID, social.ErrUserNotFound)
	}

	return &social.CreatorProfile{
		UserID:         resp.ID,
		Username:       resp.Username,
		Nickname:       resp.Name,
		AvatarURL:      resp.ProfilePictureURL,
		Signature:      resp.Biography,
		FollowerCount:  resp.FollowersCount,
		FollowingCount: resp.FollowsCount,
		VideoCount:     resp.MediaCount,
		Platform:       market.PlatformInstagram,
	}, nil
}

// FetchTopPosts returns up to count recent media items for a user.
// Upstream failures on the media listing degrade to an empty slice.
func (a *InstagramAdapter) FetchTopPosts(ctx context.Context, userID string, count int) ([]social.Post, error) {
	if count <= 0 {
		count = 10
	}

	query := url.Values{}
	query.Set("fields", instagramMediaFields)
	query.Set("limit", strconv.Itoa(count))

	body, err := a.doRequest(ctx, "/"+userID+"/media", query)
	if err != nil {
		return []social.Post{}, nil
	}

	var resp InstagramMediaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return []social.Post{}, nil
	}

	posts := make([]social.Post, 0, len(resp.Data))
	for _, item := range resp.Data {
		posts = append(posts, convertInstagramMedia(item))
	}
	return posts, nil
}

// AnalyzePerformance combines the profile with recent media into an
// engagement summary
func (a *InstagramAdapter) AnalyzePerformance(ctx context.Context, userID string) (*social.PerformanceSummary, error) {
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

// MapProduct normalizes one scraped shoppable-post record into a
// product observation
func (a *InstagramAdapter) MapProduct(raw json.RawMessage) (*market.ProductObservation, error) {
	var item InstagramScrapedItem
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
		ProductUID:      item.ProductID,
		Name:            item.Title,
		Platform:        market.PlatformInstagram,
		SellerUID:       item.Account.UserID,
		SellerName:      item.Account.Username,
		Price:           item.Price,
		Currency:        currency,
		SoldCount:       item.SoldCount,
		Rating:          item.Rating,
		ReviewCount:     item.ReviewCount,
		Description:     item.Description,
		ImageURL:        item.ImageURL,
		ProductURL:      item.PostURL,
		Category:        item.Category,
		CostOfGoods:     decimal.NewFromFloat(item.CostOfGoods),
		SellerItemsSold: item.SoldCount,
	}, nil
}

// MapSeller normalizes one scraped record into a seller observation
func (a *InstagramAdapter) MapSeller(raw json.RawMessage) (*market.SellerObservation, error) {
	var item InstagramScrapedItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrInvalidResponse, err)
	}

	account := item.Account
	if account.UserID == "" {
		return nil, fmt.Errorf("%w: scraped record has no account id", social.ErrInvalidResponse)
	}

	revenue, profit := market.EstimateSellerTotals(item.SoldCount)
	return &market.SellerObservation{
		SellerUID:       account.UserID,
		Name:            account.Username,
		Platform:        market.PlatformInstagram,
		ItemsSoldCount:  item.SoldCount,
		SellerURL:       account.ProfileURL,
		ProfileImageURL: account.ProfilePicURL,
		Description:     account.Biography,
		TotalRevenue:    revenue,
		TotalProfit:     profit,
	}, nil
}

// doRequest performs a GET against the Instagram Graph API
func (a *InstagramAdapter) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	query.Set("access_token", a.config.AccessToken)
	endpoint := fmt.Sprintf("%s/%s%s?%s", a.config.BaseURL, a.config.APIVersion, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("instagram: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", social.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("instagram: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, social.ErrUserNotFound
	}
	if resp.StatusCode >= 400 {
		var apiErr InstagramErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", social.ErrRequestFailed, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", social.ErrRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// convertInstagramMedia converts one Graph API media item to a normalized post
func convertInstagramMedia(item instagramMedia) social.Post {
	createdAt, _ := time.Parse(time.RFC3339, item.Timestamp)

	return social.Post{
		PostID:       item.ID,
		Description:  item.Caption,
		CreatedAt:    createdAt,
		LikeCount:    item.LikeCount,
		CommentCount: item.CommentsCount,
		CoverURL:     item.MediaURL,
		PostURL:      item.Permalink,
	}
}

// Ensure InstagramAdapter implements the platform interface
var _ social.Platform = (*InstagramAdapter)(nil)
