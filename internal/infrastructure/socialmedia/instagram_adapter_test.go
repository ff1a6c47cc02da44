package socialmedia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/backend/internal/domain/market"
	"github.com/trendlens/backend/internal/domain/social"
)

func TestInstagramConfig_Validate(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		config := NewInstagramConfig("token")
		require.NoError(t, config.Validate())
		assert.Equal(t, InstagramDefaultBaseURL, config.BaseURL)
		assert.Equal(t, InstagramDefaultAPIVersion, config.APIVersion)
		assert.Equal(t, 30*time.Second, config.Timeout)
	})

	t.Run("missing access token", func(t *testing.T) {
		config := &InstagramConfig{BaseURL: "http://localhost"}
		assert.ErrorIs(t, config.Validate(), ErrInstagramConfigMissingAccessToken)
	})
}

func createTestInstagramAdapter(t *testing.T, serverURL string) *InstagramAdapter {
	adapter, err := NewInstagramAdapter(&InstagramConfig{
		AccessToken: "test_token",
		BaseURL:     serverURL,
		APIVersion:  "v18.0",
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	return adapter
}

func TestInstagramAdapter_FetchUserInfo(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v18.0/17841400000000001", r.URL.Path)
			assert.Equal(t, "test_token", r.URL.Query().Get("access_token"))
			assert.Contains(t, r.URL.Query().Get("fields"), "followers_count")
			json.NewEncoder(w).Encode(InstagramUserResponse{
				ID:                "17841400000000001",
				Username:          "glow.home",
				Name:              "Glow Home Decor",
				Biography:         "Home goods with soul",
				ProfilePictureURL: "https://scontent.cdninstagram.com/p.jpg",
				FollowersCount:    54000,
				FollowsCount:      300,
				MediaCount:        412,
			})
		}))
		defer server.Close()

		adapter := createTestInstagramAdapter(t, server.URL)
		profile, err := adapter.FetchUserInfo(context.Background(), "17841400000000001")
		require.NoError(t, err)
		assert.Equal(t, "17841400000000001", profile.UserID)
		assert.Equal(t, "glow.home", profile.Username)
		assert.Equal(t, "Glow Home Decor", profile.Nickname)
		assert.Equal(t, int64(54000), profile.FollowerCount)
		assert.Equal(t, int64(412), profile.VideoCount)
		assert.Equal(t, market.PlatformInstagram, profile.Platform)
	})

	t.Run("unknown user", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		adapter := createTestInstagramAdapter(t, server.URL)
		_, err := adapter.FetchUserInfo(context.Background(), "999")
		assert.ErrorIs(t, err, social.ErrUserNotFound)
	})

	t.Run("graph api error surfaces its message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "Invalid OAuth access token", "code": 190},
			})
		}))
		defer server.Close()

		adapter := createTestInstagramAdapter(t, server.URL)
		_, err := adapter.FetchUserInfo(context.Background(), "17841400000000001")
		require.Error(t, err)
		assert.ErrorIs(t, err, social.ErrRequestFailed)
		assert.Contains(t, err.Error(), "Invalid OAuth access token")
	})
}

func TestInstagramAdapter_FetchTopPosts(t *testing.T) {
	t.Run("lists recent media", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v18.0/17841400000000001/media", r.URL.Path)
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			json.NewEncoder(w).Encode(InstagramMediaResponse{
				Data: []instagramMedia{
					{
						ID:            "17900000000000001",
						Caption:       "new arrivals",
						MediaType:     "IMAGE",
						Permalink:     "https://www.instagram.com/p/abc/",
						Timestamp:     "2024-01-15T10:30:00+0000",
						LikeCount:     2400,
						CommentsCount: 150,
					},
				},
			})
		}))
		defer server.Close()

		adapter := createTestInstagramAdapter(t, server.URL)
		posts, err := adapter.FetchTopPosts(context.Background(), "17841400000000001", 10)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "17900000000000001", posts[0].PostID)
		assert.Equal(t, int64(2400), posts[0].LikeCount)
		assert.Equal(t, int64(150), posts[0].CommentCount)
		assert.Equal(t, int64(2550), posts[0].Engagement())
		assert.Equal(t, "https://www.instagram.com/p/abc/", posts[0].PostURL)
	})

	t.Run("listing failure degrades to empty slice", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		adapter := createTestInstagramAdapter(t, server.URL)
		posts, err := adapter.FetchTopPosts(context.Background(), "17841400000000001", 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestInstagramAdapter_AnalyzePerformance(t *testing.T) {
	t.Run("computes engagement metrics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v18.0/17841400000000001":
				json.NewEncoder(w).Encode(InstagramUserResponse{
					ID:             "17841400000000001",
					Username:       "glow.home",
					FollowersCount: 50000,
				})
			case "/v18.0/17841400000000001/media":
				json.NewEncoder(w).Encode(InstagramMediaResponse{
					Data: []instagramMedia{
						{ID: "1", LikeCount: 900, CommentsCount: 100},
						{ID: "2", LikeCount: 1800, CommentsCount: 200},
					},
				})
			}
		}))
		defer server.Close()

		adapter := createTestInstagramAdapter(t, server.URL)
		summary, err := adapter.AnalyzePerformance(context.Background(), "17841400000000001")
		require.NoError(t, err)
		// per-post engagement: 1000 and 2000
		assert.Equal(t, float64(1500), summary.AvgEngagement)
		assert.Equal(t, int64(3000), summary.TotalEngagement)
		assert.InDelta(t, 3.0, summary.EngagementRate, 0.0001)
	})

	t.Run("profile failure propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		adapter := createTestInstagramAdapter(t, server.URL)
		_, err := adapter.AnalyzePerformance(context.Background(), "999")
		assert.ErrorIs(t, err, social.ErrUserNotFound)
	})

	t.Run("media failure yields summary with zero metrics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v18.0/17841400000000001":
				json.NewEncoder(w).Encode(InstagramUserResponse{ID: "17841400000000001", FollowersCount: 100})
			default:
				w.WriteHeader(http.StatusInternalServerError)
			}
		}))
		defer server.Close()

		adapter := createTestInstagramAdapter(t, server.URL)
		summary, err := adapter.AnalyzePerformance(context.Background(), "17841400000000001")
		require.NoError(t, err)
		assert.Zero(t, summary.AvgEngagement)
		assert.Zero(t, summary.EngagementRate)
		assert.Empty(t, summary.TopPosts)
	})
}

func TestInstagramAdapter_MapProduct(t *testing.T) {
	adapter := createTestInstagramAdapter(t, "http://localhost")

	t.Run("full record", func(t *testing.T) {
		raw := json.RawMessage(`{
			"productId": "ig-prod-1",
			"title": "Ceramic Vase",
			"price": "USD 35.00",
			"soldCount": 420,
			"account": {
				"userId": "17841400000000001",
				"username": "glow.home",
				"profileUrl": "https://www.instagram.com/glow.home/"
			}
		}`)

		obs, err := adapter.MapProduct(raw)
		require.NoError(t, err)
		assert.Equal(t, "ig-prod-1", obs.ProductUID)
		assert.Equal(t, market.PlatformInstagram, obs.Platform)
		assert.Equal(t, "17841400000000001", obs.SellerUID)
		assert.Equal(t, "glow.home", obs.SellerName)
		assert.Equal(t, 420, obs.SoldCount)
		assert.Equal(t, 420, obs.SellerItemsSold)
	})

	t.Run("missing product id", func(t *testing.T) {
		_, err := adapter.MapProduct(json.RawMessage(`{"title": "no id"}`))
		assert.ErrorIs(t, err, social.ErrInvalidResponse)
	})
}

func TestInstagramAdapter_MapSeller(t *testing.T) {
	adapter := createTestInstagramAdapter(t, "http://localhost")

	t.Run("full record", func(t *testing.T) {
		raw := json.RawMessage(`{
			"soldCount": 420,
			"account": {
				"userId": "17841400000000001",
				"username": "glow.home",
				"biography": "Home goods with soul",
				"profilePicUrl": "https://scontent.cdninstagram.com/p.jpg"
			}
		}`)

		obs, err := adapter.MapSeller(raw)
		require.NoError(t, err)
		assert.Equal(t, "17841400000000001", obs.SellerUID)
		assert.Equal(t, "glow.home", obs.Name)
		assert.Equal(t, market.PlatformInstagram, obs.Platform)
		assert.Equal(t, 420, obs.ItemsSoldCount)
		assert.Equal(t, "Home goods with soul", obs.Description)
		assert.True(t, obs.TotalRevenue.Equal(decimal.NewFromInt(84000)))
		assert.True(t, obs.TotalProfit.Equal(decimal.NewFromInt(42000)))
	})

	t.Run("missing account id", func(t *testing.T) {
		_, err := adapter.MapSeller(json.RawMessage(`{"productId": "ig-prod-1"}`))
		assert.ErrorIs(t, err, social.ErrInvalidResponse)
	})
}
