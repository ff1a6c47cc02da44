package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/backend/internal/domain/social"
	"github.com/trendlens/backend/internal/infrastructure/socialmedia"
	"github.com/trendlens/backend/internal/interfaces/http/dto"
)

// DefaultTopPostCount caps post listings when the caller passes no count
const DefaultTopPostCount = 5

// SocialHandler handles per-creator social lookup API endpoints
type SocialHandler struct {
	BaseHandler
	registry *socialmedia.Registry
}

// NewSocialHandler creates a new SocialHandler
func NewSocialHandler(registry *socialmedia.Registry) *SocialHandler {
	return &SocialHandler{
		registry: registry,
	}
}

// GetUserInfo godoc
// @Summary      Get a creator profile on a platform
// @Tags         social
// @Produce      json
// @Param        platform path string true "Platform code" Enums(tiktok_shop, instagram)
// @Param        userId path string true "Platform user ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /social/{platform}/users/{userId} [get]
func (h *SocialHandler) GetUserInfo(c *gin.Context) {
	adapter, userID, ok := h.resolve(c)
	if !ok {
		return
	}

	profile, err := adapter.FetchUserInfo(c.Request.Context(), userID)
	if err != nil {
		h.handleSocialError(c, err)
		return
	}

	h.Success(c, profile)
}

// GetUserPosts godoc
// @Summary      Get a creator's recent popular posts
// @Tags         social
// @Produce      json
// @Param        platform path string true "Platform code" Enums(tiktok_shop, instagram)
// @Param        userId path string true "Platform user ID"
// @Param        count query int false "Maximum posts (default 5)"
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /social/{platform}/users/{userId}/posts [get]
func (h *SocialHandler) GetUserPosts(c *gin.Context) {
	adapter, userID, ok := h.resolve(c)
	if !ok {
		return
	}

	count, err := parseIntQuery(c, "count", DefaultTopPostCount)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	posts, err := adapter.FetchTopPosts(c.Request.Context(), userID, count)
	if err != nil {
		h.handleSocialError(c, err)
		return
	}

	h.Success(c, posts)
}

// GetPerformance godoc
// @Summary      Get a creator's engagement summary
// @Description  Combines the profile with recent posts into averages and an engagement rate
// @Tags         social
// @Produce      json
// @Param        platform path string true "Platform code" Enums(tiktok_shop, instagram)
// @Param        userId path string true "Platform user ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /social/{platform}/users/{userId}/performance [get]
func (h *SocialHandler) GetPerformance(c *gin.Context) {
	adapter, userID, ok := h.resolve(c)
	if !ok {
		return
	}

	summary, err := adapter.AnalyzePerformance(c.Request.Context(), userID)
	if err != nil {
		h.handleSocialError(c, err)
		return
	}

	h.Success(c, summary)
}

// resolve parses the platform and user path params and looks up the
// adapter, writing the error response itself on failure
func (h *SocialHandler) resolve(c *gin.Context) (social.Platform, string, bool) {
	platform, err := parsePlatformParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return nil, "", false
	}

	userID := c.Param("userId")
	if userID == "" {
		h.BadRequest(c, "user ID is required")
		return nil, "", false
	}

	adapter, err := h.registry.Get(platform)
	if err != nil {
		h.handleSocialError(c, err)
		return nil, "", false
	}

	return adapter, userID, true
}

// handleSocialError maps the social sentinel errors onto API error codes
func (h *SocialHandler) handleSocialError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, social.ErrPlatformNotConfigured):
		h.ServiceUnavailable(c, dto.ErrCodePlatformNotConfigured, err.Error())
	case errors.Is(err, social.ErrUserNotFound):
		h.NotFound(c, err.Error())
	case errors.Is(err, social.ErrRequestFailed), errors.Is(err, social.ErrInvalidResponse):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUnavailable, err.Error())
	default:
		h.HandleError(c, err)
	}
}
