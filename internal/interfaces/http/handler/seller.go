package handler

import (
	"github.com/gin-gonic/gin"

	analyticsapp "github.com/trendlens/backend/internal/application/analytics"
)

// SellerHandler handles monitored seller API endpoints
type SellerHandler struct {
	BaseHandler
	analytics *analyticsapp.Service
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(analytics *analyticsapp.Service) *SellerHandler {
	return &SellerHandler{
		analytics: analytics,
	}
}

// GetTopSellers godoc
// @Summary      List top sellers by total revenue
// @Description  Returns the highest-revenue sellers, optionally filtered by platform
// @Tags         sellers
// @Produce      json
// @Param        limit query int false "Maximum results (1-100, default 10)"
// @Param        platform query string false "Platform filter" Enums(tiktok_shop, instagram)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sellers/top [get]
func (h *SellerHandler) GetTopSellers(c *gin.Context) {
	platform, err := parsePlatformQuery(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	limit, err := parseIntQuery(c, "limit", analyticsapp.DefaultRankingLimit)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sellers, err := h.analytics.TopSellers(c.Request.Context(), limit, platform)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sellers)
}

// GetSeller godoc
// @Summary      Get a seller by its platform UID
// @Tags         sellers
// @Produce      json
// @Param        sellerId path string true "Platform seller UID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sellers/{sellerId} [get]
func (h *SellerHandler) GetSeller(c *gin.Context) {
	sellerUID := c.Param("sellerId")
	if sellerUID == "" {
		h.BadRequest(c, "seller ID is required")
		return
	}

	seller, err := h.analytics.SellerByUID(c.Request.Context(), sellerUID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, seller)
}
