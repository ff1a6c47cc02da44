package handler

import (
	"github.com/gin-gonic/gin"

	analyticsapp "github.com/trendlens/backend/internal/application/analytics"
)

// ProductHandler handles monitored product API endpoints
type ProductHandler struct {
	BaseHandler
	analytics *analyticsapp.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(analytics *analyticsapp.Service) *ProductHandler {
	return &ProductHandler{
		analytics: analytics,
	}
}

// GetTopProducts godoc
// @Summary      List top products by estimated revenue
// @Description  Returns the highest-revenue products, optionally filtered by platform
// @Tags         products
// @Produce      json
// @Param        limit query int false "Maximum results (1-100, default 10)"
// @Param        platform query string false "Platform filter" Enums(tiktok_shop, instagram)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/top [get]
func (h *ProductHandler) GetTopProducts(c *gin.Context) {
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

	products, err := h.analytics.TopProducts(c.Request.Context(), limit, platform)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// GetProduct godoc
// @Summary      Get a product by its platform UID
// @Tags         products
// @Produce      json
// @Param        productId path string true "Platform product UID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{productId} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productUID := c.Param("productId")
	if productUID == "" {
		h.BadRequest(c, "product ID is required")
		return
	}

	product, err := h.analytics.ProductByUID(c.Request.Context(), productUID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetProductTrend godoc
// @Summary      Get the metric history for a product
// @Description  Returns the product's ledger samples inside the requested window
// @Tags         products
// @Produce      json
// @Param        productId path string true "Platform product UID"
// @Param        days query int false "Window in days (default 30)"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{productId}/trend [get]
func (h *ProductHandler) GetProductTrend(c *gin.Context) {
	productUID := c.Param("productId")
	if productUID == "" {
		h.BadRequest(c, "product ID is required")
		return
	}

	days, err := parseIntQuery(c, "days", analyticsapp.DefaultTrendDays)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	samples, err := h.analytics.ProductTrend(c.Request.Context(), productUID, days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, samples)
}
