package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	insightapp "github.com/trendlens/backend/internal/application/insight"
	"github.com/trendlens/backend/internal/domain/insight"
	"github.com/trendlens/backend/internal/interfaces/http/dto"
)

// InsightHandler handles AI insight API endpoints
type InsightHandler struct {
	BaseHandler
	insights *insightapp.Service
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insights *insightapp.Service) *InsightHandler {
	return &InsightHandler{
		insights: insights,
	}
}

// GetInsights godoc
// @Summary      List the latest stored insights
// @Tags         insights
// @Produce      json
// @Param        type query string false "Insight type filter" Enums(trend_analysis, niche_recommendation, seasonality, competitor)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /insights/latest [get]
func (h *InsightHandler) GetInsights(c *gin.Context) {
	insightType, err := parseInsightTypeQuery(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.insights.Latest(c.Request.Context(), insightType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// GenerateTrendAnalysis godoc
// @Summary      Generate a trend analysis over current top products
// @Tags         insights
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /insights/trend [post]
func (h *InsightHandler) GenerateTrendAnalysis(c *gin.Context) {
	result, err := h.insights.GenerateTrendAnalysis(c.Request.Context())
	h.respondGenerated(c, result, err)
}

// GenerateNicheRecommendation godoc
// @Summary      Generate niche recommendations from category revenue
// @Tags         insights
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /insights/niche [post]
func (h *InsightHandler) GenerateNicheRecommendation(c *gin.Context) {
	result, err := h.insights.GenerateNicheRecommendation(c.Request.Context())
	h.respondGenerated(c, result, err)
}

// GenerateSeasonalityAnalysis godoc
// @Summary      Generate a seasonality analysis over the sales ledger
// @Tags         insights
// @Produce      json
// @Param        days query int false "History window in days (default 90)"
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /insights/seasonality [post]
func (h *InsightHandler) GenerateSeasonalityAnalysis(c *gin.Context) {
	days, err := parseIntQuery(c, "days", 0)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.insights.GenerateSeasonalityAnalysis(c.Request.Context(), days)
	h.respondGenerated(c, result, err)
}

// GenerateCompetitorAnalysis godoc
// @Summary      Generate a competitor analysis over top sellers
// @Tags         insights
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /insights/competitor [post]
func (h *InsightHandler) GenerateCompetitorAnalysis(c *gin.Context) {
	result, err := h.insights.GenerateCompetitorAnalysis(c.Request.Context())
	h.respondGenerated(c, result, err)
}

// respondGenerated translates the generation contract into a response.
// A nil insight with a nil error means the generator is missing or the
// completion came back empty.
func (h *InsightHandler) respondGenerated(c *gin.Context, result *insight.Insight, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result == nil {
		h.ServiceUnavailable(c, dto.ErrCodeUnavailable, "insight generation is unavailable")
		return
	}
	h.Success(c, result)
}

// parseInsightTypeQuery reads the optional ?type= filter
func parseInsightTypeQuery(c *gin.Context) (*insight.Type, error) {
	raw := c.Query("type")
	if raw == "" {
		return nil, nil
	}
	t := insight.Type(raw)
	switch t {
	case insight.TypeTrendAnalysis, insight.TypeNicheRecommendation,
		insight.TypeSeasonality, insight.TypeCompetitor:
		return &t, nil
	default:
		return nil, fmt.Errorf("unknown insight type %q", raw)
	}
}
