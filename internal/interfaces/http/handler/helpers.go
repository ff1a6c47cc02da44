package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/backend/internal/domain/market"
)

// parsePlatformQuery reads the optional platform query parameter.
// An empty value yields nil (no filter).
func parsePlatformQuery(c *gin.Context) (*market.Platform, error) {
	raw := c.Query("platform")
	if raw == "" {
		return nil, nil
	}
	platform := market.Platform(raw)
	if !platform.IsValid() {
		return nil, fmt.Errorf("unknown platform %q", raw)
	}
	return &platform, nil
}

// parsePlatformParam reads the required :platform path parameter
func parsePlatformParam(c *gin.Context) (market.Platform, error) {
	raw := c.Param("platform")
	platform := market.Platform(raw)
	if !platform.IsValid() {
		return "", fmt.Errorf("unknown platform %q", raw)
	}
	return platform, nil
}

// parseIntQuery reads an optional integer query parameter, falling
// back to def when absent. Malformed values report an error.
func parseIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}
