package socialmedia

import (
	"errors"
	"time"
)

// TikTokConfig holds configuration for the unofficial TikTok web API
type TikTokConfig struct {
	// BaseURL is the API gateway endpoint
	BaseURL string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// TikTokDefaultBaseURL is the public web API endpoint
const TikTokDefaultBaseURL = "https://www.tiktok.com/api"

// Errors for TikTok configuration
var (
	ErrTikTokConfigMissingBaseURL = errors.New("tiktok: base URL is required")
)

// NewTikTokConfig creates a TikTok configuration with defaults
func NewTikTokConfig() *TikTokConfig {
	return &TikTokConfig{
		BaseURL: TikTokDefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Validate validates the TikTok configuration
func (c *TikTokConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrTikTokConfigMissingBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
