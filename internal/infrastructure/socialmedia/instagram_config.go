package socialmedia

import (
	"errors"
	"time"
)

// InstagramConfig holds configuration for the Instagram Graph API
type InstagramConfig struct {
	// AccessToken authorizes Graph API calls
	AccessToken string
	// BaseURL is the Graph API host
	BaseURL string
	// APIVersion is the Graph API version path segment
	APIVersion string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

const (
	// InstagramDefaultBaseURL is the Graph API host
	InstagramDefaultBaseURL = "https://graph.instagram.com"
	// InstagramDefaultAPIVersion is the Graph API version this adapter targets
	InstagramDefaultAPIVersion = "v18.0"
)

// Errors for Instagram configuration
var (
	ErrInstagramConfigMissingAccessToken = errors.New("instagram: access token is required")
)

// NewInstagramConfig creates an Instagram configuration with defaults
func NewInstagramConfig(accessToken string) *InstagramConfig {
	return &InstagramConfig{
		AccessToken: accessToken,
		BaseURL:     InstagramDefaultBaseURL,
		APIVersion:  InstagramDefaultAPIVersion,
		Timeout:     30 * time.Second,
	}
}

// Validate validates the Instagram configuration
func (c *InstagramConfig) Validate() error {
	if c.AccessToken == "" {
		return ErrInstagramConfigMissingAccessToken
	}
	if c.BaseURL == "" {
		c.BaseURL = InstagramDefaultBaseURL
	}
	if c.APIVersion == "" {
		c.APIVersion = InstagramDefaultAPIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
