// Package notification delivers alert emails through an HTTP relay
// endpoint. In-app notification rows are persisted elsewhere; this
// package only covers the outbound leg.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	domain "github.com/trendlens/backend/internal/domain/notification"
)

const maxResponseSize = 1 << 20 // 1MB

var (
	// ErrConfigMissingEndpoint indicates the relay endpoint is not set
	ErrConfigMissingEndpoint = errors.New("email endpoint is required")
	// ErrSendFailed indicates the relay rejected the message
	ErrSendFailed = errors.New("email send failed")
)

// HTTPEmailSenderConfig holds relay settings
type HTTPEmailSenderConfig struct {
	// Endpoint is the relay URL emails are POSTed to
	Endpoint string
	// From is the sender address stamped on every message
	From string
	// Timeout is the per-request timeout
	Timeout time.Duration
}

// Validate validates the configuration and fills defaults
func (c *HTTPEmailSenderConfig) Validate() error {
	if c.Endpoint == "" {
		return ErrConfigMissingEndpoint
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}

// HTTPEmailSender posts alert emails to a relay endpoint as JSON
type HTTPEmailSender struct {
	config     HTTPEmailSenderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPEmailSender creates an email sender for the given relay
func NewHTTPEmailSender(config HTTPEmailSenderConfig, logger *zap.Logger) (*HTTPEmailSender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &HTTPEmailSender{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("email"),
	}, nil
}

type emailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send delivers one email through the relay
func (s *HTTPEmailSender) Send(ctx context.Context, email domain.Email) error {
	payload, err := json.Marshal(emailPayload{
		From:    s.config.From,
		To:      email.To,
		Subject: email.Subject,
		Body:    email.Body,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: HTTP %d", ErrSendFailed, resp.StatusCode)
	}

	s.logger.Debug("Alert email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// NoopEmailSender swallows every message. Used when alerting is
// disabled or no relay endpoint is configured.
type NoopEmailSender struct{}

// Send discards the email
func (NoopEmailSender) Send(_ context.Context, _ domain.Email) error {
	return nil
}

var (
	_ domain.EmailSender = (*HTTPEmailSender)(nil)
	_ domain.EmailSender = NoopEmailSender{}
)
