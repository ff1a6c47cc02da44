// Package llm adapts an OpenAI-compatible chat completions endpoint to
// the insight TextGenerator port.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trendlens/backend/internal/domain/insight"
)

const maxResponseSize = 10 * 1024 * 1024 // 10MB

var (
	// ErrConfigMissingAPIKey indicates the API key is not set
	ErrConfigMissingAPIKey = errors.New("LLM API key is required")
	// ErrRequestFailed indicates the completion request failed
	ErrRequestFailed = errors.New("completion request failed")
	// ErrEmptyCompletion indicates the endpoint returned no content
	ErrEmptyCompletion = errors.New("completion contained no content")
)

// Config holds the chat completions endpoint settings
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	return nil
}

// Generator calls a chat completions endpoint
type Generator struct {
	config     Config
	httpClient *http.Client
}

// NewGenerator creates a text generator for the configured endpoint
func NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Generator{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

type completionRequest struct {
	Model    string            `json:"model"`
	Messages []insight.Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate runs one completion and returns the first choice's content
func (g *Generator) Generate(ctx context.Context, messages []insight.Message) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:    g.config.Model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	url := g.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return completion.Choices[0].Message.Content, nil
}

// Ensure Generator implements the TextGenerator port
var _ insight.TextGenerator = (*Generator)(nil)
