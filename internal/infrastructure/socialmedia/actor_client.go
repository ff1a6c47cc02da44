package socialmedia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/trendlens/backend/internal/domain/social"
)

// ActorClientConfig holds configuration for the hosted scraper platform
type ActorClientConfig struct {
	// APIKey authorizes actor runs
	APIKey string
	// BaseURL is the actor platform API root
	BaseURL string
	// PollInterval is the cadence of run status checks
	PollInterval time.Duration
	// WaitBudget is the total time to wait for one run before giving up
	WaitBudget time.Duration
	// RequestTimeout is the per-request HTTP timeout
	RequestTimeout time.Duration
}

// ActorDefaultBaseURL is the hosted scraper platform endpoint
const ActorDefaultBaseURL = "https://api.apify.com/v2"

// Validate validates the actor client configuration
func (c *ActorClientConfig) Validate() error {
	if c.APIKey == "" {
		return social.ErrActorNotConfigured
	}
	if c.BaseURL == "" {
		c.BaseURL = ActorDefaultBaseURL
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.WaitBudget < c.PollInterval {
		c.WaitBudget = 5 * time.Minute
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	return nil
}

// actorRunEnvelope is the platform's response wrapper for run objects
type actorRunEnvelope struct {
	Data *actorRunPayload `json:"data"`
}

type actorRunPayload struct {
	ID         string    `json:"id"`
	ActID      string    `json:"actId"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// ActorClient runs hosted scraping jobs and retrieves their datasets
type ActorClient struct {
	config     *ActorClientConfig
	httpClient *http.Client
}

// NewActorClient creates a new actor client with the given configuration
func NewActorClient(config *ActorClientConfig) (*ActorClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ActorClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
	}, nil
}

// StartRun submits a job to the named actor without waiting for it
func (c *ActorClient) StartRun(ctx context.Context, actorID string, input any) (*social.ActorRun, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("actor: failed to marshal input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/acts/%s/runs?token=%s",
		c.config.BaseURL, url.PathEscape(actorID), url.QueryEscape(c.config.APIKey))

	respBody, err := c.doRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	run, err := decodeActorRun(respBody)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// WaitForCompletion polls a run until it reaches a terminal status or
// the wait budget is exhausted
func (c *ActorClient) WaitForCompletion(ctx context.Context, runID string) (*social.ActorRun, error) {
	deadline := time.Now().Add(c.config.WaitBudget)
	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		run, err := c.fetchRun(ctx, runID)
		if err != nil {
			return nil, err
		}
		if run.Terminal() {
			if !run.Succeeded() {
				return run, fmt.Errorf("%w: run %s finished with status %s",
					social.ErrActorRunFailed, runID, run.Status)
			}
			return run, nil
		}

		if time.Now().After(deadline) {
			return run, fmt.Errorf("%w: run %s still %s after %s",
				social.ErrActorDeadlineExceeded, runID, run.Status, c.config.WaitBudget)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// FetchResults downloads the dataset items of a finished run
func (c *ActorClient) FetchResults(ctx context.Context, runID string) ([]json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/actor-runs/%s/dataset/items?token=%s",
		c.config.BaseURL, url.PathEscape(runID), url.QueryEscape(c.config.APIKey))

	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrInvalidResponse, err)
	}
	return items, nil
}

// fetchRun retrieves the current state of one run
func (c *ActorClient) fetchRun(ctx context.Context, runID string) (*social.ActorRun, error) {
	endpoint := fmt.Sprintf("%s/actor-runs/%s?token=%s",
		c.config.BaseURL, url.PathEscape(runID), url.QueryEscape(c.config.APIKey))

	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return decodeActorRun(body)
}

// doRequest performs an HTTP request to the actor platform
func (c *ActorClient) doRequest(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("actor: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", social.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("actor: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", social.ErrRequestFailed, resp.StatusCode)
	}
	return respBody, nil
}

// decodeActorRun parses a run envelope into the domain run state
func decodeActorRun(body []byte) (*social.ActorRun, error) {
	var envelope actorRunEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrInvalidResponse, err)
	}
	if envelope.Data == nil || envelope.Data.ID == "" {
		return nil, fmt.Errorf("%w: run payload is empty", social.ErrInvalidResponse)
	}

	return &social.ActorRun{
		ID:         envelope.Data.ID,
		ActorID:    envelope.Data.ActID,
		Status:     envelope.Data.Status,
		StartedAt:  envelope.Data.StartedAt,
		FinishedAt: envelope.Data.FinishedAt,
	}, nil
}

// Ensure ActorClient implements the runner interface
var _ social.ActorRunner = (*ActorClient)(nil)
