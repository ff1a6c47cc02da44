package social

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Actor errors
var (
	ErrActorNotConfigured    = errors.New("actor api key is not configured")
	ErrActorRunFailed        = errors.New("actor run finished unsuccessfully")
	ErrActorDeadlineExceeded = errors.New("actor run did not finish within the wait budget")
)

// RunStatus values reported by the actor platform
const (
	ActorStatusReady     = "READY"
	ActorStatusRunning   = "RUNNING"
	ActorStatusSucceeded = "SUCCEEDED"
	ActorStatusFailed    = "FAILED"
	ActorStatusTimedOut  = "TIMED-OUT"
	ActorStatusAborted   = "ABORTED"
)

// ActorRun is the state of one hosted scraper execution
type ActorRun struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"act_id"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Terminal reports whether the run has stopped, in any outcome
func (r ActorRun) Terminal() bool {
	switch r.Status {
	case ActorStatusSucceeded, ActorStatusFailed, ActorStatusTimedOut, ActorStatusAborted:
		return true
	}
	return false
}

// Succeeded reports whether the run finished with results available
func (r ActorRun) Succeeded() bool {
	return r.Status == ActorStatusSucceeded
}

// ScrapeRequest is the input for a bulk product/seller scrape
type ScrapeRequest struct {
	SearchQuery string `json:"searchQuery"`
	MaxResults  int    `json:"maxResults"`
}

// ActorRunner runs hosted scraping jobs and retrieves their datasets
type ActorRunner interface {
	// StartRun submits a job to the named actor and returns the created
	// run without waiting for it.
	StartRun(ctx context.Context, actorID string, input any) (*ActorRun, error)
	// WaitForCompletion polls the run until it reaches a terminal
	// status. A non-success terminal status yields ErrActorRunFailed;
	// exhausting the wait budget yields ErrActorDeadlineExceeded.
	WaitForCompletion(ctx context.Context, runID string) (*ActorRun, error)
	// FetchResults downloads the dataset items of a finished run.
	FetchResults(ctx context.Context, runID string) ([]json.RawMessage, error)
}
