// Package pipeline runs the per-topic news digest: gate, fetch, summarize, validate, store.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/agent"
	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/freshness"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

const (
	DefaultMaxInFlight = 4

	MessageNoArticles = "No articles found to process."
)

type Metrics struct {
	InitialFetchCount int `json:"initial_fetch_count"`
	SummarizedCount   int `json:"summarized_count"`
	ValidatedCount    int `json:"validated_count"`
	NewlyStoredCount  int `json:"newly_stored_count"`
}

// ItemError records why a single document was dropped.
type ItemError struct {
	Stage     string `json:"stage"`
	SourceURL string `json:"source_url"`
	Title     string `json:"title,omitempty"`
	Reason    string `json:"reason"`
}

// Result is returned by every Digest run, including failed and skipped ones.
type Result struct {
	Status       Status        `json:"status"`
	Topic        string        `json:"topic"`
	Message      string        `json:"message,omitempty"`
	Metrics      Metrics       `json:"metrics"`
	SkippedItems []ItemError   `json:"skipped_items"`
	Duration     time.Duration `json:"-"`
}

type Gate interface {
	Check(ctx context.Context, topic string) (freshness.Decision, error)
	Remember(topic string, at time.Time)
}

type Fetcher interface {
	Fetch(ctx context.Context, topic string, maxResults int) ([]domain.RawDocument, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, doc domain.RawDocument) (domain.Draft, error)
}

type Validator interface {
	Validate(ctx context.Context, draft domain.Draft, raw string) (bool, error)
}

type Critic interface {
	Critique(ctx context.Context, summary, raw string) (agent.Critique, error)
}

type Refiner interface {
	Refine(ctx context.Context, summary, critique, raw string) (agent.Refinement, error)
}

type HeadlineWriter interface {
	Generate(ctx context.Context, summary string) (string, error)
}

func itemError(stage string, doc domain.RawDocument, err error) ItemError {
	var me *apperr.ModelError
	if errors.As(err, &me) && me.Stage != "" {
		stage = me.Stage
	}
	return ItemError{
		Stage:     stage,
		SourceURL: doc.URL,
		Title:     doc.Title,
		Reason:    err.Error(),
	}
}
