package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/agent"
	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/metrics"
)

const variantReflection = "reflection"

type ReflectionDeps struct {
	Fetcher        Fetcher
	Summarizer     Summarizer
	Critic         Critic
	Refiner        Refiner
	HeadlineWriter HeadlineWriter

	MaxResults  int
	MaxInFlight int
}

// ReflectionItem traces one document through summarize, critique, refine and headline.
type ReflectionItem struct {
	Title          string           `json:"title"`
	SourceURL      string           `json:"source_url"`
	SourceName     string           `json:"source_name,omitempty"`
	ImageURL       string           `json:"image_url,omitempty"`
	PublishedAt    string           `json:"published_at,omitempty"`
	InitialSummary string           `json:"initial_summary"`
	Critique       agent.Critique   `json:"critique"`
	Refinement     agent.Refinement `json:"refinement"`
	Headline       string           `json:"headline"`
}

type ReflectionMetrics struct {
	InitialFetchCount int `json:"initial_fetch_count"`
	RefinedCount      int `json:"refined_count"`
}

type ReflectionResult struct {
	Status       Status            `json:"status"`
	Topic        string            `json:"topic"`
	Message      string            `json:"message,omitempty"`
	Metrics      ReflectionMetrics `json:"metrics"`
	Items        []ReflectionItem  `json:"items"`
	SkippedItems []ItemError       `json:"skipped_items"`
	Duration     time.Duration     `json:"-"`
}

// Reflection refines summaries without storing them. It does not consult the freshness gate.
type Reflection struct {
	deps ReflectionDeps
	now  func() time.Time
}

func NewReflection(deps ReflectionDeps) *Reflection {
	if deps.MaxInFlight < 1 {
		deps.MaxInFlight = DefaultMaxInFlight
	}
	return &Reflection{deps: deps, now: time.Now}
}

func (p *Reflection) Run(ctx context.Context, topic string) (res *ReflectionResult, err error) {
	start := p.now()
	topic = strings.TrimSpace(topic)
	res = &ReflectionResult{
		Status:       StatusSuccess,
		Topic:        topic,
		Items:        []ReflectionItem{},
		SkippedItems: []ItemError{},
	}

	defer func() {
		res.Duration = p.now().Sub(start)
		if err != nil {
			res.Status = StatusError
		}
		metrics.RecordRun(variantReflection, string(res.Status), res.Duration)
		slog.Info("Reflection finished",
			"topic", topic,
			"status", res.Status,
			"fetched", res.Metrics.InitialFetchCount,
			"refined", res.Metrics.RefinedCount,
			"duration", res.Duration)
	}()

	if topic == "" {
		return res, apperr.NewValidation("topic must not be empty")
	}

	docs, err := p.deps.Fetcher.Fetch(ctx, topic, p.deps.MaxResults)
	if err != nil {
		return res, err
	}
	res.Metrics.InitialFetchCount = len(docs)
	if len(docs) == 0 {
		res.Message = MessageNoArticles
		return res, nil
	}

	items, errs := mapBounded(ctx, p.deps.MaxInFlight, docs, p.reflect)
	for i, item := range items {
		if errs[i] != nil {
			res.SkippedItems = append(res.SkippedItems, itemError(agent.StageSummarize, docs[i], errs[i]))
			slog.Warn("Dropping document", "url", docs[i].URL, "error", errs[i])
			continue
		}
		res.Items = append(res.Items, item)
	}
	res.Metrics.RefinedCount = len(res.Items)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func (p *Reflection) reflect(ctx context.Context, doc domain.RawDocument) (ReflectionItem, error) {
	draft, err := p.deps.Summarizer.Summarize(ctx, doc)
	if err != nil {
		return ReflectionItem{}, err
	}

	critique, err := p.deps.Critic.Critique(ctx, draft.Summary, doc.FullText)
	if err != nil {
		return ReflectionItem{}, err
	}

	refinement, err := p.deps.Refiner.Refine(ctx, draft.Summary, critique.Text, doc.FullText)
	if err != nil {
		return ReflectionItem{}, err
	}

	headline, err := p.deps.HeadlineWriter.Generate(ctx, refinement.RefinedSummary)
	if err != nil {
		return ReflectionItem{}, err
	}
	metrics.RecordStageItem(agent.StageHeadline, metrics.OutcomeOK)

	return ReflectionItem{
		Title:          draft.Title,
		SourceURL:      draft.SourceURL,
		SourceName:     draft.SourceName,
		ImageURL:       draft.ImageURL,
		PublishedAt:    draft.PublishedAt,
		InitialSummary: draft.Summary,
		Critique:       critique,
		Refinement:     refinement,
		Headline:       headline,
	}, nil
}
