package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/agent"
	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/metrics"
	"github.com/DjordjeVuckovic/news-mann/internal/storage"
)

const variantDigest = "digest"

// Deps are the collaborators of a Digest run.
type Deps struct {
	Gate       Gate
	Fetcher    Fetcher
	Summarizer Summarizer
	Validator  Validator
	Store      storage.Writer

	// MaxResults is passed to the fetcher; zero uses its default.
	MaxResults int
	// MaxInFlight bounds concurrent per-document model calls; 1 is sequential.
	MaxInFlight int
}

type Digest struct {
	deps Deps
	now  func() time.Time
}

func NewDigest(deps Deps) *Digest {
	if deps.MaxInFlight < 1 {
		deps.MaxInFlight = DefaultMaxInFlight
	}
	return &Digest{deps: deps, now: time.Now}
}

// Run executes one digest for topic. The returned Result is never nil and carries the metrics
// gathered up to the point of failure. A fresh topic yields *apperr.GateSkip.
func (p *Digest) Run(ctx context.Context, topic string) (res *Result, err error) {
	start := p.now()
	topic = strings.TrimSpace(topic)
	res = &Result{Status: StatusSuccess, Topic: topic, SkippedItems: []ItemError{}}

	defer func() {
		res.Duration = p.now().Sub(start)
		if err != nil && res.Status == StatusSuccess {
			res.Status = StatusError
		}
		metrics.RecordRun(variantDigest, string(res.Status), res.Duration)
		slog.Info("Digest finished",
			"topic", topic,
			"status", res.Status,
			"fetched", res.Metrics.InitialFetchCount,
			"summarized", res.Metrics.SummarizedCount,
			"validated", res.Metrics.ValidatedCount,
			"stored", res.Metrics.NewlyStoredCount,
			"skipped_items", len(res.SkippedItems),
			"duration", res.Duration)
	}()

	if topic == "" {
		return res, apperr.NewValidation("topic must not be empty")
	}

	decision, err := p.deps.Gate.Check(ctx, topic)
	if err != nil {
		return res, err
	}
	if decision.Fresh {
		res.Status = StatusSkipped
		res.Message = decision.Message
		metrics.RecordStageItem("gate", metrics.OutcomeSkipped)
		return res, decision.Skip(topic)
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

	drafts := p.summarize(ctx, docs, res)
	res.Metrics.SummarizedCount = len(drafts)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	validated := p.validate(ctx, docs, drafts, res)
	res.Metrics.ValidatedCount = len(validated)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	stored, err := p.deps.Store.StoreAll(ctx, validated, topic)
	if err != nil {
		return res, err
	}
	res.Metrics.NewlyStoredCount = stored.NewCount
	metrics.RecordStored(stored.NewCount)
	if stored.NewCount > 0 {
		at := p.now()
		if len(stored.Inserted) > 0 {
			at = stored.Inserted[0].CreatedAt
		}
		p.deps.Gate.Remember(topic, at)
	}

	res.Message = fmt.Sprintf("Stored %d new articles out of %d fetched.", stored.NewCount, len(docs))
	return res, nil
}

func (p *Digest) summarize(ctx context.Context, docs []domain.RawDocument, res *Result) []domain.Draft {
	drafts, errs := mapBounded(ctx, p.deps.MaxInFlight, docs, p.deps.Summarizer.Summarize)

	kept := make([]domain.Draft, 0, len(drafts))
	for i, d := range drafts {
		if errs[i] != nil {
			res.SkippedItems = append(res.SkippedItems, itemError(agent.StageSummarize, docs[i], errs[i]))
			metrics.RecordStageItem(agent.StageSummarize, metrics.OutcomeError)
			slog.Warn("Dropping document", "stage", agent.StageSummarize, "url", docs[i].URL, "error", errs[i])
			continue
		}
		metrics.RecordStageItem(agent.StageSummarize, metrics.OutcomeOK)
		kept = append(kept, d)
	}
	return kept
}

func (p *Digest) validate(ctx context.Context, docs []domain.RawDocument, drafts []domain.Draft, res *Result) []domain.Draft {
	corpus := domain.NewCorpus(docs)
	accepted, errs := mapBounded(ctx, p.deps.MaxInFlight, drafts, func(ctx context.Context, d domain.Draft) (bool, error) {
		raw, _ := corpus.Text(d.SourceURL)
		return p.deps.Validator.Validate(ctx, d, raw)
	})

	kept := make([]domain.Draft, 0, len(drafts))
	for i, d := range drafts {
		doc := corpus[d.SourceURL]
		doc.URL = d.SourceURL
		if doc.Title == "" {
			doc.Title = d.Title
		}

		switch {
		case errs[i] != nil:
			res.SkippedItems = append(res.SkippedItems, itemError(agent.StageValidate, doc, errs[i]))
			metrics.RecordStageItem(agent.StageValidate, metrics.OutcomeError)
			slog.Warn("Dropping draft", "stage", agent.StageValidate, "url", d.SourceURL, "error", errs[i])
		case !accepted[i]:
			res.SkippedItems = append(res.SkippedItems, ItemError{
				Stage:     agent.StageValidate,
				SourceURL: d.SourceURL,
				Title:     doc.Title,
				Reason:    rejectionReason(corpus, d),
			})
			metrics.RecordStageItem(agent.StageValidate, metrics.OutcomeRejected)
			slog.Info("Draft rejected", "url", d.SourceURL)
		default:
			metrics.RecordStageItem(agent.StageValidate, metrics.OutcomeOK)
			kept = append(kept, d)
		}
	}
	return kept
}

func rejectionReason(corpus domain.Corpus, d domain.Draft) string {
	if _, ok := corpus.Text(d.SourceURL); !ok {
		return agent.ErrNoRawText.Error()
	}
	if strings.TrimSpace(d.Summary) == "" {
		return "draft has no summary"
	}
	return "summary not confirmed accurate against the source"
}
