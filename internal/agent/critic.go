package agent

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/llm"
)

// Critique is a free-text review of a summary against the original text.
type Critique struct {
	Text          string    `json:"critique"`
	CreatedAt     time.Time `json:"timestamp"`
	SummaryLength int       `json:"summary_length"`
	ContentLength int       `json:"content_length"`
}

type Critic struct {
	llm     llm.Client
	prompts *Catalog
	now     func() time.Time
}

func NewCritic(client llm.Client, prompts *Catalog) *Critic {
	return &Critic{
		llm:     client,
		prompts: prompts,
		now:     time.Now,
	}
}

func (c *Critic) Critique(ctx context.Context, summary, raw string) (Critique, error) {
	text, err := complete(ctx, c.llm, StageCritique, c.prompts.Critique, PromptData{
		Summary: summary,
		Content: raw,
	}, false, "")
	if err != nil {
		return Critique{}, err
	}

	return Critique{
		Text:          text,
		CreatedAt:     c.now().UTC(),
		SummaryLength: utf8.RuneCountInString(summary),
		ContentLength: utf8.RuneCountInString(raw),
	}, nil
}

// Validate asks the model for a YES/NO verdict. Drafts without a summary, a source url or
// retrievable raw text are rejected without a call.
func (c *Critic) Validate(ctx context.Context, draft domain.Draft, raw string) (bool, error) {
	if strings.TrimSpace(draft.Summary) == "" ||
		strings.TrimSpace(draft.SourceURL) == "" ||
		strings.TrimSpace(raw) == "" {
		return false, nil
	}

	text, err := complete(ctx, c.llm, StageValidate, c.prompts.Validate, PromptData{
		Title:   draft.Title,
		URL:     draft.SourceURL,
		Summary: draft.Summary,
		Content: raw,
	}, false, "")
	if err != nil {
		return false, err
	}

	return Accepted(text), nil
}

// Accepted reports whether a verdict contains YES, ignoring case.
func Accepted(verdict string) bool {
	return strings.Contains(strings.ToUpper(verdict), "YES")
}
