package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/llm"
	"github.com/go-playground/validator/v10"
)

const summarySchema = `{
  "type": "object",
  "properties": {
    "headline": {"type": "string"},
    "summary": {"type": "string"},
    "published_at": {"type": ["string", "null"]},
    "source_name": {"type": ["string", "null"]}
  },
  "required": ["headline", "summary", "published_at", "source_name"],
  "additionalProperties": false
}`

type summaryPayload struct {
	Headline    string  `json:"headline" validate:"required"`
	Summary     string  `json:"summary" validate:"required"`
	PublishedAt *string `json:"published_at"`
	SourceName  *string `json:"source_name"`
}

type Summarizer struct {
	llm      llm.Client
	prompts  *Catalog
	validate *validator.Validate
}

func NewSummarizer(client llm.Client, prompts *Catalog) *Summarizer {
	return &Summarizer{
		llm:      client,
		prompts:  prompts,
		validate: validator.New(),
	}
}

// Summarize turns one raw document into a draft. Any failure is a *apperr.ModelError and
// concerns only this document.
func (s *Summarizer) Summarize(ctx context.Context, doc domain.RawDocument) (domain.Draft, error) {
	if !doc.HasText() {
		return domain.Draft{}, apperr.NewModel(StageSummarize, ErrNoRawText)
	}

	text, err := complete(ctx, s.llm, StageSummarize, s.prompts.Summarize, PromptData{
		Title:   doc.Title,
		URL:     doc.URL,
		Content: doc.FullText,
	}, true, summarySchema)
	if err != nil {
		return domain.Draft{}, err
	}

	payload, err := s.parse(text)
	if err != nil {
		return domain.Draft{}, apperr.NewModel(StageSummarize, err)
	}

	draft := domain.Draft{
		Title:      doc.Title,
		Headline:   payload.Headline,
		Summary:    payload.Summary,
		SourceURL:  doc.URL,
		SourceName: doc.SourceName,
		ImageURL:   doc.ImageURL,
	}
	if payload.PublishedAt != nil {
		draft.PublishedAt = strings.TrimSpace(*payload.PublishedAt)
	}
	if payload.SourceName != nil && strings.TrimSpace(*payload.SourceName) != "" {
		draft.SourceName = strings.TrimSpace(*payload.SourceName)
	}
	if draft.Title == "" {
		draft.Title = draft.Headline
	}
	return draft, nil
}

func (s *Summarizer) parse(text string) (*summaryPayload, error) {
	var payload summaryPayload
	if err := json.Unmarshal([]byte(jsonObject(text)), &payload); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	payload.Headline = strings.TrimSpace(payload.Headline)
	payload.Summary = strings.TrimSpace(payload.Summary)
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("invalid summary: %w", err)
	}
	return &payload, nil
}

// jsonObject trims code fences or prose some models wrap around a JSON object.
func jsonObject(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}
