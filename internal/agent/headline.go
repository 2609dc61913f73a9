package agent

import (
	"context"
	"strings"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/llm"
)

const headlineQuotes = "\"'“”‘’`"

type HeadlineWriter struct {
	llm     llm.Client
	prompts *Catalog
}

func NewHeadlineWriter(client llm.Client, prompts *Catalog) *HeadlineWriter {
	return &HeadlineWriter{
		llm:     client,
		prompts: prompts,
	}
}

func (h *HeadlineWriter) Generate(ctx context.Context, summary string) (string, error) {
	text, err := complete(ctx, h.llm, StageHeadline, h.prompts.Headline, PromptData{
		Summary: summary,
	}, false, "")
	if err != nil {
		return "", err
	}

	headline := CleanHeadline(text)
	if headline == "" {
		return "", apperr.NewModel(StageHeadline, llm.ErrEmptyResponse)
	}
	return headline, nil
}

// CleanHeadline trims whitespace and wrapping quotes until stable.
func CleanHeadline(s string) string {
	for {
		cleaned := strings.TrimSpace(s)
		cleaned = strings.TrimLeft(cleaned, headlineQuotes)
		cleaned = strings.TrimRight(cleaned, headlineQuotes)
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == s {
			return cleaned
		}
		s = cleaned
	}
}
