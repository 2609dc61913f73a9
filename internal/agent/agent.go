// Package agent holds the per-document stages of the digest pipeline:
// fetching, summarizing, critiquing, validating, refining and headline writing.
package agent

import (
	"context"
	"errors"
	"strings"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/llm"
	"github.com/DjordjeVuckovic/news-mann/pkg/stringsutil"
)

const (
	StageFetch     = "fetch"
	StageSummarize = "summarize"
	StageCritique  = "critique"
	StageValidate  = "validate"
	StageRefine    = "refine"
	StageHeadline  = "headline"
	StageStore     = "store"
)

// maxContentChars bounds the raw text sent to the model.
const maxContentChars = 12000

var ErrNoRawText = errors.New("original text is not retrievable")

func complete(ctx context.Context, client llm.Client, stage string, prompt Prompt, data PromptData, jsonOut bool, schema string) (string, error) {
	data.Content = stringsutil.Truncate(data.Content, maxContentChars)
	user, err := prompt.Render(data)
	if err != nil {
		return "", apperr.NewModel(stage, err)
	}

	resp, err := client.Complete(ctx, llm.Request{
		System: strings.TrimSpace(prompt.System),
		Prompt: user,
		JSON:   jsonOut,
		Schema: schema,
	})
	if err != nil {
		return "", apperr.NewModel(stage, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", apperr.NewModel(stage, llm.ErrEmptyResponse)
	}
	return text, nil
}
