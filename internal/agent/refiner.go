package agent

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/llm"
)

type Refinement struct {
	RefinedSummary  string    `json:"refined_summary"`
	OriginalSummary string    `json:"original_summary"`
	Critique        string    `json:"improvements_based_on"`
	RefinedAt       time.Time `json:"refinement_timestamp"`
}

type Refiner struct {
	llm     llm.Client
	prompts *Catalog
	now     func() time.Time
}

func NewRefiner(client llm.Client, prompts *Catalog) *Refiner {
	return &Refiner{
		llm:     client,
		prompts: prompts,
		now:     time.Now,
	}
}

func (r *Refiner) Refine(ctx context.Context, summary, critique, raw string) (Refinement, error) {
	text, err := complete(ctx, r.llm, StageRefine, r.prompts.Refine, PromptData{
		Summary:  summary,
		Critique: critique,
		Content:  raw,
	}, false, "")
	if err != nil {
		return Refinement{}, err
	}

	return Refinement{
		RefinedSummary:  text,
		OriginalSummary: summary,
		Critique:        critique,
		RefinedAt:       r.now().UTC(),
	}, nil
}
