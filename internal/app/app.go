// Package app assembles the search client, model clients, agents, freshness gate and storage
// into ready pipelines.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/agent"
	"github.com/DjordjeVuckovic/news-mann/internal/freshness"
	"github.com/DjordjeVuckovic/news-mann/internal/llm"
	"github.com/DjordjeVuckovic/news-mann/internal/pipeline"
	"github.com/DjordjeVuckovic/news-mann/internal/search"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/factory"
	"golang.org/x/time/rate"
)

type App struct {
	Backend    *factory.Backend
	Fetcher    *agent.Fetcher
	Digest     *pipeline.Digest
	Reflection *pipeline.Reflection
}

// New wires every dependency. Close must be called to release the storage backend.
func New(ctx context.Context, cfg *Config) (*App, error) {
	prompts := agent.DefaultCatalog()
	if cfg.Pipeline.PromptsPath != "" {
		var err error
		prompts, err = agent.LoadCatalog(cfg.Pipeline.PromptsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompts: %w", err)
		}
		slog.Info("Loaded prompt catalog", "path", cfg.Pipeline.PromptsPath)
	}

	searchClient, err := search.NewTavilyClient(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	limiter := llm.NewLimiter(cfg.LLM.RatePerSec)
	summaryModel, err := guardedModel("summary", cfg.LLM.Summary, limiter, cfg.LLM.Timeout)
	if err != nil {
		return nil, err
	}
	criticModel, err := guardedModel("critic", cfg.LLM.Critic, limiter, cfg.LLM.Timeout)
	if err != nil {
		return nil, err
	}

	backend, err := factory.NewBackend(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	fetcher := agent.NewFetcher(searchClient, cfg.Search.MaxResults)
	summarizer := agent.NewSummarizer(summaryModel, prompts)
	critic := agent.NewCritic(criticModel, prompts)

	gate := freshness.NewGate(backend.Store, freshness.WithWindow(cfg.Pipeline.FreshnessWindow))

	digest := pipeline.NewDigest(pipeline.Deps{
		Gate:        gate,
		Fetcher:     fetcher,
		Summarizer:  summarizer,
		Validator:   critic,
		Store:       backend.Store,
		MaxResults:  cfg.Search.MaxResults,
		MaxInFlight: cfg.Pipeline.MaxInFlight,
	})

	reflection := pipeline.NewReflection(pipeline.ReflectionDeps{
		Fetcher:        fetcher,
		Summarizer:     summarizer,
		Critic:         critic,
		Refiner:        agent.NewRefiner(criticModel, prompts),
		HeadlineWriter: agent.NewHeadlineWriter(criticModel, prompts),
		MaxResults:     cfg.Search.MaxResults,
		MaxInFlight:    cfg.Pipeline.MaxInFlight,
	})

	slog.Info("Application wired",
		"storage", cfg.Storage.Type,
		"es_mirror", cfg.Storage.Es != nil,
		"llm_provider", cfg.LLM.Summary.Provider,
		"freshness_window", gate.Window(),
		"max_in_flight", cfg.Pipeline.MaxInFlight)

	return &App{
		Backend:    backend,
		Fetcher:    fetcher,
		Digest:     digest,
		Reflection: reflection,
	}, nil
}

func (a *App) Close() {
	if a.Backend != nil && a.Backend.Close != nil {
		a.Backend.Close()
	}
}

func guardedModel(name string, mc llm.ModelConfig, limiter *rate.Limiter, timeout time.Duration) (llm.Client, error) {
	client, err := llm.New(mc)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model client: %w", name, err)
	}
	return llm.NewGuarded(name, client, llm.WithLimiter(limiter), llm.WithTimeout(timeout)), nil
}
