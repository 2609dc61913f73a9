package app

import (
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/freshness"
	"github.com/DjordjeVuckovic/news-mann/internal/llm"
	"github.com/DjordjeVuckovic/news-mann/internal/pipeline"
	"github.com/DjordjeVuckovic/news-mann/internal/search"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-mann/pkg/config/env"
)

type PipelineConfig struct {
	FreshnessWindow time.Duration
	MaxInFlight     int
	// PromptsPath overrides the embedded prompt catalog when set.
	PromptsPath string
}

type Config struct {
	Storage  factory.StorageConfig
	LLM      llm.Config
	Search   search.Config
	Pipeline PipelineConfig
}

// LoadConfig reads every component configuration from the environment.
func LoadConfig() (*Config, error) {
	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	llmCfg, err := llm.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load llm configuration from environment", "error", err)
		return nil, err
	}

	searchCfg, err := search.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load search configuration from environment", "error", err)
		return nil, err
	}

	return &Config{
		Storage: *storageCfg,
		LLM:     *llmCfg,
		Search:  *searchCfg,
		Pipeline: PipelineConfig{
			FreshnessWindow: env.Duration("FRESHNESS_WINDOW", freshness.DefaultWindow),
			MaxInFlight:     env.Int("PIPELINE_MAX_IN_FLIGHT", pipeline.DefaultMaxInFlight),
			PromptsPath:     os.Getenv("PROMPTS_PATH"),
		},
	}, nil
}
