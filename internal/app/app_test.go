package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/llm"
	"github.com/DjordjeVuckovic/news-mann/internal/search"
	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	model := llm.ModelConfig{Provider: llm.ProviderOpenAI, APIKey: "key", BaseURL: "http://localhost", Model: "m"}
	return &Config{
		Storage: factory.StorageConfig{Type: storage.InMem},
		LLM:     llm.Config{Summary: model, Critic: model, Timeout: time.Second, RatePerSec: 1},
		Search:  search.Config{APIKey: "key", BaseURL: "http://localhost", MaxResults: 3},
		Pipeline: PipelineConfig{
			FreshnessWindow: 30 * time.Minute,
			MaxInFlight:     2,
		},
	}
}

func TestNew_InMemory(t *testing.T) {
	a, err := New(context.Background(), testConfig())
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Digest)
	assert.NotNil(t, a.Reflection)
	assert.NotNil(t, a.Fetcher)
	assert.True(t, a.Backend.Health.Healthy(context.Background()))
}

func TestNew_InvalidPromptsPath(t *testing.T) {
	cfg := testConfig()
	cfg.Pipeline.PromptsPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_UnsupportedProvider(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Critic.Provider = "cohere"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	prompts := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(prompts, []byte("{}"), 0o600))

	t.Setenv("STORAGE_TYPE", "in_mem")
	t.Setenv("ES_ADDRESSES", "")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "key")
	t.Setenv("TAVILY_API_KEY", "key")
	t.Setenv("FRESHNESS_WINDOW", "10m")
	t.Setenv("PIPELINE_MAX_IN_FLIGHT", "1")
	t.Setenv("PROMPTS_PATH", prompts)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, storage.InMem, cfg.Storage.Type)
	assert.Equal(t, 10*time.Minute, cfg.Pipeline.FreshnessWindow)
	assert.Equal(t, 1, cfg.Pipeline.MaxInFlight)
	assert.Equal(t, prompts, cfg.Pipeline.PromptsPath)
}

func TestLoadConfig_MissingSearchKey(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "in_mem")
	t.Setenv("LLM_API_KEY", "key")
	t.Setenv("TAVILY_API_KEY", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
