package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/DjordjeVuckovic/news-mann/pkg/config/env"
)

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-3.5-turbo-1106"
	defaultClaudeModel   = "claude-3-5-haiku-latest"
	defaultMaxTokens     = 1024
	defaultTimeout       = 60 * time.Second
	defaultRatePerSec    = 2.0
)

type ModelConfig struct {
	Provider    Provider
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Config holds the two model configurations the pipeline runs with:
// Summary is JSON constrained, Critic answers in free text.
type Config struct {
	Summary    ModelConfig
	Critic     ModelConfig
	Timeout    time.Duration
	RatePerSec float64
}

func LoadConfigFromEnv() (*Config, error) {
	provider := Provider(env.String("LLM_PROVIDER", string(ProviderOpenAI)))
	if provider != ProviderOpenAI && provider != ProviderAnthropic {
		return nil, fmt.Errorf("invalid LLM_PROVIDER %q, expected one of %v", provider, []Provider{ProviderOpenAI, ProviderAnthropic})
	}

	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		switch provider {
		case ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		case ProviderAnthropic:
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY environment variable is not set")
	}

	defModel := defaultOpenAIModel
	if provider == ProviderAnthropic {
		defModel = defaultClaudeModel
	}

	base := ModelConfig{
		Provider:    provider,
		APIKey:      apiKey,
		BaseURL:     env.String("LLM_BASE_URL", defaultOpenAIBaseURL),
		MaxTokens:   env.Int("LLM_MAX_TOKENS", defaultMaxTokens),
		Temperature: env.Float("LLM_TEMPERATURE", 0),
	}

	summary := base
	summary.Model = env.String("LLM_SUMMARY_MODEL", defModel)
	critic := base
	critic.Model = env.String("LLM_CRITIC_MODEL", defModel)

	return &Config{
		Summary:    summary,
		Critic:     critic,
		Timeout:    env.Duration("LLM_TIMEOUT", defaultTimeout),
		RatePerSec: env.Float("LLM_RATE_PER_SEC", defaultRatePerSec),
	}, nil
}

// New builds the backend client for cfg.
func New(cfg ModelConfig) (Client, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(cfg)
	case ProviderAnthropic:
		return NewAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
