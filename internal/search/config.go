package search

import (
	"errors"
	"os"
	"time"

	"github.com/DjordjeVuckovic/news-mann/pkg/config/env"
)

const (
	defaultBaseURL    = "https://api.tavily.com"
	defaultTimeout    = 30 * time.Second
	DefaultMaxResults = 5
)

type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxResults int
}

func LoadConfigFromEnv() (*Config, error) {
	apiKey := os.Getenv("TAVILY_API_KEY")
	if apiKey == "" {
		return nil, errors.New("TAVILY_API_KEY environment variable not set")
	}

	maxResults := env.Int("SEARCH_MAX_RESULTS", DefaultMaxResults)
	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}

	return &Config{
		APIKey:     apiKey,
		BaseURL:    env.String("TAVILY_BASE_URL", defaultBaseURL),
		Timeout:    env.Duration("SEARCH_TIMEOUT", defaultTimeout),
		MaxResults: maxResults,
	}, nil
}
