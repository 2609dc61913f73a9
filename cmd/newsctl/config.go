package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-mann/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

func (as *AppConfig) LoadDotEnv() {
	if err := env.LoadDotEnv(as.ENV, "cmd/newsctl/.env"); err != nil {
		slog.Debug("Continuing with existing environment variables", "error", err)
	}
}

// LoadPgConfig returns the Postgres settings migrations run against.
func LoadPgConfig() (*pg.PoolConfig, error) {
	cfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}
	if cfg.Type != storage.PG || cfg.Pg == nil {
		return nil, fmt.Errorf("migrations require STORAGE_TYPE=%s, got %s", storage.PG, cfg.Type)
	}
	return cfg.Pg, nil
}
