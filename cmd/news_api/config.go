package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-mann/internal/app"
	"github.com/DjordjeVuckovic/news-mann/internal/server"
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

type NewsApiConfig struct {
	Server *server.Config
	App    *app.Config
}

func (as *AppConfig) Load() (*NewsApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	serverCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server configuration", "error", err)
		return nil, err
	}

	appCfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}

	return &NewsApiConfig{
		Server: serverCfg,
		App:    appCfg,
	}, nil
}
