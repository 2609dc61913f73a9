// Package main News Mann API
// @title News Mann API
// @version 1.0
// @description Topic news digests: search, summarize, validate and store articles
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"os"

	_ "github.com/DjordjeVuckovic/news-mann/docs"
	"github.com/DjordjeVuckovic/news-mann/internal/app"
	"github.com/DjordjeVuckovic/news-mann/internal/router"
	"github.com/DjordjeVuckovic/news-mann/internal/server"
	pkgserver "github.com/DjordjeVuckovic/news-mann/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}
	slog.SetLogLoggerLevel(cfg.Server.LogLevel)

	healthChecker := pkgserver.NewCompositeHealthChecker()

	s := server.New(cfg.Server, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupMetrics("/metrics").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "News Mann API is running")
	})

	a, err := app.New(s.Context(), cfg.App)
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
		return
	}
	healthChecker.Add("storage", a.Backend.Health)

	router.NewNewsRouter(s.Echo, a.Digest, a.Reflection, a.Fetcher).Bind()
	router.NewArticleRouter(s.Echo, a.Backend.Store).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	a.Close()
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
