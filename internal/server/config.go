package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/news-mann/pkg/config/env"
	"github.com/DjordjeVuckovic/news-mann/pkg/stringsutil"
)

const defaultPort = "8080"

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	LogLevel    slog.Level
}

// LoadConfig reads server settings from the environment. The .env file is loaded by the caller.
func LoadConfig() (*Config, error) {
	port := env.String("PORT", defaultPort)
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := stringsutil.SplitCSV(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:        port,
		UseHttp2:    env.Bool("USE_HTTP2"),
		CorsOrigins: origins,
		LogLevel:    ParseLogLevel(os.Getenv("LOG_LEVEL")),
	}, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
