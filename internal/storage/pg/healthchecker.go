package pg

import (
	"context"
	"log/slog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	pool Pinger
}

func NewHealthChecker(pool Pinger) *HealthChecker {
	return &HealthChecker{
		pool: pool,
	}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.pool == nil {
		return false
	}

	if err := hc.pool.Ping(ctx); err != nil {
		slog.Warn("Postgres health check failed", "error", err)
		return false
	}

	return true
}
