package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/news-mann/db"
	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/es"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-mann/pkg/server"
)

// Backend is a ready store together with its health check and cleanup.
type Backend struct {
	Store  storage.Store
	Health server.HealthChecker
	Close  func()
}

// NewBackend creates the store selected by cfg, optionally mirrored to Elasticsearch.
func NewBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	var backend *Backend

	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		if cfg.AutoMigrate {
			migrator, err := pg.NewMigrator(pool.GetConn(), db.Migrations, db.MigrationsDir)
			if err != nil {
				pool.Close()
				return nil, err
			}
			applied, err := migrator.Up(ctx)
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
			slog.Info("Migrations applied", "count", len(applied))
		}

		backend = &Backend{
			Store:  pg.NewStore(pool.GetConn()),
			Health: pg.NewHealthChecker(pool),
			Close:  pool.Close,
		}

	case storage.InMem:
		backend = &Backend{
			Store:  in_mem.NewStore(),
			Health: server.NewOkHealthChecker(),
			Close:  func() {},
		}

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}

	if cfg.Es != nil {
		indexer, err := es.NewIndexer(ctx, *cfg.Es)
		if err != nil {
			backend.Close()
			return nil, fmt.Errorf("failed to create Elasticsearch mirror: %w", err)
		}
		backend.Store = storage.NewMirroredStore(backend.Store, indexer)
		slog.Info("Mirroring stored articles to Elasticsearch", "index", cfg.Es.IndexName)
	}

	slog.Info("Storage initialized", "type", cfg.Type)
	return backend, nil
}
