package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-mann/db"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/pg"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pg.ConnectionPool
}

type PGConfig struct {
	Database string
	Username string
	Password string
}

// NewPGContainer starts Postgres and applies the embedded migrations.
func NewPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	return createPGContainer(ctx, cfg)
}

func NewPGContainerWithCleanup(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	container, err := createPGContainer(ctx, PGConfig{
		Database: "news_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		tb.Fatalf("failed to create postgres container: %v", err)
	}

	tb.Cleanup(func() {
		container.Pool.Close()
		if err := testcontainers.TerminateContainer(container.Container); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})

	return container
}

func createPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:17.5",
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(pgContainer)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: connStr})
	if err != nil {
		_ = testcontainers.TerminateContainer(pgContainer)
		return nil, err
	}

	migrator, err := pg.NewMigrator(pool.GetConn(), db.Migrations, db.MigrationsDir)
	if err == nil {
		_, err = migrator.Up(ctx)
	}
	if err != nil {
		pool.Close()
		_ = testcontainers.TerminateContainer(pgContainer)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &PGContainer{
		Container:  pgContainer,
		ConnString: connStr,
		Pool:       pool,
	}, nil
}
