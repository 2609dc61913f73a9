package pg

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"

	createVersionsSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	appliedVersionsSQL = `SELECT version FROM schema_migrations ORDER BY version`
	insertVersionSQL   = `INSERT INTO schema_migrations (version) VALUES ($1)`
	deleteVersionSQL   = `DELETE FROM schema_migrations WHERE version = $1`
	dropVersionsSQL    = `DROP TABLE IF EXISTS schema_migrations`
	listTablesSQL      = `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name`
)

type Migration struct {
	Version string
	Up      string
	Down    string
}

type MigrationStatus struct {
	Version string
	Applied bool
}

// Migrator applies NNNNNN_name.up.sql files in lexical order, one transaction per file.
type Migrator struct {
	db         DB
	migrations []Migration
}

func NewMigrator(db DB, fsys fs.FS, dir string) (*Migrator, error) {
	migrations, err := loadMigrations(fsys, dir)
	if err != nil {
		return nil, err
	}
	return &Migrator{db: db, migrations: migrations}, nil
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := make(map[string]*Migration)
	for _, e := range entries {
		name := e.Name()
		var version string
		var up bool
		switch {
		case strings.HasSuffix(name, upSuffix):
			version, up = strings.TrimSuffix(name, upSuffix), true
		case strings.HasSuffix(name, downSuffix):
			version = strings.TrimSuffix(name, downSuffix)
		default:
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version}
			byVersion[version] = m
		}
		if up {
			m.Up = string(content)
		} else {
			m.Down = string(content)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" {
			return nil, fmt.Errorf("migration %s has no up file", m.Version)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func (m *Migrator) Migrations() []Migration {
	return m.migrations
}

// Up applies pending migrations and returns their versions.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if _, err := m.db.Exec(ctx, createVersionsSQL); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, mig := range m.migrations {
		if applied[mig.Version] {
			continue
		}
		if err := m.apply(ctx, mig.Version, mig.Up, insertVersionSQL); err != nil {
			return done, err
		}
		slog.Info("Applied migration", "version", mig.Version)
		done = append(done, mig.Version)
	}
	return done, nil
}

// Down reverts every applied migration, newest first, and drops the version table.
func (m *Migrator) Down(ctx context.Context) ([]string, error) {
	if _, err := m.db.Exec(ctx, createVersionsSQL); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for i := len(m.migrations) - 1; i >= 0; i-- {
		mig := m.migrations[i]
		if !applied[mig.Version] {
			continue
		}
		if mig.Down == "" {
			return done, fmt.Errorf("migration %s has no down file", mig.Version)
		}
		if err := m.apply(ctx, mig.Version, mig.Down, deleteVersionSQL); err != nil {
			return done, err
		}
		slog.Info("Reverted migration", "version", mig.Version)
		done = append(done, mig.Version)
	}

	if _, err := m.db.Exec(ctx, dropVersionsSQL); err != nil {
		return done, fmt.Errorf("drop schema_migrations: %w", err)
	}
	return done, nil
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if _, err := m.db.Exec(ctx, createVersionsSQL); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(m.migrations))
	for _, mig := range m.migrations {
		status = append(status, MigrationStatus{Version: mig.Version, Applied: applied[mig.Version]})
	}
	return status, nil
}

// Tables lists the tables of the public schema.
func (m *Migrator) Tables(ctx context.Context) ([]string, error) {
	rows, err := m.db.Query(ctx, listTablesSQL)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.Query(ctx, appliedVersionsSQL)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, version, sql, bookkeeping string) (err error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("migration %s: begin: %w", version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("migration %s: %w", version, err)
	}
	if _, err = tx.Exec(ctx, bookkeeping, version); err != nil {
		return fmt.Errorf("migration %s: record version: %w", version, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("migration %s: commit: %w", version, err)
	}
	return nil
}
