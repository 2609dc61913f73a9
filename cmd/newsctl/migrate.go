package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/news-mann/db"
	"github.com/DjordjeVuckovic/news-mann/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-mann/pkg/output"
	"github.com/spf13/cobra"
)

var errDropNotConfirmed = errors.New("drop reverts every migration and deletes all data, pass --yes to confirm")

type migrator interface {
	Up(ctx context.Context) ([]string, error)
	Down(ctx context.Context) ([]string, error)
	Status(ctx context.Context) ([]pg.MigrationStatus, error)
	Tables(ctx context.Context) ([]string, error)
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}

	var yes bool
	drop := &cobra.Command{
		Use:   "drop",
		Short: "Revert every applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errDropNotConfirmed
			}
			return withMigrator(cmd.Context(), func(m migrator) error {
				return migrateDrop(cmd.Context(), m, output.NewPrinter())
			})
		},
	}
	drop.Flags().BoolVar(&yes, "yes", false, "confirm dropping the schema")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), func(m migrator) error {
					return migrateUp(cmd.Context(), m, output.NewPrinter())
				})
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Show migration state and existing tables",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), func(m migrator) error {
					return migrateCheck(cmd.Context(), m, output.NewPrinter())
				})
			},
		},
		drop,
	)
	return cmd
}

func withMigrator(ctx context.Context, fn func(m migrator) error) error {
	cfg, err := LoadPgConfig()
	if err != nil {
		return err
	}
	pool, err := pg.NewConnectionPool(ctx, *cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	m, err := pg.NewMigrator(pool.GetConn(), db.Migrations, db.MigrationsDir)
	if err != nil {
		return err
	}
	return fn(m)
}

func migrateUp(ctx context.Context, m migrator, p *output.Printer) error {
	applied, err := m.Up(ctx)
	for _, v := range applied {
		p.Success("Applied %s", v)
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	if len(applied) == 0 {
		p.Info("Schema is up to date")
	}
	return nil
}

func migrateDrop(ctx context.Context, m migrator, p *output.Printer) error {
	reverted, err := m.Down(ctx)
	for _, v := range reverted {
		p.Warning("Reverted %s", v)
	}
	if err != nil {
		return fmt.Errorf("migrate drop: %w", err)
	}
	p.Success("Dropped %d migrations", len(reverted))
	return nil
}

func migrateCheck(ctx context.Context, m migrator, p *output.Printer) error {
	status, err := m.Status(ctx)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	tables, err := m.Tables(ctx)
	if err != nil {
		return err
	}

	p.Header("Migrations")
	t := output.NewTable(p.Out(), "version", "state")
	pending := 0
	for _, s := range status {
		state := p.Badge("applied", true)
		if !s.Applied {
			state = p.Badge("pending", false)
			pending++
		}
		t.AddRow(s.Version, state)
	}
	t.Render()

	p.Header("Tables")
	if len(tables) == 0 {
		p.Info("No tables found")
	}
	for _, name := range tables {
		p.Info("%s", name)
	}

	if pending > 0 {
		p.Warning("%d pending migrations, run: newsctl migrate up", pending)
	}
	return nil
}
