package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-mann/internal/server"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "newsctl",
		Short: "Operate the news-mann database and pipelines",
		Long: `newsctl manages the news-mann schema and runs digests from the shell.

Example usage:
  newsctl migrate up              # Apply pending migrations
  newsctl migrate check           # Show migration state and tables
  newsctl migrate drop --yes      # Revert every migration
  newsctl process technology      # Run one digest for a topic`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := server.ParseLogLevel(os.Getenv("LOG_LEVEL"))
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			NewAppConfig().LoadDotEnv()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newMigrateCmd(), newProcessCmd())
	return root
}
