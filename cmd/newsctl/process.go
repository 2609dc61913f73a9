package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/DjordjeVuckovic/news-mann/internal/app"
	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/pipeline"
	"github.com/DjordjeVuckovic/news-mann/pkg/output"
	"github.com/spf13/cobra"
)

type digestRunner interface {
	Run(ctx context.Context, topic string) (*pipeline.Result, error)
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <topic>",
		Short: "Run one digest for a topic and print its metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return runProcess(cmd.Context(), a.Digest, args[0], output.NewPrinter())
		},
	}
}

// runProcess treats a freshness skip as a normal outcome.
func runProcess(ctx context.Context, digest digestRunner, topic string, p *output.Printer) error {
	res, err := digest.Run(ctx, topic)

	var gs *apperr.GateSkip
	if errors.As(err, &gs) {
		p.Warning("%s", gs.Message)
		return nil
	}
	if res != nil {
		printResult(p, res)
	}
	if err != nil {
		return fmt.Errorf("digest %q failed: %w", topic, err)
	}
	return nil
}

func printResult(p *output.Printer, res *pipeline.Result) {
	p.Header(fmt.Sprintf("Digest: %s", res.Topic))

	t := output.NewTable(p.Out(), "stage", "count")
	t.AddRow("fetched", strconv.Itoa(res.Metrics.InitialFetchCount))
	t.AddRow("summarized", strconv.Itoa(res.Metrics.SummarizedCount))
	t.AddRow("validated", strconv.Itoa(res.Metrics.ValidatedCount))
	t.AddRow("stored", strconv.Itoa(res.Metrics.NewlyStoredCount))
	t.Render()

	if len(res.SkippedItems) > 0 {
		p.Header("Skipped items")
		st := output.NewTable(p.Out(), "stage", "source", "reason")
		for _, item := range res.SkippedItems {
			st.AddRow(item.Stage, item.SourceURL, item.Reason)
		}
		st.Render()
	}

	if res.Status == pipeline.StatusSuccess && res.Message != "" {
		p.Success("%s", res.Message)
	}
}
