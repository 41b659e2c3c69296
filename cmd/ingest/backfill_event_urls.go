package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/csvio"
	"github.com/musclebase/ingest/internal/maintenance"
)

var backfillEventURLsCmd = &cobra.Command{
	Use:   "backfill-event-urls",
	Short: "Fill missing event URLs from a schedule document",
	Long:  "Fill missing event URLs for one season from a JSON document keyed by competition key. Existing URLs are never overwritten.",
	RunE:  runBackfillEventURLs,
}

var (
	backfillEventURLsInput   string
	backfillEventURLsYear    int
	backfillEventURLsPreview bool
)

func init() {
	backfillEventURLsCmd.Flags().StringVarP(&backfillEventURLsInput, "input", "i", "", "JSON document mapping competition keys to URLs (required)")
	backfillEventURLsCmd.Flags().IntVarP(&backfillEventURLsYear, "year", "y", 0, "Season the URLs belong to (required)")
	backfillEventURLsCmd.Flags().BoolVarP(&backfillEventURLsPreview, "preview", "p", false, "Report intended changes without writing")

	backfillEventURLsCmd.MarkFlagRequired("input")
	backfillEventURLsCmd.MarkFlagRequired("year")

	rootCmd.AddCommand(backfillEventURLsCmd)
}

func runBackfillEventURLs(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{Input: backfillEventURLsInput, Year: backfillEventURLsYear})
	if err != nil {
		return err
	}

	var urls map[string]string
	if err := csvio.ReadJSON(cfg.Input, &urls); err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	jobs := maintenance.New(database)
	jobs.Preview = backfillEventURLsPreview
	jobs.Delay = cfg.Delay()
	jobs.Logf = logf

	stats, err := jobs.BackfillEventURLs(cmd.Context(), cfg.Year, urls)
	if err != nil {
		return fmt.Errorf("failed to backfill event URLs: %w", err)
	}

	printer.PrintBatchSummary("Event URLs", stats.Updated, stats.NoURL, stats.NotFound, stats.Errors)
	return nil
}
