package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/csvio"
	"github.com/musclebase/ingest/internal/maintenance"
)

var backfillEventDatesCmd = &cobra.Command{
	Use:   "backfill-event-dates",
	Short: "Fill missing event dates from a schedule document",
	Long:  "Fill start and end dates on events that have none, from a JSON document of dated schedule entries. Events that already carry both dates are never overwritten.",
	RunE:  runBackfillEventDates,
}

var (
	backfillEventDatesInput   string
	backfillEventDatesPreview bool
)

func init() {
	backfillEventDatesCmd.Flags().StringVarP(&backfillEventDatesInput, "input", "i", "", "JSON document of dated schedule entries (required)")
	backfillEventDatesCmd.Flags().BoolVarP(&backfillEventDatesPreview, "preview", "p", false, "Report intended changes without writing")

	backfillEventDatesCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(backfillEventDatesCmd)
}

func runBackfillEventDates(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{Input: backfillEventDatesInput, Preview: backfillEventDatesPreview})
	if err != nil {
		return err
	}

	var rows []maintenance.EventDateRow
	if err := csvio.ReadJSON(cfg.Input, &rows); err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	jobs := maintenance.New(database)
	jobs.Preview = backfillEventDatesPreview
	jobs.Delay = cfg.Delay()
	jobs.Logf = logf

	stats, err := jobs.BackfillEventDates(cmd.Context(), rows)
	if err != nil {
		return fmt.Errorf("failed to backfill event dates: %w", err)
	}

	printer.PrintBatchSummary("Event dates", stats.Updated, stats.Skipped, stats.NotFound, stats.Errors)
	return nil
}
