package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/pipeline"
)

var uploadEventsCmd = &cobra.Command{
	Use:   "upload-events",
	Short: "Upload an events CSV",
	Long:  "Create the missing event records for competitions already in the store. Rows for unknown competitions are counted and skipped, never created.",
	RunE:  runUploadEvents,
}

var uploadEventsInput string

func init() {
	uploadEventsCmd.Flags().StringVarP(&uploadEventsInput, "input", "i", "", "Events CSV to upload (required)")

	uploadEventsCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(uploadEventsCmd)
}

func runUploadEvents(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{Input: uploadEventsInput})
	if err != nil {
		return err
	}

	rows, err := readEventRows(cfg.Input)
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	stage := pipeline.NewEvents(database)
	stage.Delay = cfg.Delay()
	stage.Logf = logf

	counters, err := stage.Run(cmd.Context(), rows)
	if err != nil {
		return fmt.Errorf("failed to upload events: %w", err)
	}

	printer.PrintBatchSummary("Events",
		counters.Success, counters.Existing, counters.Skipped, counters.Errors)
	return nil
}
