package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/pipeline"
)

var uploadResultsCmd = &cobra.Command{
	Use:   "upload-results",
	Short: "Upload a results CSV",
	Long:  "Resolve each result row to its athlete and division and create the missing result records. Rows whose parents cannot be resolved are counted and skipped.",
	RunE:  runUploadResults,
}

var (
	uploadResultsInput string
	uploadResultsMode  string
)

func init() {
	uploadResultsCmd.Flags().StringVarP(&uploadResultsInput, "input", "i", "", "Results CSV to upload (required)")
	uploadResultsCmd.Flags().StringVarP(&uploadResultsMode, "mode", "m", "", `Processing mode: "all" or "new"`)

	uploadResultsCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(uploadResultsCmd)
}

func runUploadResults(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{
		Input: uploadResultsInput,
		Mode:  uploadResultsMode,
	})
	if err != nil {
		return err
	}

	rows, err := readResultRows(cfg.Input)
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	stage := pipeline.NewResults(database, cfg.Mode)
	stage.Delay = cfg.Delay()
	stage.Logf = logf

	counters, err := stage.Run(cmd.Context(), rows)
	if err != nil {
		return fmt.Errorf("failed to upload results: %w", err)
	}

	printer.PrintBatchSummary("Results",
		counters.Success, counters.Existing, counters.Skipped, counters.Errors)
	return nil
}
