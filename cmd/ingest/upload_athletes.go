package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/pipeline"
)

var uploadAthletesCmd = &cobra.Command{
	Use:   "upload-athletes",
	Short: "Upload an athletes CSV",
	Long:  "Create the missing person and athlete records for each scraped athlete row, normalizing their nationality and origin data on the way in.",
	RunE:  runUploadAthletes,
}

var (
	uploadAthletesInput string
	uploadAthletesMode  string
)

func init() {
	uploadAthletesCmd.Flags().StringVarP(&uploadAthletesInput, "input", "i", "", "Athletes CSV to upload (required)")
	uploadAthletesCmd.Flags().StringVarP(&uploadAthletesMode, "mode", "m", "", `Processing mode: "all" or "new"`)

	uploadAthletesCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(uploadAthletesCmd)
}

func runUploadAthletes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{
		Input: uploadAthletesInput,
		Mode:  uploadAthletesMode,
	})
	if err != nil {
		return err
	}

	rows, err := readAthleteRows(cfg.Input)
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	stage := pipeline.NewAthletes(database, cfg.Mode)
	stage.Delay = cfg.Delay()
	stage.Logf = logf

	counters, err := stage.Run(cmd.Context(), rows)
	if err != nil {
		return fmt.Errorf("failed to upload athletes: %w", err)
	}

	printer.PrintBatchSummary("Athletes",
		counters.Success, counters.Existing, counters.Skipped, counters.Errors)
	return nil
}
