package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/pipeline"
)

var uploadScheduleCmd = &cobra.Command{
	Use:   "upload-schedule",
	Short: "Upload a scraped schedule CSV",
	Long:  "Resolve each scraped schedule row against the canonical store and create the missing competitions, events, and divisions for the season.",
	RunE:  runUploadSchedule,
}

var (
	uploadScheduleInput   string
	uploadScheduleKeysDir string
	uploadScheduleYear    int
	uploadScheduleMode    string
)

func init() {
	uploadScheduleCmd.Flags().StringVarP(&uploadScheduleInput, "input", "i", "", "Schedule CSV to upload (required)")
	uploadScheduleCmd.Flags().StringVarP(&uploadScheduleKeysDir, "keys-dir", "k", "keys", "Directory holding the keyed-alias documents")
	uploadScheduleCmd.Flags().IntVarP(&uploadScheduleYear, "year", "y", 0, "Season the schedule belongs to (required)")
	uploadScheduleCmd.Flags().StringVarP(&uploadScheduleMode, "mode", "m", pipeline.ModeAll, `Processing mode: "all" revisits existing events, "new" skips them`)

	uploadScheduleCmd.MarkFlagRequired("input")
	uploadScheduleCmd.MarkFlagRequired("year")

	rootCmd.AddCommand(uploadScheduleCmd)
}

func runUploadSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{
		Input:   uploadScheduleInput,
		KeysDir: uploadScheduleKeysDir,
		Year:    uploadScheduleYear,
		Mode:    uploadScheduleMode,
	})
	if err != nil {
		return err
	}

	rows, err := readScheduleRows(cfg.Input)
	if err != nil {
		return err
	}

	aliases, err := loadCompetitionAliases(cfg.KeysDir)
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	stage := pipeline.NewSchedule(database, aliases, cfg.Year, cfg.Mode)
	stage.Delay = cfg.Delay()
	stage.Logf = logf

	counters, err := stage.Run(cmd.Context(), rows)
	if err != nil {
		return fmt.Errorf("failed to upload schedule: %w", err)
	}

	printer.PrintBatchSummary(fmt.Sprintf("Schedule %d", cfg.Year),
		counters.Success, counters.Existing, counters.Skipped, counters.Errors)
	return nil
}
