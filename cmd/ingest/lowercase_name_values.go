package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/maintenance"
)

var lowercaseNameValuesCmd = &cobra.Command{
	Use:   "lowercase-name-values",
	Short: "Lowercase every stored alias list",
	Long:  "Rewrite every competition's and person's stored spelling list to lowercase so alias matching stays case-insensitive. Rows already lowercase are skipped.",
	RunE:  runLowercaseNameValues,
}

var (
	lowercaseNameValuesTarget  string
	lowercaseNameValuesPreview bool
)

func init() {
	lowercaseNameValuesCmd.Flags().StringVar(&lowercaseNameValuesTarget, "target", "both", `What to rewrite: "competitions", "persons", or "both"`)
	lowercaseNameValuesCmd.Flags().BoolVarP(&lowercaseNameValuesPreview, "preview", "p", false, "Report intended changes without writing")

	rootCmd.AddCommand(lowercaseNameValuesCmd)
}

func runLowercaseNameValues(cmd *cobra.Command, args []string) error {
	if lowercaseNameValuesTarget != "competitions" && lowercaseNameValuesTarget != "persons" && lowercaseNameValuesTarget != "both" {
		return fmt.Errorf(`--target must be "competitions", "persons", or "both"`)
	}

	cfg, err := resolveConfig(config.Config{Preview: lowercaseNameValuesPreview})
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	jobs := maintenance.New(database)
	jobs.Preview = lowercaseNameValuesPreview
	jobs.Delay = cfg.Delay()
	jobs.Logf = logf

	if lowercaseNameValuesTarget == "competitions" || lowercaseNameValuesTarget == "both" {
		stats, err := jobs.LowercaseCompetitionNameValues(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to lowercase competition name values: %w", err)
		}
		printer.PrintBatchSummary("Competition name values", stats.Updated, stats.Skipped, 0, stats.Errors)
	}

	if lowercaseNameValuesTarget == "persons" || lowercaseNameValuesTarget == "both" {
		stats, err := jobs.LowercasePersonNameValues(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to lowercase person name values: %w", err)
		}
		printer.PrintBatchSummary("Person name values", stats.Updated, stats.Skipped, 0, stats.Errors)
	}

	return nil
}
