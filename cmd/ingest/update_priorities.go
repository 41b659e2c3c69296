package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/priority"
)

var updatePrioritiesCmd = &cobra.Command{
	Use:   "update-priorities",
	Short: "Re-derive person and competition priorities",
	Long:  "Re-derive every person's display priority from their placement history and every competition's from its event count. Unchanged priorities are not rewritten.",
	RunE:  runUpdatePriorities,
}

var (
	updatePrioritiesTarget  string
	updatePrioritiesPreview bool
)

func init() {
	updatePrioritiesCmd.Flags().StringVar(&updatePrioritiesTarget, "target", "both", `What to update: "persons", "competitions", or "both"`)
	updatePrioritiesCmd.Flags().BoolVarP(&updatePrioritiesPreview, "preview", "p", false, "Report intended changes without writing")

	rootCmd.AddCommand(updatePrioritiesCmd)
}

func runUpdatePriorities(cmd *cobra.Command, args []string) error {
	if updatePrioritiesTarget != "persons" && updatePrioritiesTarget != "competitions" && updatePrioritiesTarget != "both" {
		return fmt.Errorf(`--target must be "persons", "competitions", or "both"`)
	}

	cfg, err := resolveConfig(config.Config{Preview: updatePrioritiesPreview})
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	runner := priority.NewRunner(database, priority.DefaultConfig())
	runner.Preview = updatePrioritiesPreview
	runner.Delay = cfg.Delay()
	runner.Logf = logf

	if updatePrioritiesTarget == "persons" || updatePrioritiesTarget == "both" {
		stats, err := runner.UpdatePersonPriorities(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to update person priorities: %w", err)
		}
		printer.PrintBatchSummary("Person priorities", stats.Updated, stats.Processed-stats.Updated-stats.Errors, 0, stats.Errors)
	}

	if updatePrioritiesTarget == "competitions" || updatePrioritiesTarget == "both" {
		stats, err := runner.UpdateCompetitionPriorities(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to update competition priorities: %w", err)
		}
		printer.PrintBatchSummary("Competition priorities", stats.Updated, stats.Processed-stats.Updated-stats.Errors, 0, stats.Errors)
	}

	return nil
}
