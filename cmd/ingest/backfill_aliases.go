package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/maintenance"
)

var backfillAliasesCmd = &cobra.Command{
	Use:   "backfill-aliases",
	Short: "Replace stored alias lists from the keyed-alias documents",
	Long:  "Replace each competition's and person's stored spelling list with the spellings in the keyed-alias documents. Keys with no matching row are reported and skipped.",
	RunE:  runBackfillAliases,
}

var (
	backfillAliasesKeysDir string
	backfillAliasesTarget  string
	backfillAliasesPreview bool
)

func init() {
	backfillAliasesCmd.Flags().StringVarP(&backfillAliasesKeysDir, "keys-dir", "k", "keys", "Directory holding the keyed-alias documents")
	backfillAliasesCmd.Flags().StringVar(&backfillAliasesTarget, "target", "both", `What to backfill: "competitions", "persons", or "both"`)
	backfillAliasesCmd.Flags().BoolVarP(&backfillAliasesPreview, "preview", "p", false, "Report intended changes without writing")

	rootCmd.AddCommand(backfillAliasesCmd)
}

func runBackfillAliases(cmd *cobra.Command, args []string) error {
	if backfillAliasesTarget != "competitions" && backfillAliasesTarget != "persons" && backfillAliasesTarget != "both" {
		return fmt.Errorf(`--target must be "competitions", "persons", or "both"`)
	}

	cfg, err := resolveConfig(config.Config{KeysDir: backfillAliasesKeysDir, Preview: backfillAliasesPreview})
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	jobs := maintenance.New(database)
	jobs.Preview = backfillAliasesPreview
	jobs.Delay = cfg.Delay()
	jobs.Logf = logf

	if backfillAliasesTarget == "competitions" || backfillAliasesTarget == "both" {
		aliases, err := loadCompetitionAliases(cfg.KeysDir)
		if err != nil {
			return err
		}
		stats, err := jobs.BackfillCompetitionAliases(cmd.Context(), aliases)
		if err != nil {
			return fmt.Errorf("failed to backfill competition aliases: %w", err)
		}
		printer.PrintBatchSummary("Competition aliases", stats.Updated, 0, stats.Skipped, stats.Errors)
	}

	if backfillAliasesTarget == "persons" || backfillAliasesTarget == "both" {
		aliases, err := loadAthleteAliases(cfg.KeysDir)
		if err != nil {
			return err
		}
		stats, err := jobs.BackfillPersonAliases(cmd.Context(), aliases)
		if err != nil {
			return fmt.Errorf("failed to backfill person aliases: %w", err)
		}
		printer.PrintBatchSummary("Person aliases", stats.Updated, 0, stats.Skipped, stats.Errors)
	}

	return nil
}
