package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/maintenance"
)

var cleanPersonsCmd = &cobra.Command{
	Use:   "clean-persons",
	Short: "Normalize stored person nationality and origin data",
	Long:  "Normalize and deduplicate every person's nationality and origin lists in place. Persons whose lists are already clean are left untouched.",
	RunE:  runCleanPersons,
}

var cleanPersonsPreview bool

func init() {
	cleanPersonsCmd.Flags().BoolVarP(&cleanPersonsPreview, "preview", "p", false, "Report intended changes without writing")

	rootCmd.AddCommand(cleanPersonsCmd)
}

func runCleanPersons(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{Preview: cleanPersonsPreview})
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	jobs := maintenance.New(database)
	jobs.Preview = cleanPersonsPreview
	jobs.Delay = cfg.Delay()
	jobs.Logf = logf

	stats, err := jobs.CleanPersonOrigins(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to clean person origins: %w", err)
	}

	fmt.Println("=== FINAL RESULTS ===")
	fmt.Printf("Processed:          %d\n", stats.Processed)
	fmt.Printf("Updated:            %d\n", stats.Updated)
	fmt.Printf("Nationality fixed:  %d\n", stats.NationalityCleaned)
	fmt.Printf("Origins fixed:      %d\n", stats.FromCleaned)
	fmt.Printf("Duplicates removed: %d\n", stats.DuplicatesRemoved)
	fmt.Printf("Errors:             %d\n", stats.Errors)
	return nil
}
