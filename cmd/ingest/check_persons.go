package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/csvio"
	"github.com/musclebase/ingest/internal/report"
)

var checkPersonsCmd = &cobra.Command{
	Use:   "check-persons",
	Short: "Report nationalities with no flag image",
	Long:  "Audit every person's nationalities against the flag assets and write a JSON report of the countries with no flag image, most-affected countries first.",
	RunE:  runCheckPersons,
}

var (
	checkPersonsAssetsDir  string
	checkPersonsReportsDir string
)

func init() {
	checkPersonsCmd.Flags().StringVar(&checkPersonsAssetsDir, "assets-dir", "assets", "Directory holding the background image assets")
	checkPersonsCmd.Flags().StringVarP(&checkPersonsReportsDir, "reports-dir", "r", "reports", "Directory for the generated report")

	rootCmd.AddCommand(checkPersonsCmd)
}

func runCheckPersons(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{ReportsDir: checkPersonsReportsDir})
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	checks := report.New(database, report.DirChecker{Root: checkPersonsAssetsDir})
	checks.Logf = logf

	flagReport, err := checks.MissingFlags(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to check flags: %w", err)
	}

	path := filepath.Join(cfg.ReportsDir, "missing_flag_countries.json")
	if err := csvio.WriteJSON(path, flagReport); err != nil {
		return err
	}

	labels := make([]string, len(flagReport.Countries))
	counts := make([]int, len(flagReport.Countries))
	for i, country := range flagReport.Countries {
		labels[i] = country.Country
		counts[i] = country.Count
	}
	printer.PrintMissingCounts("Missing flags", labels, counts)

	fmt.Printf("Report written to %s\n", path)
	return nil
}
