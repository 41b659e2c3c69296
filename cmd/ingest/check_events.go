package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/csvio"
	"github.com/musclebase/ingest/internal/report"
)

var checkEventsCmd = &cobra.Command{
	Use:   "check-events",
	Short: "Report event locations with no background image",
	Long:  "Audit every event's location against the location assets and write a JSON report of the locations with no image at any level, most-referenced locations first.",
	RunE:  runCheckEvents,
}

var (
	checkEventsAssetsDir  string
	checkEventsReportsDir string
)

func init() {
	checkEventsCmd.Flags().StringVar(&checkEventsAssetsDir, "assets-dir", "assets", "Directory holding the background image assets")
	checkEventsCmd.Flags().StringVarP(&checkEventsReportsDir, "reports-dir", "r", "reports", "Directory for the generated report")

	rootCmd.AddCommand(checkEventsCmd)
}

func runCheckEvents(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{ReportsDir: checkEventsReportsDir})
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	checks := report.New(database, report.DirChecker{Root: checkEventsAssetsDir})
	checks.Logf = logf

	locationReport, err := checks.MissingLocations(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to check locations: %w", err)
	}

	path := filepath.Join(cfg.ReportsDir, "missing_location_names.json")
	if err := csvio.WriteJSON(path, locationReport); err != nil {
		return err
	}

	labels := make([]string, len(locationReport.Locations))
	counts := make([]int, len(locationReport.Locations))
	for i, location := range locationReport.Locations {
		labels[i] = fmt.Sprintf("%s (%s)", location.LocationName, location.LocationType)
		counts[i] = location.Count
	}
	printer.PrintMissingCounts("Missing locations", labels, counts)

	fmt.Printf("Report written to %s\n", path)
	return nil
}
