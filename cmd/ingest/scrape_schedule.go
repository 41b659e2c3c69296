package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/scrape"
)

var scrapeScheduleCmd = &cobra.Command{
	Use:   "scrape-schedule",
	Short: "Scrape the pro schedule into a CSV",
	Long:  "Scrape the federation schedule page and every linked competition page, then write the flattened schedule CSV the upload commands consume.",
	RunE:  runScrapeSchedule,
}

var (
	scrapeOut     string
	scrapeURL     string
	scrapeBrowser bool
)

func init() {
	scrapeScheduleCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "Path for the schedule CSV (required)")
	scrapeScheduleCmd.Flags().StringVar(&scrapeURL, "url", scrape.DefaultScheduleURL, "Schedule page URL")
	scrapeScheduleCmd.Flags().BoolVar(&scrapeBrowser, "browser", false, "Render pages in a headless browser when plain fetches come back empty")

	scrapeScheduleCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(scrapeScheduleCmd)
}

func runScrapeSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{OutputCSV: scrapeOut})
	if err != nil {
		return err
	}

	scraper := scrape.NewScraper()
	scraper.ScheduleURL = scrapeURL
	scraper.UseBrowser = scrapeBrowser
	scraper.Verbose = verbose
	scraper.Logf = logf

	rows, err := scraper.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to scrape schedule: %w", err)
	}

	merged := scrape.MergeRows(rows)
	if len(merged) < len(rows) {
		logf("merged %d duplicate listings", len(rows)-len(merged))
	}
	rows = merged

	if err := scrape.WriteCSV(cfg.OutputCSV, rows); err != nil {
		return fmt.Errorf("failed to write schedule CSV: %w", err)
	}

	fmt.Printf("Scraped %d competitions to %s\n", len(rows), cfg.OutputCSV)
	return nil
}
