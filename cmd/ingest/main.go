// Package main provides the ingest CLI: scraping the pro schedule,
// uploading scraped datasets into the canonical store, and running the
// maintenance, priority, and audit jobs over it.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Competition data ingest pipeline",
	Long:  "Ingest scrapes the pro schedule, normalizes and uploads competition, event, division, athlete, and result data into the canonical store, and maintains the stored records.",
}

var (
	databaseURL string
	configPath  string
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print per-record progress")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
