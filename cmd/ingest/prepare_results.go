package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musclebase/ingest/internal/csvio"
	"github.com/musclebase/ingest/internal/pipeline"
)

var prepareResultsCmd = &cobra.Command{
	Use:   "prepare-results",
	Short: "Convert a historical results sheet into an upload CSV",
	Long:  "Fold the weight-class division labels of a historical results sheet into modern category types and write the CSV upload-results consumes. Rows that fail validation are skipped and counted.",
	RunE:  runPrepareResults,
}

var (
	prepareResultsInput string
	prepareResultsOut   string
	prepareResultsSex   string
)

var uploadResultsHeader = []string{
	"competition_key", "year", "athlete_name", "division", "division_subtype",
	"place", "judging_1", "judging_2", "judging_3", "judging_4", "routine", "total",
}

func init() {
	prepareResultsCmd.Flags().StringVarP(&prepareResultsInput, "input", "i", "", "Historical results CSV (required)")
	prepareResultsCmd.Flags().StringVarP(&prepareResultsOut, "out", "o", "", "Path for the upload CSV (required)")
	prepareResultsCmd.Flags().StringVar(&prepareResultsSex, "sex", "", `Sex for rows without a Sex column: "male" or "female" (required)`)

	prepareResultsCmd.MarkFlagRequired("input")
	prepareResultsCmd.MarkFlagRequired("out")
	prepareResultsCmd.MarkFlagRequired("sex")

	rootCmd.AddCommand(prepareResultsCmd)
}

func runPrepareResults(cmd *cobra.Command, args []string) error {
	if prepareResultsSex != "male" && prepareResultsSex != "female" {
		return fmt.Errorf(`--sex must be "male" or "female"`)
	}

	rows, err := readLegacyRows(prepareResultsInput, prepareResultsSex)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", prepareResultsInput, err)
	}

	var (
		records [][]string
		errors  int
	)
	for _, row := range rows {
		converted, err := pipeline.ConvertLegacyRow(row)
		if err != nil {
			logf("skipping malformed legacy row %q: %v", row.Competitor, err)
			errors++
			continue
		}
		records = append(records, []string{
			converted.CompetitionKey, fmt.Sprint(converted.Year), converted.AthleteName,
			converted.Division, converted.DivisionSubtype, converted.Place,
			converted.Judging1, converted.Judging2, converted.Judging3, converted.Judging4,
			converted.Routine, converted.Total,
		})
	}

	if err := csvio.WriteRecords(prepareResultsOut, uploadResultsHeader, records); err != nil {
		return fmt.Errorf("failed to write upload CSV: %w", err)
	}

	printer.PrintBatchSummary("Prepared results", len(records), 0, 0, errors)
	fmt.Printf("Wrote %d rows to %s\n", len(records), prepareResultsOut)
	return nil
}
