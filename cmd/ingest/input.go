package main

import (
	"strconv"

	"github.com/musclebase/ingest/internal/csvio"
	"github.com/musclebase/ingest/internal/pipeline"
)

// readScheduleRows reads a scraped schedule CSV into raw schedule rows.
// The columns match the scraper's output header.
func readScheduleRows(path string) ([]pipeline.RawScheduleRow, error) {
	records, err := csvio.ReadRecords(path)
	if err != nil {
		return nil, err
	}

	rows := make([]pipeline.RawScheduleRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, pipeline.RawScheduleRow{
			Name:             rec["Competition Name"],
			CompetitionKey:   rec["Competition Key"],
			StartDate:        rec["Start Date"],
			EndDate:          rec["End Date"],
			Dates:            rec["Dates"],
			LocationCity:     rec["Location City"],
			LocationState:    rec["Location State"],
			LocationCountry:  rec["Location Country"],
			Location:         rec["Location"],
			Divisions:        rec["Divisions"],
			DivisionType:     rec["Division Type"],
			CompetitionLevel: rec["Competition Level"],
			PromoterName:     rec["Promoter Name"],
			PromoterEmail:    rec["Promoter Email"],
			PromoterWebsite:  rec["Promoter Website"],
			Description:      rec["Description"],
			URL:              rec["Competition URL"],
			Source:           rec["Source"],
		})
	}
	return rows, nil
}

// readResultRows reads a results CSV into raw result rows.
func readResultRows(path string) ([]pipeline.RawResultRow, error) {
	records, err := csvio.ReadRecords(path)
	if err != nil {
		return nil, err
	}

	rows := make([]pipeline.RawResultRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, pipeline.RawResultRow{
			CompetitionKey:  rec["competition_key"],
			Year:            atoi(rec["year"]),
			AthleteName:     rec["athlete_name"],
			Division:        rec["division"],
			DivisionSubtype: rec["division_subtype"],
			Place:           rec["place"],
			Judging1:        rec["judging_1"],
			Judging2:        rec["judging_2"],
			Judging3:        rec["judging_3"],
			Judging4:        rec["judging_4"],
			Routine:         rec["routine"],
			Total:           rec["total"],
		})
	}
	return rows, nil
}

// readAthleteRows reads an athletes CSV into raw athlete rows.
func readAthleteRows(path string) ([]pipeline.RawAthleteRow, error) {
	records, err := csvio.ReadRecords(path)
	if err != nil {
		return nil, err
	}

	rows := make([]pipeline.RawAthleteRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, pipeline.RawAthleteRow{
			Name:         rec["name"],
			NameKey:      rec["name_key"],
			NameShort:    rec["name_short"],
			Sex:          rec["sex"],
			Nickname:     rec["nickname"],
			LocationJSON: rec["location"],
		})
	}
	return rows, nil
}

// readEventRows reads an events CSV into raw event rows.
func readEventRows(path string) ([]pipeline.RawEventRow, error) {
	records, err := csvio.ReadRecords(path)
	if err != nil {
		return nil, err
	}

	rows := make([]pipeline.RawEventRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, pipeline.RawEventRow{
			CompetitionKey: rec["competition_key"],
			Year:           atoi(rec["year"]),
			Dates:          rec["dates"],
			Location:       rec["location"],
			URL:            rec["url"],
		})
	}
	return rows, nil
}

// readLegacyRows reads a historical results CSV into legacy rows. The
// sheets carry Title Case headers and usually imply sex by filename, so
// a missing Sex column falls back to the given default.
func readLegacyRows(path, defaultSex string) ([]pipeline.LegacyResultRow, error) {
	records, err := csvio.ReadRecords(path)
	if err != nil {
		return nil, err
	}

	rows := make([]pipeline.LegacyResultRow, 0, len(records))
	for _, rec := range records {
		sex := rec["Sex"]
		if sex == "" {
			sex = defaultSex
		}
		rows = append(rows, pipeline.LegacyResultRow{
			Competition: rec["Competition"],
			Year:        atoi(rec["Year"]),
			Sex:         sex,
			Competitor:  rec["Competitor"],
			Division:    rec["Division"],
			Place:       rec["Place"],
			Judging:     rec["Judging"],
			Finals:      rec["Finals"],
			Routine:     rec["Routine"],
			Total:       rec["Total"],
		})
	}
	return rows, nil
}

// atoi parses a year-like cell, treating anything unparseable as zero
// so row validation rejects it with context.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
