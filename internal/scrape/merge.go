package scrape

import (
	"strings"

	"github.com/musclebase/ingest/internal/normalize"
)

// MergeRows collapses duplicate schedule listings for the same
// competition into one row. The schedule page lists some contests twice,
// once per qualifier block, with the divisions split across the
// listings. Divisions are unioned; for every other column the first
// populated value wins. First-seen order is preserved.
func MergeRows(rows []Row) []Row {
	var (
		merged []Row
		index  = make(map[string]int)
	)
	for _, row := range rows {
		key := normalize.NameKey(row.Name)
		at, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, row)
			continue
		}
		merged[at] = mergeRow(merged[at], row)
	}
	return merged
}

func mergeRow(base, dup Row) Row {
	base.Divisions = unionDivisions(base.Divisions, dup.Divisions)
	fillEmpty(&base.StartDate, dup.StartDate)
	fillEmpty(&base.EndDate, dup.EndDate)
	fillEmpty(&base.City, dup.City)
	fillEmpty(&base.State, dup.State)
	fillEmpty(&base.Country, dup.Country)
	fillEmpty(&base.DivisionType, dup.DivisionType)
	fillEmpty(&base.Level, dup.Level)
	fillEmpty(&base.PromoterName, dup.PromoterName)
	fillEmpty(&base.PromoterEmail, dup.PromoterEmail)
	fillEmpty(&base.PromoterWebsite, dup.PromoterWebsite)
	fillEmpty(&base.Description, dup.Description)
	fillEmpty(&base.URL, dup.URL)
	fillEmpty(&base.Source, dup.Source)
	return base
}

func fillEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// unionDivisions joins two comma-separated division lists, dropping
// duplicates and keeping first-seen order.
func unionDivisions(a, b string) string {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	for _, list := range []string{a, b} {
		for _, division := range strings.Split(list, ",") {
			division = strings.TrimSpace(division)
			if division == "" || seen[strings.ToLower(division)] {
				continue
			}
			seen[strings.ToLower(division)] = true
			out = append(out, division)
		}
	}
	return strings.Join(out, ", ")
}
