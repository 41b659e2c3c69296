package maintenance

import (
	"context"

	"github.com/musclebase/ingest/internal/normalize"
)

// EventDateRow is one dated schedule entry used to backfill events.
type EventDateRow struct {
	CompetitionKey string `json:"competition_key"`
	Year           int    `json:"year"`
	Dates          string `json:"dates"`
	URL            string `json:"url"`
}

// EventStats reports one event backfill run.
type EventStats struct {
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	NotFound int `json:"not_found"`
	Errors   int `json:"errors"`
}

// BackfillEventDates fills start and end dates on events that have
// none. Events that already carry both dates are never overwritten.
func (j *Jobs) BackfillEventDates(ctx context.Context, rows []EventDateRow) (EventStats, error) {
	var stats EventStats

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		event, err := j.store.GetEventByCompetitionAndYear(ctx, row.CompetitionKey, row.Year)
		if err != nil {
			j.logf("error finding event %s %d: %v", row.CompetitionKey, row.Year, err)
			stats.Errors++
			continue
		}
		if event == nil {
			stats.NotFound++
			continue
		}
		if event.StartDate != "" && event.EndDate != "" {
			stats.Skipped++
			continue
		}

		start, end := normalize.ParseDateRange(row.Dates)
		if end == "" {
			end = start
		}
		if start == "" {
			stats.Skipped++
			continue
		}

		if j.Preview {
			j.logf("would set dates for event %s %d to %s / %s", row.CompetitionKey, row.Year, start, end)
			stats.Updated++
			continue
		}

		if err := j.store.UpdateEventDates(ctx, event.ID, start, end); err != nil {
			j.logf("error updating event %d: %v", event.ID, err)
			stats.Errors++
			continue
		}
		stats.Updated++
		if err := j.throttle(ctx); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// URLStats reports one event URL backfill run.
type URLStats struct {
	Updated  int `json:"updated"`
	NotFound int `json:"not_found"`
	NoURL    int `json:"no_url"`
	Errors   int `json:"errors"`
}

// BackfillEventURLs fills missing event URLs from a schedule document
// keyed by competition key. Existing URLs are never overwritten.
func (j *Jobs) BackfillEventURLs(ctx context.Context, year int, urls map[string]string) (URLStats, error) {
	var stats URLStats

	for key, url := range urls {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if url == "" {
			stats.NoURL++
			continue
		}

		event, err := j.store.GetEventByCompetitionAndYear(ctx, key, year)
		if err != nil {
			j.logf("error finding event %s %d: %v", key, year, err)
			stats.Errors++
			continue
		}
		if event == nil {
			stats.NotFound++
			continue
		}
		if event.URL != "" {
			continue
		}

		if j.Preview {
			j.logf("would set URL for event %s %d", key, year)
			stats.Updated++
			continue
		}

		if err := j.store.UpdateEventURL(ctx, event.ID, url); err != nil {
			j.logf("error updating event %d: %v", event.ID, err)
			stats.Errors++
			continue
		}
		stats.Updated++
		if err := j.throttle(ctx); err != nil {
			return stats, err
		}
	}
	return stats, nil
}
