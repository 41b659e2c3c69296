// Package report builds the JSON audit documents that flag gaps in the
// stored data: countries whose persons have no flag image and event
// locations with no background image at any level.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/musclebase/ingest/internal/schema"
)

// pageSize is how many rows the reports fetch per round trip.
const pageSize = 1000

// Store is the read access the reports need. It is satisfied by db.DB.
type Store interface {
	ListPersons(ctx context.Context, limit, offset int) ([]schema.Person, error)
	ListEvents(ctx context.Context, limit, offset int) ([]schema.Event, error)
}

// Checks runs the audit reports against the store and an image source.
type Checks struct {
	store  Store
	images ImageChecker

	Now  func() time.Time
	Logf func(format string, args ...any)
}

// New creates a report runner.
func New(store Store, images ImageChecker) *Checks {
	return &Checks{store: store, images: images, Now: time.Now}
}

func (c *Checks) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

func (c *Checks) timestamp() string {
	return c.Now().UTC().Format(time.RFC3339)
}

// MissingFlag is one country with no flag image, with the persons
// holding that nationality.
type MissingFlag struct {
	Country   string  `json:"country"`
	PersonIDs []int64 `json:"person_ids"`
	Count     int     `json:"count"`
}

// FlagReport lists every nationality in the person table that has no
// matching flag image, most-affected countries first.
type FlagReport struct {
	RunID             string        `json:"run_id"`
	Timestamp         string        `json:"timestamp"`
	TotalMissingFlags int           `json:"total_missing_flags"`
	Countries         []MissingFlag `json:"countries"`
}

// MissingFlags audits person nationalities against the flag assets.
func (c *Checks) MissingFlags(ctx context.Context) (*FlagReport, error) {
	byCountry := make(map[string][]int64)

	for offset := 0; ; offset += pageSize {
		page, err := c.store.ListPersons(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for _, person := range page {
			for _, nationality := range person.Nationality {
				if nationality == "" {
					continue
				}
				byCountry[nationality] = append(byCountry[nationality], person.ID)
			}
		}
		if len(page) < pageSize {
			break
		}
	}

	report := &FlagReport{
		RunID:     uuid.NewString(),
		Timestamp: c.timestamp(),
		Countries: []MissingFlag{},
	}
	for country, personIDs := range byCountry {
		hasFlag, err := c.images.HasImage("flags", country)
		if err != nil {
			return nil, err
		}
		if hasFlag {
			continue
		}
		c.logf("missing flag image for: %s", country)
		report.Countries = append(report.Countries, MissingFlag{
			Country:   country,
			PersonIDs: personIDs,
			Count:     len(personIDs),
		})
	}

	sortByCount(report.Countries, func(m MissingFlag) (int, string) { return m.Count, m.Country })
	report.TotalMissingFlags = len(report.Countries)
	return report, nil
}

// MissingLocation is one location name with no background image, with
// the events referencing it.
type MissingLocation struct {
	LocationName string  `json:"location_name"`
	LocationType string  `json:"location_type"`
	EventIDs     []int64 `json:"event_ids"`
	Count        int     `json:"count"`
}

// LocationFailure is an event whose location has no image at any level.
type LocationFailure struct {
	EventID  int64           `json:"event_id"`
	Location schema.Location `json:"location"`
}

// LocationReport lists event locations with no background image at any
// level, most-referenced locations first.
type LocationReport struct {
	RunID                 string            `json:"run_id"`
	Timestamp             string            `json:"timestamp"`
	TotalMissingLocations int               `json:"total_missing_locations"`
	TotalFailures         int               `json:"total_failures"`
	Locations             []MissingLocation `json:"locations"`
	Failures              []LocationFailure `json:"failures"`
}

// MissingLocations audits event locations against the location assets.
// An event counts as a failure only when none of its city, state, or
// country has an image.
func (c *Checks) MissingLocations(ctx context.Context) (*LocationReport, error) {
	type tally struct {
		locationType string
		eventIDs     []int64
	}
	byName := make(map[string]*tally)

	report := &LocationReport{
		RunID:     uuid.NewString(),
		Timestamp: c.timestamp(),
		Locations: []MissingLocation{},
		Failures:  []LocationFailure{},
	}

	for offset := 0; ; offset += pageSize {
		page, err := c.store.ListEvents(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, event := range page {
			if event.Location == nil || event.Location.IsZero() {
				continue
			}

			levels := []struct {
				name         string
				locationType string
			}{
				{event.Location.City, "city"},
				{event.Location.State, "state"},
				{event.Location.Country, "country"},
			}

			hasAnyImage := false
			var missing []struct {
				name         string
				locationType string
			}
			for _, level := range levels {
				if level.name == "" {
					continue
				}
				hasImage, err := c.images.HasImage("locations", level.name)
				if err != nil {
					return nil, err
				}
				if hasImage {
					hasAnyImage = true
				} else {
					missing = append(missing, level)
				}
			}
			if hasAnyImage {
				continue
			}

			c.logf("no location image at any level for event %d", event.ID)
			report.Failures = append(report.Failures, LocationFailure{
				EventID:  event.ID,
				Location: *event.Location,
			})
			for _, level := range missing {
				entry := byName[level.name]
				if entry == nil {
					entry = &tally{locationType: level.locationType}
					byName[level.name] = entry
				}
				entry.eventIDs = append(entry.eventIDs, event.ID)
			}
		}

		if len(page) < pageSize {
			break
		}
	}

	for name, entry := range byName {
		report.Locations = append(report.Locations, MissingLocation{
			LocationName: name,
			LocationType: entry.locationType,
			EventIDs:     entry.eventIDs,
			Count:        len(entry.eventIDs),
		})
	}
	sortByCount(report.Locations, func(m MissingLocation) (int, string) { return m.Count, m.LocationName })
	report.TotalMissingLocations = len(report.Locations)
	report.TotalFailures = len(report.Failures)
	return report, nil
}

// sortByCount orders entries by count descending, breaking ties by
// name so output is stable across runs.
func sortByCount[T any](items []T, key func(T) (int, string)) {
	sort.Slice(items, func(i, j int) bool {
		ci, ni := key(items[i])
		cj, nj := key(items[j])
		if ci != cj {
			return ci > cj
		}
		return ni < nj
	})
}
