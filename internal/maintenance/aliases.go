// Package maintenance holds the one-off cleanup and backfill jobs that
// repair canonical rows in place: alias backfills, case normalization,
// origin dedup, and missing event dates and URLs. Every job is safe to
// re-run and reports what it touched.
package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/musclebase/ingest/internal/keys"
	"github.com/musclebase/ingest/internal/schema"
)

// pageSize is how many rows paginated jobs fetch per round trip.
const pageSize = 1000

// writeDelay is the courtesy throttle between consecutive store writes.
const writeDelay = 100 * time.Millisecond

// Store is the database access the maintenance jobs need. It is
// satisfied by db.DB.
type Store interface {
	GetCompetitionByName(ctx context.Context, name string) (*schema.Competition, error)
	ListCompetitions(ctx context.Context, limit, offset int) ([]schema.Competition, error)
	UpdateCompetitionNameValues(ctx context.Context, id int64, nameValues []string) error

	GetPersonByName(ctx context.Context, name string) (*schema.Person, error)
	ListPersons(ctx context.Context, limit, offset int) ([]schema.Person, error)
	UpdatePersonNameValues(ctx context.Context, id int64, nameValues []string) error
	UpdatePersonOrigins(ctx context.Context, id int64, nationality []string, from []schema.Location) error

	GetEventByCompetitionAndYear(ctx context.Context, competitionKey string, year int) (*schema.Event, error)
	UpdateEventDates(ctx context.Context, id int64, startDate, endDate string) error
	UpdateEventURL(ctx context.Context, id int64, url string) error
}

// Jobs runs maintenance operations against the store. With Preview set
// every job reports what it would change and writes nothing.
type Jobs struct {
	store Store

	Preview bool
	Delay   time.Duration
	Logf    func(format string, args ...any)
}

// New creates a maintenance job runner.
func New(store Store) *Jobs {
	return &Jobs{store: store, Delay: writeDelay}
}

func (j *Jobs) logf(format string, args ...any) {
	if j.Logf != nil {
		j.Logf(format, args...)
	}
}

func (j *Jobs) throttle(ctx context.Context) error {
	if j.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(j.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// AliasStats reports one alias backfill run.
type AliasStats struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// BackfillCompetitionAliases sets name_values on every competition
// whose display name matches a key in the alias document. Keys with no
// matching competition are skipped.
func (j *Jobs) BackfillCompetitionAliases(ctx context.Context, aliases keys.AliasSet) (AliasStats, error) {
	var stats AliasStats

	for key, spellings := range aliases {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		comp, err := j.store.GetCompetitionByName(ctx, key)
		if err != nil {
			j.logf("error finding competition for key %s: %v", key, err)
			stats.Errors++
			continue
		}
		if comp == nil {
			j.logf("no competition found for key: %s", key)
			stats.Skipped++
			continue
		}

		if j.Preview {
			j.logf("would update competition %d (%s) with %d spellings", comp.ID, comp.Name, len(spellings))
			stats.Updated++
			continue
		}

		if err := j.store.UpdateCompetitionNameValues(ctx, comp.ID, spellings); err != nil {
			j.logf("error updating competition %d for key %s: %v", comp.ID, key, err)
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

// BackfillPersonAliases is the person-side alias backfill, matching
// document keys against person display names.
func (j *Jobs) BackfillPersonAliases(ctx context.Context, aliases keys.AliasSet) (AliasStats, error) {
	var stats AliasStats

	for key, spellings := range aliases {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		person, err := j.store.GetPersonByName(ctx, key)
		if err != nil {
			j.logf("error finding person for key %s: %v", key, err)
			stats.Errors++
			continue
		}
		if person == nil {
			j.logf("no person found for key: %s", key)
			stats.Skipped++
			continue
		}

		if j.Preview {
			j.logf("would update person %d (%s) with %d spellings", person.ID, person.Name, len(spellings))
			stats.Updated++
			continue
		}

		if err := j.store.UpdatePersonNameValues(ctx, person.ID, spellings); err != nil {
			j.logf("error updating person %d for key %s: %v", person.ID, key, err)
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

// LowercaseStats reports one name_values case-normalization run.
type LowercaseStats struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// LowercaseCompetitionNameValues rewrites every competition alias list
// to lowercase. Rows already lowercase are skipped.
func (j *Jobs) LowercaseCompetitionNameValues(ctx context.Context) (LowercaseStats, error) {
	var stats LowercaseStats

	for offset := 0; ; offset += pageSize {
		page, err := j.store.ListCompetitions(ctx, pageSize, offset)
		if err != nil {
			return stats, err
		}
		if len(page) == 0 {
			break
		}

		for _, comp := range page {
			lowered, changed := lowercaseAll(comp.NameValues)
			if !changed {
				stats.Skipped++
				continue
			}

			if j.Preview {
				j.logf("would lowercase name_values for competition %d (%s)", comp.ID, comp.Name)
				stats.Updated++
				continue
			}

			if err := j.store.UpdateCompetitionNameValues(ctx, comp.ID, lowered); err != nil {
				j.logf("error updating competition %d: %v", comp.ID, err)
				stats.Errors++
				continue
			}
			stats.Updated++
			if err := j.throttle(ctx); err != nil {
				return stats, err
			}
		}

		if len(page) < pageSize {
			break
		}
	}
	return stats, nil
}

// LowercasePersonNameValues rewrites every person alias list to
// lowercase. Rows already lowercase are skipped.
func (j *Jobs) LowercasePersonNameValues(ctx context.Context) (LowercaseStats, error) {
	var stats LowercaseStats

	for offset := 0; ; offset += pageSize {
		page, err := j.store.ListPersons(ctx, pageSize, offset)
		if err != nil {
			return stats, err
		}
		if len(page) == 0 {
			break
		}

		for _, person := range page {
			lowered, changed := lowercaseAll(person.NameValues)
			if !changed {
				stats.Skipped++
				continue
			}

			if j.Preview {
				j.logf("would lowercase name_values for person %d (%s)", person.ID, person.Name)
				stats.Updated++
				continue
			}

			if err := j.store.UpdatePersonNameValues(ctx, person.ID, lowered); err != nil {
				j.logf("error updating person %d: %v", person.ID, err)
				stats.Errors++
				continue
			}
			stats.Updated++
			if err := j.throttle(ctx); err != nil {
				return stats, err
			}
		}

		if len(page) < pageSize {
			break
		}
	}
	return stats, nil
}

// lowercaseAll lowercases each value, reporting whether anything
// actually changed.
func lowercaseAll(values []string) ([]string, bool) {
	lowered := make([]string, len(values))
	changed := false
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
		if lowered[i] != v {
			changed = true
		}
	}
	return lowered, changed
}
