package priority

import (
	"context"
	"time"

	"github.com/musclebase/ingest/internal/schema"
)

// pageSize is how many rows the batch runner fetches per round trip.
const pageSize = 1000

// writeDelay is the courtesy throttle between consecutive store writes.
const writeDelay = 100 * time.Millisecond

// Store is the database access the priority runner needs. It is
// satisfied by db.DB.
type Store interface {
	ListPersons(ctx context.Context, limit, offset int) ([]schema.Person, error)
	ListPlacementsForPerson(ctx context.Context, personID int64) ([]schema.Placement, error)
	UpdatePersonPriority(ctx context.Context, id int64, priority int) error

	ListCompetitions(ctx context.Context, limit, offset int) ([]schema.Competition, error)
	CountEventsForCompetition(ctx context.Context, competitionID int64) (int, error)
	UpdateCompetitionPriority(ctx context.Context, id int64, priority int) error
}

// Stats reports one priority derivation run.
type Stats struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Errors    int `json:"errors"`
}

// Runner re-derives priorities over the whole store. With Preview set
// it reports what it would change and writes nothing.
type Runner struct {
	store Store
	cfg   Config

	Preview bool
	Delay   time.Duration
	Logf    func(format string, args ...any)
}

// NewRunner creates a priority runner with the given thresholds.
func NewRunner(store Store, cfg Config) *Runner {
	return &Runner{store: store, cfg: cfg, Delay: writeDelay}
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

func (r *Runner) throttle(ctx context.Context) error {
	if r.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UpdatePersonPriorities re-derives every person's priority from their
// placement history. Unchanged priorities are not rewritten.
func (r *Runner) UpdatePersonPriorities(ctx context.Context) (Stats, error) {
	var stats Stats

	for offset := 0; ; offset += pageSize {
		page, err := r.store.ListPersons(ctx, pageSize, offset)
		if err != nil {
			return stats, err
		}
		if len(page) == 0 {
			break
		}

		for _, person := range page {
			stats.Processed++

			placements, err := r.store.ListPlacementsForPerson(ctx, person.ID)
			if err != nil {
				r.logf("error loading placements for person %d: %v", person.ID, err)
				stats.Errors++
				continue
			}

			priority := PersonPriority(placements, r.cfg)
			if priority == person.Priority {
				continue
			}

			if r.Preview {
				r.logf("would set priority %d for person %d (%s)", priority, person.ID, person.Name)
				stats.Updated++
				continue
			}

			if err := r.store.UpdatePersonPriority(ctx, person.ID, priority); err != nil {
				r.logf("error updating person %d: %v", person.ID, err)
				stats.Errors++
				continue
			}
			stats.Updated++
			if err := r.throttle(ctx); err != nil {
				return stats, err
			}
		}

		if len(page) < pageSize {
			break
		}
	}
	return stats, nil
}

// UpdateCompetitionPriorities re-derives every competition's priority
// from its event count. Unchanged priorities are not rewritten.
func (r *Runner) UpdateCompetitionPriorities(ctx context.Context) (Stats, error) {
	var stats Stats

	for offset := 0; ; offset += pageSize {
		page, err := r.store.ListCompetitions(ctx, pageSize, offset)
		if err != nil {
			return stats, err
		}
		if len(page) == 0 {
			break
		}

		for _, comp := range page {
			stats.Processed++

			eventCount, err := r.store.CountEventsForCompetition(ctx, comp.ID)
			if err != nil {
				r.logf("error counting events for competition %d: %v", comp.ID, err)
				stats.Errors++
				continue
			}

			priority := CompetitionPriority(comp.NameKey, eventCount, r.cfg)
			if priority == comp.Priority {
				continue
			}

			if r.Preview {
				r.logf("would set priority %d for competition %d (%s)", priority, comp.ID, comp.Name)
				stats.Updated++
				continue
			}

			if err := r.store.UpdateCompetitionPriority(ctx, comp.ID, priority); err != nil {
				r.logf("error updating competition %d: %v", comp.ID, err)
				stats.Errors++
				continue
			}
			stats.Updated++
			if err := r.throttle(ctx); err != nil {
				return stats, err
			}
		}

		if len(page) < pageSize {
			break
		}
	}
	return stats, nil
}
