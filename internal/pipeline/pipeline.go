// Package pipeline implements the deduplicating upsert stages that move
// scraped schedule, result, and athlete records into the canonical
// store. Every record walks the same path: parse, normalize, resolve
// parents, check the dedup key, then create or skip. No record failure
// aborts a batch.
package pipeline

import (
	"context"
	"time"

	"github.com/musclebase/ingest/internal/category"
	"github.com/musclebase/ingest/internal/identity"
	"github.com/musclebase/ingest/internal/schema"
)

// Processing modes. ModeNew skips records whose target row already
// exists without logging; ModeAll logs them as existing.
const (
	ModeAll = "all"
	ModeNew = "new"
)

// writeDelay is the courtesy throttle between consecutive store writes.
const writeDelay = 100 * time.Millisecond

// Store is the canonical-store access the upload stages need. It is
// satisfied by db.DB.
type Store interface {
	identity.CompetitionStore
	identity.PersonStore
	category.Store

	GetEventByCompetitionAndYear(ctx context.Context, competitionKey string, year int) (*schema.Event, error)
	GetEventByCompetitionID(ctx context.Context, competitionID int64, year int) (*schema.Event, error)
	CreateEvent(ctx context.Context, e *schema.Event) (*schema.Event, error)
	UpdateEventDates(ctx context.Context, id int64, startDate, endDate string) error
	UpdateEventLocation(ctx context.Context, id int64, loc *schema.Location) error

	GetDivisionByEventAndCategory(ctx context.Context, eventID, categoryID int64) (*schema.Division, error)
	CreateDivision(ctx context.Context, d *schema.Division) (*schema.Division, error)

	CreatePerson(ctx context.Context, p *schema.Person) (*schema.Person, error)
	GetAthleteByPersonNameKey(ctx context.Context, nameKey string) (*schema.Athlete, error)
	GetAthleteByPersonID(ctx context.Context, personID int64) (*schema.Athlete, error)
	CreateAthlete(ctx context.Context, a *schema.Athlete) (*schema.Athlete, error)

	GetResultByAthleteAndDivision(ctx context.Context, athleteID, divisionID int64) (*schema.Result, error)
	CreateResult(ctx context.Context, r *schema.Result) (*schema.Result, error)
}

// Counters are the observable output of a batch run.
type Counters struct {
	Success  int `json:"success"`
	Existing int `json:"existing"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// Add accumulates another stage's counters.
func (c *Counters) Add(other Counters) {
	c.Success += other.Success
	c.Existing += other.Existing
	c.Skipped += other.Skipped
	c.Errors += other.Errors
}

// throttle sleeps the courtesy delay, returning early if the context
// is cancelled.
func throttle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
