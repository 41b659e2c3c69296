package pipeline

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/musclebase/ingest/internal/normalize"
	"github.com/musclebase/ingest/internal/schema"
)

// RawEventRow is one event entry before normalization. Unlike schedule
// rows, event rows never create competitions.
type RawEventRow struct {
	CompetitionKey string `json:"competition_key" validate:"required"`
	Year           int    `json:"year" validate:"required"`
	Dates          string `json:"dates"`
	Location       string `json:"location"`
	URL            string `json:"url"`
}

// Validate checks the raw row for required fields.
func (r *RawEventRow) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// EventRecord is a parsed event row ready for upload.
type EventRecord struct {
	CompetitionKey string
	Event          schema.Event
}

// ParseEventRow validates and normalizes one event row.
func ParseEventRow(r RawEventRow) (*EventRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	start, end := normalize.ParseDateRange(r.Dates)
	if end == "" {
		end = start
	}

	loc := normalize.ParseLocation(r.Location)
	loc.State = normalize.USState(loc.State)
	loc.Country = normalize.Country(loc.Country)

	rec := &EventRecord{
		CompetitionKey: r.CompetitionKey,
		Event: schema.Event{
			Year:      r.Year,
			StartDate: start,
			EndDate:   end,
			URL:       r.URL,
		},
	}
	if !loc.IsZero() {
		rec.Event.Location = &loc
	}
	return rec, nil
}

// Events is the upload stage for standalone event rows. Competitions
// must already exist; one event per competition and year.
type Events struct {
	store Store

	Delay time.Duration
	Logf  func(format string, args ...any)
}

// NewEvents creates an events stage for one batch run.
func NewEvents(store Store) *Events {
	return &Events{store: store, Delay: writeDelay}
}

func (s *Events) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// Run processes every row and returns the batch counters.
func (s *Events) Run(ctx context.Context, rows []RawEventRow) (Counters, error) {
	var c Counters

	for _, raw := range rows {
		if err := ctx.Err(); err != nil {
			return c, err
		}

		rec, err := ParseEventRow(raw)
		if err != nil {
			s.logf("skipping malformed event row %q: %v", raw.CompetitionKey, err)
			c.Errors++
			continue
		}

		if err := s.processRecord(ctx, rec, &c); err != nil {
			s.logf("error processing event %s %d: %v", rec.CompetitionKey, rec.Event.Year, err)
			c.Errors++
		}
	}
	return c, nil
}

func (s *Events) processRecord(ctx context.Context, rec *EventRecord, c *Counters) error {
	comp, err := s.store.GetCompetitionByNameKey(ctx, rec.CompetitionKey)
	if err != nil {
		return err
	}
	if comp == nil {
		s.logf("skipping event for unknown competition %s", rec.CompetitionKey)
		c.Skipped++
		return nil
	}

	existing, err := s.store.GetEventByCompetitionID(ctx, comp.ID, rec.Event.Year)
	if err != nil {
		return err
	}
	if existing != nil {
		c.Existing++
		return nil
	}

	event := rec.Event
	event.CompetitionID = comp.ID
	if _, err := s.store.CreateEvent(ctx, &event); err != nil {
		return err
	}
	c.Success++
	return throttle(ctx, s.Delay)
}
