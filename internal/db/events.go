package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/musclebase/ingest/internal/schema"
)

func scanEvent(row pgx.Row) (*schema.Event, error) {
	var (
		e            schema.Event
		startDate    *string
		endDate      *string
		locationJSON []byte
	)
	err := row.Scan(&e.ID, &e.CompetitionID, &e.Year, &startDate, &endDate, &locationJSON,
		&e.PromoterName, &e.PromoterEmail, &e.PromoterWebsite, &e.URL)
	if err != nil {
		return nil, err
	}
	if startDate != nil {
		e.StartDate = *startDate
	}
	if endDate != nil {
		e.EndDate = *endDate
	}
	if len(locationJSON) > 0 {
		var loc schema.Location
		if err := json.Unmarshal(locationJSON, &loc); err == nil && !loc.IsZero() {
			e.Location = &loc
		}
	}
	return &e, nil
}

const eventColumns = `e.id, e.competition_id, e.year, e.start_date, e.end_date, e.location,
	COALESCE(e.promoter_name, ''), COALESCE(e.promoter_email, ''), COALESCE(e.promoter_website, ''), COALESCE(e.url, '')`

// GetEventByCompetitionAndYear retrieves the event for a competition key
// and year. Returns (nil, nil) when no such event exists.
func (db *DB) GetEventByCompetitionAndYear(ctx context.Context, competitionKey string, year int) (*schema.Event, error) {
	e, err := scanEvent(db.pool.QueryRow(ctx,
		`SELECT `+eventColumns+`
		 FROM event e
		 JOIN competition c ON c.id = e.competition_id
		 WHERE c.name_key = $1 AND e.year = $2`,
		competitionKey, year,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event for %s/%d: %w", competitionKey, year, err)
	}
	return e, nil
}

// GetEventByCompetitionID retrieves the event for a competition ID and
// year. Returns (nil, nil) when no such event exists.
func (db *DB) GetEventByCompetitionID(ctx context.Context, competitionID int64, year int) (*schema.Event, error) {
	e, err := scanEvent(db.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM event e WHERE e.competition_id = $1 AND e.year = $2`,
		competitionID, year,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event for competition %d year %d: %w", competitionID, year, err)
	}
	return e, nil
}

// CreateEvent inserts an event and returns it with its assigned ID.
func (db *DB) CreateEvent(ctx context.Context, e *schema.Event) (*schema.Event, error) {
	var locationJSON []byte
	if e.Location != nil && !e.Location.IsZero() {
		var err error
		locationJSON, err = json.Marshal(e.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event location: %w", err)
		}
	}

	created := *e
	err := db.pool.QueryRow(ctx,
		`INSERT INTO event (competition_id, year, start_date, end_date, location,
		                    promoter_name, promoter_email, promoter_website, url)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
		 RETURNING id`,
		e.CompetitionID, e.Year, e.StartDate, e.EndDate, locationJSON,
		e.PromoterName, e.PromoterEmail, e.PromoterWebsite, e.URL,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create event for competition %d: %w", e.CompetitionID, err)
	}
	return &created, nil
}

// UpdateEventDates sets an event's start and end dates.
func (db *DB) UpdateEventDates(ctx context.Context, id int64, startDate, endDate string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE event SET start_date = NULLIF($1, ''), end_date = NULLIF($2, '') WHERE id = $3`,
		startDate, endDate, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update event %d dates: %w", id, err)
	}
	return nil
}

// UpdateEventLocation sets an event's location.
func (db *DB) UpdateEventLocation(ctx context.Context, id int64, loc *schema.Location) error {
	var locationJSON []byte
	if loc != nil && !loc.IsZero() {
		var err error
		locationJSON, err = json.Marshal(loc)
		if err != nil {
			return fmt.Errorf("failed to marshal event location: %w", err)
		}
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE event SET location = $1 WHERE id = $2`,
		locationJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update event %d location: %w", id, err)
	}
	return nil
}

// UpdateEventURL sets an event's source URL.
func (db *DB) UpdateEventURL(ctx context.Context, id int64, url string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE event SET url = NULLIF($1, '') WHERE id = $2`,
		url, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update event %d url: %w", id, err)
	}
	return nil
}

// ListEvents retrieves a page of events ordered by ID.
func (db *DB) ListEvents(ctx context.Context, limit, offset int) ([]schema.Event, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM event e ORDER BY e.id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []schema.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, nil
}
