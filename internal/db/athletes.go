package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/musclebase/ingest/internal/schema"
)

// GetAthleteByPersonNameKey retrieves the athlete role of the person with
// the given name key. Returns (nil, nil) when the person does not exist
// or has no athlete record.
func (db *DB) GetAthleteByPersonNameKey(ctx context.Context, nameKey string) (*schema.Athlete, error) {
	var a schema.Athlete
	err := db.pool.QueryRow(ctx,
		`SELECT a.id, a.person_id, COALESCE(a.active, true), COALESCE(a.nickname, '')
		 FROM athlete a
		 JOIN person p ON p.id = a.person_id
		 WHERE p.name_key = $1`,
		nameKey,
	).Scan(&a.ID, &a.PersonID, &a.Active, &a.Nickname)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get athlete for person %s: %w", nameKey, err)
	}
	return &a, nil
}

// GetAthleteByPersonID retrieves the athlete record for a person ID.
// Returns (nil, nil) when the person has no athlete record.
func (db *DB) GetAthleteByPersonID(ctx context.Context, personID int64) (*schema.Athlete, error) {
	var a schema.Athlete
	err := db.pool.QueryRow(ctx,
		`SELECT id, person_id, COALESCE(active, true), COALESCE(nickname, '')
		 FROM athlete WHERE person_id = $1`,
		personID,
	).Scan(&a.ID, &a.PersonID, &a.Active, &a.Nickname)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get athlete for person %d: %w", personID, err)
	}
	return &a, nil
}

// CreateAthlete inserts an athlete record and returns it with its ID.
func (db *DB) CreateAthlete(ctx context.Context, a *schema.Athlete) (*schema.Athlete, error) {
	created := *a
	err := db.pool.QueryRow(ctx,
		`INSERT INTO athlete (person_id, active, nickname)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id`,
		a.PersonID, a.Active, a.Nickname,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create athlete for person %d: %w", a.PersonID, err)
	}
	return &created, nil
}
