package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/musclebase/ingest/internal/schema"
)

// GetResultByAthleteAndDivision retrieves the result for an (athlete,
// division) pair, the result dedup key. Returns (nil, nil) when the
// athlete has no result in the division.
func (db *DB) GetResultByAthleteAndDivision(ctx context.Context, athleteID, divisionID int64) (*schema.Result, error) {
	var r schema.Result
	err := db.pool.QueryRow(ctx,
		`SELECT id, athlete_id, division_id, judging_1, judging_2, judging_3, judging_4, routine, total, place
		 FROM result WHERE athlete_id = $1 AND division_id = $2`,
		athleteID, divisionID,
	).Scan(&r.ID, &r.AthleteID, &r.DivisionID,
		&r.Judging1, &r.Judging2, &r.Judging3, &r.Judging4, &r.Routine, &r.Total, &r.Place)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result (%d, %d): %w", athleteID, divisionID, err)
	}
	return &r, nil
}

// CreateResult inserts a result and returns it with its assigned ID.
func (db *DB) CreateResult(ctx context.Context, r *schema.Result) (*schema.Result, error) {
	created := *r
	err := db.pool.QueryRow(ctx,
		`INSERT INTO result (athlete_id, division_id, judging_1, judging_2, judging_3, judging_4, routine, total, place)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		r.AthleteID, r.DivisionID, r.Judging1, r.Judging2, r.Judging3, r.Judging4, r.Routine, r.Total, r.Place,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create result for athlete %d: %w", r.AthleteID, err)
	}
	return &created, nil
}

// ListPlacementsForPerson retrieves every placed result of a person
// joined up to the competition it was earned at, feeding the priority
// derivation. Results without a place are skipped.
func (db *DB) ListPlacementsForPerson(ctx context.Context, personID int64) ([]schema.Placement, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT COALESCE(c.name_key, ''), r.place
		 FROM result r
		 JOIN athlete a ON a.id = r.athlete_id
		 JOIN division d ON d.id = r.division_id
		 JOIN event e ON e.id = d.event_id
		 JOIN competition c ON c.id = e.competition_id
		 WHERE a.person_id = $1 AND r.place IS NOT NULL
		 ORDER BY r.place`,
		personID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list placements for person %d: %w", personID, err)
	}
	defer rows.Close()

	var placements []schema.Placement
	for rows.Next() {
		var p schema.Placement
		if err := rows.Scan(&p.CompetitionKey, &p.Place); err != nil {
			return nil, fmt.Errorf("failed to scan placement: %w", err)
		}
		placements = append(placements, p)
	}
	return placements, nil
}
