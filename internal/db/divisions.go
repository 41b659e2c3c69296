package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/musclebase/ingest/internal/schema"
)

// GetDivisionByEventAndCategory retrieves the division for an (event,
// category) pair, the division dedup key. Returns (nil, nil) when the
// event does not host the category.
func (db *DB) GetDivisionByEventAndCategory(ctx context.Context, eventID, categoryID int64) (*schema.Division, error) {
	var d schema.Division
	err := db.pool.QueryRow(ctx,
		`SELECT id, event_id, category_id, COALESCE(subtype, ''), COALESCE(description, '')
		 FROM division WHERE event_id = $1 AND category_id = $2`,
		eventID, categoryID,
	).Scan(&d.ID, &d.EventID, &d.CategoryID, &d.Subtype, &d.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get division (%d, %d): %w", eventID, categoryID, err)
	}
	return &d, nil
}

// CreateDivision inserts a division and returns it with its assigned ID.
func (db *DB) CreateDivision(ctx context.Context, d *schema.Division) (*schema.Division, error) {
	created := *d
	err := db.pool.QueryRow(ctx,
		`INSERT INTO division (event_id, category_id, subtype, description)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		 RETURNING id`,
		d.EventID, d.CategoryID, d.Subtype, d.Description,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create division for event %d: %w", d.EventID, err)
	}
	return &created, nil
}
