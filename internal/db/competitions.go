package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/musclebase/ingest/internal/schema"
)

const competitionColumns = `id, name, COALESCE(name_key, ''), COALESCE(name_short, ''),
	COALESCE(name_values, '{}'), COALESCE(organization, ''), COALESCE(image_url, ''), COALESCE(priority, 0)`

func scanCompetition(row pgx.Row) (*schema.Competition, error) {
	var c schema.Competition
	err := row.Scan(&c.ID, &c.Name, &c.NameKey, &c.NameShort, &c.NameValues,
		&c.Organization, &c.ImageURL, &c.Priority)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCompetitionByNameKey retrieves a competition by its stable name key.
// Returns (nil, nil) when no competition has the key.
func (db *DB) GetCompetitionByNameKey(ctx context.Context, nameKey string) (*schema.Competition, error) {
	c, err := scanCompetition(db.pool.QueryRow(ctx,
		`SELECT `+competitionColumns+` FROM competition WHERE name_key = $1`,
		nameKey,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get competition %s: %w", nameKey, err)
	}
	return c, nil
}

// GetCompetitionByName retrieves a competition by its display name.
// Returns (nil, nil) when not found.
func (db *DB) GetCompetitionByName(ctx context.Context, name string) (*schema.Competition, error) {
	c, err := scanCompetition(db.pool.QueryRow(ctx,
		`SELECT `+competitionColumns+` FROM competition WHERE name = $1`,
		name,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get competition by name %s: %w", name, err)
	}
	return c, nil
}

// CreateCompetition inserts a competition and returns it with its assigned ID.
func (db *DB) CreateCompetition(ctx context.Context, c *schema.Competition) (*schema.Competition, error) {
	created := *c
	err := db.pool.QueryRow(ctx,
		`INSERT INTO competition (name, name_key, name_short, name_values, organization, image_url)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		 RETURNING id`,
		c.Name, c.NameKey, c.NameShort, c.NameValues, c.Organization, c.ImageURL,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create competition %s: %w", c.NameKey, err)
	}
	return &created, nil
}

// UpdateCompetitionNameValues replaces a competition's alias list.
func (db *DB) UpdateCompetitionNameValues(ctx context.Context, id int64, nameValues []string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE competition SET name_values = $1 WHERE id = $2`,
		nameValues, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update competition %d name_values: %w", id, err)
	}
	return nil
}

// UpdateCompetitionPriority sets a competition's derived priority tier.
func (db *DB) UpdateCompetitionPriority(ctx context.Context, id int64, priority int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE competition SET priority = $1 WHERE id = $2`,
		priority, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update competition %d priority: %w", id, err)
	}
	return nil
}

// ListCompetitions retrieves a page of competitions ordered by ID.
func (db *DB) ListCompetitions(ctx context.Context, limit, offset int) ([]schema.Competition, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+competitionColumns+` FROM competition ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	defer rows.Close()

	var competitions []schema.Competition
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan competition: %w", err)
		}
		competitions = append(competitions, *c)
	}
	return competitions, nil
}

// CountEventsForCompetition returns how many events exist for a competition.
func (db *DB) CountEventsForCompetition(ctx context.Context, competitionID int64) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM event WHERE competition_id = $1`,
		competitionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events for competition %d: %w", competitionID, err)
	}
	return count, nil
}
