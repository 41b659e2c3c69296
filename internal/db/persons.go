package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/musclebase/ingest/internal/schema"
)

const personColumns = `id, name, COALESCE(name_key, ''), COALESCE(name_short, ''),
	COALESCE(name_values, '{}'), COALESCE(sex, ''), COALESCE(nationality, '{}'), "from", COALESCE(priority, 0)`

func scanPerson(row pgx.Row) (*schema.Person, error) {
	var (
		p        schema.Person
		fromJSON []byte
	)
	err := row.Scan(&p.ID, &p.Name, &p.NameKey, &p.NameShort, &p.NameValues,
		&p.Sex, &p.Nationality, &fromJSON, &p.Priority)
	if err != nil {
		return nil, err
	}
	if len(fromJSON) > 0 {
		if err := json.Unmarshal(fromJSON, &p.From); err != nil {
			return nil, fmt.Errorf("failed to unmarshal person %d origins: %w", p.ID, err)
		}
	}
	return &p, nil
}

// GetPersonByNameKey retrieves a person by their stable name key.
// Returns (nil, nil) when not found.
func (db *DB) GetPersonByNameKey(ctx context.Context, nameKey string) (*schema.Person, error) {
	p, err := scanPerson(db.pool.QueryRow(ctx,
		`SELECT `+personColumns+` FROM person WHERE name_key = $1`,
		nameKey,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person %s: %w", nameKey, err)
	}
	return p, nil
}

// GetPersonByName retrieves a person by display name. Returns (nil, nil)
// when not found.
func (db *DB) GetPersonByName(ctx context.Context, name string) (*schema.Person, error) {
	p, err := scanPerson(db.pool.QueryRow(ctx,
		`SELECT `+personColumns+` FROM person WHERE name = $1`,
		name,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person by name %s: %w", name, err)
	}
	return p, nil
}

// CreatePerson inserts a person and returns it with its assigned ID.
func (db *DB) CreatePerson(ctx context.Context, p *schema.Person) (*schema.Person, error) {
	fromJSON, err := json.Marshal(p.From)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal person origins: %w", err)
	}

	created := *p
	err = db.pool.QueryRow(ctx,
		`INSERT INTO person (name, name_key, name_short, name_values, sex, nationality, "from")
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		 RETURNING id`,
		p.Name, p.NameKey, p.NameShort, p.NameValues, p.Sex, p.Nationality, fromJSON,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create person %s: %w", p.NameKey, err)
	}
	return &created, nil
}

// UpdatePersonNameValues replaces a person's alias list.
func (db *DB) UpdatePersonNameValues(ctx context.Context, id int64, nameValues []string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE person SET name_values = $1 WHERE id = $2`,
		nameValues, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update person %d name_values: %w", id, err)
	}
	return nil
}

// UpdatePersonOrigins replaces a person's cleaned nationality and origin
// lists.
func (db *DB) UpdatePersonOrigins(ctx context.Context, id int64, nationality []string, from []schema.Location) error {
	fromJSON, err := json.Marshal(from)
	if err != nil {
		return fmt.Errorf("failed to marshal person %d origins: %w", id, err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE person SET nationality = $1, "from" = $2 WHERE id = $3`,
		nationality, fromJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update person %d origins: %w", id, err)
	}
	return nil
}

// UpdatePersonPriority sets a person's derived priority tier.
func (db *DB) UpdatePersonPriority(ctx context.Context, id int64, priority int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE person SET priority = $1 WHERE id = $2`,
		priority, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update person %d priority: %w", id, err)
	}
	return nil
}

// ListPersons retrieves a page of persons ordered by ID.
func (db *DB) ListPersons(ctx context.Context, limit, offset int) ([]schema.Person, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+personColumns+` FROM person ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var persons []schema.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, *p)
	}
	return persons, nil
}
