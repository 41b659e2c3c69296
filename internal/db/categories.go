package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/musclebase/ingest/internal/schema"
)

// GetCategoryTypeByKey retrieves a division family by its name key
// ("mensbb", "bikini", ...). Returns (nil, nil) when not found; the
// reference table is pre-seeded and never grown here.
func (db *DB) GetCategoryTypeByKey(ctx context.Context, nameKey string) (*schema.CategoryType, error) {
	var ct schema.CategoryType
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, name_key FROM category_type WHERE name_key = $1`,
		nameKey,
	).Scan(&ct.ID, &ct.Name, &ct.NameKey)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category type %s: %w", nameKey, err)
	}
	return &ct, nil
}

// GetCategoryWeightByName retrieves a weight bracket by name ("Open",
// "212"). Returns (nil, nil) when not found.
func (db *DB) GetCategoryWeightByName(ctx context.Context, name string) (*schema.CategoryWeight, error) {
	var cw schema.CategoryWeight
	err := db.pool.QueryRow(ctx,
		`SELECT id, name FROM category_weight WHERE name = $1`,
		name,
	).Scan(&cw.ID, &cw.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category weight %s: %w", name, err)
	}
	return &cw, nil
}

// GetCategory retrieves the category for a (type, weight) pair.
// Returns (nil, nil) when the pair is not seeded.
func (db *DB) GetCategory(ctx context.Context, categoryTypeID, categoryWeightID int64) (*schema.Category, error) {
	var c schema.Category
	err := db.pool.QueryRow(ctx,
		`SELECT id, category_type_id, category_weight_id
		 FROM category WHERE category_type_id = $1 AND category_weight_id = $2`,
		categoryTypeID, categoryWeightID,
	).Scan(&c.ID, &c.CategoryTypeID, &c.CategoryWeightID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category (%d, %d): %w", categoryTypeID, categoryWeightID, err)
	}
	return &c, nil
}
