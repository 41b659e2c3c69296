// Package category resolves free-form division labels to the pre-seeded
// category reference rows. Resolution only ever looks rows up; the
// reference tables are never grown from scraped input.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/musclebase/ingest/internal/normalize"
	"github.com/musclebase/ingest/internal/schema"
)

// ErrNotResolved is returned when a division label or weight has no
// matching pre-seeded category row.
var ErrNotResolved = errors.New("category not resolved")

// typeKeys maps canonical division labels to category type name keys.
var typeKeys = map[string]string{
	"Men's Bodybuilding":       "mensbb",
	"Women's Bodybuilding":     "womensbb",
	"Men's Physique":           "mensphysique",
	"Women's Physique":         "womensphysique",
	"Men's Classic Physique":   "classic",
	"Women's Classic Physique": "classic", // Note: This might need adjustment
	"Women's Bikini":           "bikini",
	"Men's Bikini":             "bikini", // Note: This might need adjustment
	"Figure":                   "figure",
	"Women's Figure":           "figure",
	"Fitness":                  "fitness",
	"Women's Fitness":          "fitness",
	"Wellness":                 "wellness",
	"Women's Wellness":         "wellness",
	"212":                      "202_212",
	"212 Bodybuilding":         "202_212",
	"Men's 212 Bodybuilding":   "202_212",
	"Wheelchair":               "wheelchair",
	"Men's Wheelchair":         "wheelchair",
}

// TypeKey returns the category type name key for a division label.
func TypeKey(label string) (string, bool) {
	key, ok := typeKeys[strings.TrimSpace(label)]
	return key, ok
}

// Store is the subset of database access the resolver needs.
type Store interface {
	GetCategoryTypeByKey(ctx context.Context, nameKey string) (*schema.CategoryType, error)
	GetCategoryWeightByName(ctx context.Context, name string) (*schema.CategoryWeight, error)
	GetCategory(ctx context.Context, categoryTypeID, categoryWeightID int64) (*schema.Category, error)
}

// Resolver maps division labels and weight hints to category rows,
// memoizing lookups for the lifetime of one batch.
type Resolver struct {
	store Store
	cache map[string]*schema.Category
}

// NewResolver creates a resolver with an empty memo cache.
func NewResolver(store Store) *Resolver {
	return &Resolver{
		store: store,
		cache: make(map[string]*schema.Category),
	}
}

// ResolveByKey resolves a category from a type name key and a weight
// hint. Any lookup miss yields ErrNotResolved.
func (r *Resolver) ResolveByKey(ctx context.Context, typeKey, weightHint string) (*schema.Category, error) {
	weight := normalize.WeightFromHint(weightHint)
	cacheKey := typeKey + "|" + weight
	if c, ok := r.cache[cacheKey]; ok {
		if c == nil {
			return nil, fmt.Errorf("category type %s weight %s: %w", typeKey, weight, ErrNotResolved)
		}
		return c, nil
	}

	c, err := r.lookup(ctx, typeKey, weight)
	if err != nil {
		if errors.Is(err, ErrNotResolved) {
			r.cache[cacheKey] = nil
		}
		return nil, err
	}
	r.cache[cacheKey] = c
	return c, nil
}

// Resolve resolves a category from a canonical division label and a
// weight hint. Unknown labels yield ErrNotResolved.
func (r *Resolver) Resolve(ctx context.Context, label, weightHint string) (*schema.Category, error) {
	typeKey, ok := TypeKey(label)
	if !ok {
		return nil, fmt.Errorf("division %q: %w", label, ErrNotResolved)
	}
	return r.ResolveByKey(ctx, typeKey, weightHint)
}

func (r *Resolver) lookup(ctx context.Context, typeKey, weight string) (*schema.Category, error) {
	ct, err := r.store.GetCategoryTypeByKey(ctx, typeKey)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, fmt.Errorf("category type %s: %w", typeKey, ErrNotResolved)
	}

	cw, err := r.store.GetCategoryWeightByName(ctx, weight)
	if err != nil {
		return nil, err
	}
	if cw == nil {
		return nil, fmt.Errorf("category weight %s: %w", weight, ErrNotResolved)
	}

	c, err := r.store.GetCategory(ctx, ct.ID, cw.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("category (%s, %s): %w", typeKey, weight, ErrNotResolved)
	}
	return c, nil
}
