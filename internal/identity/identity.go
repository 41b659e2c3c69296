// Package identity resolves raw competition and person names to
// canonical entities. Competition resolution may create; person
// resolution never does, unknown athletes are the caller's skip.
package identity

import (
	"context"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/musclebase/ingest/internal/keys"
	"github.com/musclebase/ingest/internal/schema"
)

// DefaultSimilarity is the Jaro-Winkler score at or above which two
// competition names are treated as the same entity.
const DefaultSimilarity = 0.92

// MergeAliases unions incoming spellings into an alias list with
// case-insensitive dedup, preserving existing order. The second return
// reports whether anything was added.
func MergeAliases(existing, incoming []string) ([]string, bool) {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, v := range existing {
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		merged = append(merged, v)
	}

	changed := len(merged) != len(existing)
	for _, v := range incoming {
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		merged = append(merged, v)
		changed = true
	}
	return merged, changed
}

// CompetitionStore is the database access competition resolution needs.
type CompetitionStore interface {
	GetCompetitionByNameKey(ctx context.Context, nameKey string) (*schema.Competition, error)
	GetCompetitionByName(ctx context.Context, name string) (*schema.Competition, error)
	CreateCompetition(ctx context.Context, c *schema.Competition) (*schema.Competition, error)
	UpdateCompetitionNameValues(ctx context.Context, id int64, nameValues []string) error
	ListCompetitions(ctx context.Context, limit, offset int) ([]schema.Competition, error)
}

// Competitions resolves competition name keys to canonical rows,
// caching results for the lifetime of one batch.
type Competitions struct {
	store      CompetitionStore
	aliasIndex map[string]string
	similarity float64

	cache  map[string]*schema.Competition
	all    []schema.Competition
	loaded bool
}

// NewCompetitions creates a competition resolver. The alias set may be
// nil when no keyed-alias document is loaded.
func NewCompetitions(store CompetitionStore, aliases keys.AliasSet) *Competitions {
	var idx map[string]string
	if aliases != nil {
		idx = aliases.ReverseIndex()
	}
	return &Competitions{
		store:      store,
		aliasIndex: idx,
		similarity: DefaultSimilarity,
		cache:      make(map[string]*schema.Competition),
	}
}

// ResolveOrCreate finds the competition for a name key, trying exact
// key match, then the alias document, then fuzzy name match, and
// finally creating from the seed. The second return reports whether a
// row was created.
func (r *Competitions) ResolveOrCreate(ctx context.Context, nameKey string, seed *schema.Competition) (*schema.Competition, bool, error) {
	if c, ok := r.cache[nameKey]; ok {
		return c, false, nil
	}

	c, err := r.store.GetCompetitionByNameKey(ctx, nameKey)
	if err != nil {
		return nil, false, err
	}
	if c == nil {
		c, err = r.resolveAlias(ctx, seed.Name)
		if err != nil {
			return nil, false, err
		}
	}
	if c == nil {
		c, err = r.resolveFuzzy(ctx, seed.Name)
		if err != nil {
			return nil, false, err
		}
	}

	if c != nil {
		if err := r.mergeSpellings(ctx, c, seed); err != nil {
			return nil, false, err
		}
		r.cache[nameKey] = c
		return c, false, nil
	}

	created, err := r.store.CreateCompetition(ctx, seed)
	if err != nil {
		return nil, false, err
	}
	r.cache[nameKey] = created
	return created, true, nil
}

// resolveAlias maps a raw spelling through the keyed-alias document to
// a canonical key, then looks that key up by name_key and by name.
func (r *Competitions) resolveAlias(ctx context.Context, name string) (*schema.Competition, error) {
	if r.aliasIndex == nil || name == "" {
		return nil, nil
	}
	key, ok := r.aliasIndex[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}

	c, err := r.store.GetCompetitionByNameKey(ctx, key)
	if err != nil || c != nil {
		return c, err
	}
	return r.store.GetCompetitionByName(ctx, key)
}

// resolveFuzzy scans known competitions for a lowercased containment
// match, falling back to Jaro-Winkler similarity. Candidates are
// fetched once per batch.
func (r *Competitions) resolveFuzzy(ctx context.Context, name string) (*schema.Competition, error) {
	if name == "" {
		return nil, nil
	}
	if err := r.loadAll(ctx); err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	var (
		best      *schema.Competition
		bestScore float64
	)
	for i := range r.all {
		candidate := strings.ToLower(r.all[i].Name)
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return &r.all[i], nil
		}
		score := matchr.JaroWinkler(needle, candidate, false)
		if score >= r.similarity && score > bestScore {
			best = &r.all[i]
			bestScore = score
		}
	}
	return best, nil
}

func (r *Competitions) loadAll(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	const pageSize = 1000
	for offset := 0; ; offset += pageSize {
		page, err := r.store.ListCompetitions(ctx, pageSize, offset)
		if err != nil {
			return err
		}
		r.all = append(r.all, page...)
		if len(page) < pageSize {
			break
		}
	}
	r.loaded = true
	return nil
}

// mergeSpellings unions the seed's name and aliases into the resolved
// competition's alias list.
func (r *Competitions) mergeSpellings(ctx context.Context, c *schema.Competition, seed *schema.Competition) error {
	incoming := append([]string{seed.Name}, seed.NameValues...)
	merged, changed := MergeAliases(c.NameValues, incoming)
	if !changed {
		return nil
	}
	if err := r.store.UpdateCompetitionNameValues(ctx, c.ID, merged); err != nil {
		return err
	}
	c.NameValues = merged
	return nil
}

// PersonStore is the database access person resolution needs.
type PersonStore interface {
	GetPersonByNameKey(ctx context.Context, nameKey string) (*schema.Person, error)
	GetPersonByName(ctx context.Context, name string) (*schema.Person, error)
}

// Persons resolves person name keys to canonical rows. Resolution
// never creates; an unknown person resolves to nil.
type Persons struct {
	store      PersonStore
	aliasIndex map[string]string
	cache      map[string]*schema.Person
}

// NewPersons creates a person resolver. The alias set may be nil.
func NewPersons(store PersonStore, aliases keys.AliasSet) *Persons {
	var idx map[string]string
	if aliases != nil {
		idx = aliases.ReverseIndex()
	}
	return &Persons{
		store:      store,
		aliasIndex: idx,
		cache:      make(map[string]*schema.Person),
	}
}

// Resolve finds the person for a name key, trying exact key match and
// then the alias document. Returns (nil, nil) when unknown.
func (r *Persons) Resolve(ctx context.Context, nameKey, name string) (*schema.Person, error) {
	if p, ok := r.cache[nameKey]; ok {
		return p, nil
	}

	p, err := r.store.GetPersonByNameKey(ctx, nameKey)
	if err != nil {
		return nil, err
	}
	if p == nil && r.aliasIndex != nil && name != "" {
		if key, ok := r.aliasIndex[strings.ToLower(name)]; ok {
			p, err = r.store.GetPersonByNameKey(ctx, key)
			if err != nil {
				return nil, err
			}
			if p == nil {
				p, err = r.store.GetPersonByName(ctx, key)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	r.cache[nameKey] = p
	return p, nil
}
