package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musclebase/ingest/internal/keys"
	"github.com/musclebase/ingest/internal/schema"
)

type fakeCompetitionStore struct {
	byKey   map[string]*schema.Competition
	byName  map[string]*schema.Competition
	nextID  int64
	lookups int
}

func newFakeCompetitionStore(existing ...*schema.Competition) *fakeCompetitionStore {
	s := &fakeCompetitionStore{
		byKey:  make(map[string]*schema.Competition),
		byName: make(map[string]*schema.Competition),
		nextID: 1,
	}
	for _, c := range existing {
		s.add(c)
	}
	return s
}

func (s *fakeCompetitionStore) add(c *schema.Competition) {
	if c.ID == 0 {
		c.ID = s.nextID
		s.nextID++
	}
	s.byKey[c.NameKey] = c
	s.byName[c.Name] = c
}

func (s *fakeCompetitionStore) GetCompetitionByNameKey(_ context.Context, nameKey string) (*schema.Competition, error) {
	s.lookups++
	return s.byKey[nameKey], nil
}

func (s *fakeCompetitionStore) GetCompetitionByName(_ context.Context, name string) (*schema.Competition, error) {
	return s.byName[name], nil
}

func (s *fakeCompetitionStore) CreateCompetition(_ context.Context, c *schema.Competition) (*schema.Competition, error) {
	created := *c
	s.add(&created)
	return &created, nil
}

func (s *fakeCompetitionStore) UpdateCompetitionNameValues(_ context.Context, id int64, nameValues []string) error {
	for _, c := range s.byKey {
		if c.ID == id {
			c.NameValues = nameValues
		}
	}
	return nil
}

func (s *fakeCompetitionStore) ListCompetitions(_ context.Context, limit, offset int) ([]schema.Competition, error) {
	var all []schema.Competition
	for _, c := range s.byKey {
		all = append(all, *c)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func TestResolveOrCreateExactKey(t *testing.T) {
	store := newFakeCompetitionStore(&schema.Competition{Name: "Tampa Pro", NameKey: "tampa_pro"})
	r := NewCompetitions(store, nil)

	c, created, err := r.ResolveOrCreate(context.Background(), "tampa_pro",
		&schema.Competition{Name: "Tampa Pro", NameKey: "tampa_pro"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "tampa_pro", c.NameKey)
}

func TestResolveOrCreateViaAliasDocument(t *testing.T) {
	store := newFakeCompetitionStore(&schema.Competition{Name: "Mr. Olympia", NameKey: "olympia"})
	aliases := keys.AliasSet{"olympia": {"Olympia Weekend", "Joe Weider's Olympia"}}
	r := NewCompetitions(store, aliases)

	c, created, err := r.ResolveOrCreate(context.Background(), "olympia_weekend",
		&schema.Competition{Name: "Olympia Weekend", NameKey: "olympia_weekend"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "olympia", c.NameKey)
	assert.Contains(t, c.NameValues, "Olympia Weekend", "resolved spelling merged into aliases")
}

func TestResolveOrCreateFuzzy(t *testing.T) {
	store := newFakeCompetitionStore(&schema.Competition{Name: "IFBB Tampa Pro", NameKey: "tampa_pro"})
	r := NewCompetitions(store, nil)

	c, created, err := r.ResolveOrCreate(context.Background(), "ifbb_tampa",
		&schema.Competition{Name: "Tampa Pro", NameKey: "ifbb_tampa"})
	require.NoError(t, err)
	assert.False(t, created, "containment match should not create")
	assert.Equal(t, "tampa_pro", c.NameKey)
}

func TestResolveOrCreateCreates(t *testing.T) {
	store := newFakeCompetitionStore()
	r := NewCompetitions(store, nil)

	seed := &schema.Competition{
		Name:         "Sample Pro",
		NameKey:      "sample_pro",
		NameShort:    "Sample Pro",
		Organization: "IFBB Pro",
	}
	c, created, err := r.ResolveOrCreate(context.Background(), "sample_pro", seed)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "IFBB Pro", c.Organization)
}

func TestResolveOrCreateCaches(t *testing.T) {
	store := newFakeCompetitionStore(&schema.Competition{Name: "Tampa Pro", NameKey: "tampa_pro"})
	r := NewCompetitions(store, nil)
	seed := &schema.Competition{Name: "Tampa Pro", NameKey: "tampa_pro"}

	_, _, err := r.ResolveOrCreate(context.Background(), "tampa_pro", seed)
	require.NoError(t, err)
	lookupsAfterFirst := store.lookups

	_, _, err = r.ResolveOrCreate(context.Background(), "tampa_pro", seed)
	require.NoError(t, err)
	assert.Equal(t, lookupsAfterFirst, store.lookups, "second resolve should hit the cache")
}

func TestMergeAliases(t *testing.T) {
	tests := []struct {
		name        string
		existing    []string
		incoming    []string
		want        []string
		wantChanged bool
	}{
		{
			name:        "adds new spelling",
			existing:    []string{"Tampa Pro"},
			incoming:    []string{"IFBB Tampa Pro"},
			want:        []string{"Tampa Pro", "IFBB Tampa Pro"},
			wantChanged: true,
		},
		{
			name:        "case-insensitive dedup",
			existing:    []string{"Tampa Pro"},
			incoming:    []string{"TAMPA PRO", "tampa pro"},
			want:        []string{"Tampa Pro"},
			wantChanged: false,
		},
		{
			name:        "drops empties",
			existing:    []string{"Tampa Pro"},
			incoming:    []string{""},
			want:        []string{"Tampa Pro"},
			wantChanged: false,
		},
		{
			name:        "empty existing",
			existing:    nil,
			incoming:    []string{"Tampa Pro"},
			want:        []string{"Tampa Pro"},
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := MergeAliases(tt.existing, tt.incoming)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

type fakePersonStore struct {
	byKey  map[string]*schema.Person
	byName map[string]*schema.Person
}

func (s *fakePersonStore) GetPersonByNameKey(_ context.Context, nameKey string) (*schema.Person, error) {
	return s.byKey[nameKey], nil
}

func (s *fakePersonStore) GetPersonByName(_ context.Context, name string) (*schema.Person, error) {
	return s.byName[name], nil
}

func TestPersonsResolve(t *testing.T) {
	ronnie := &schema.Person{ID: 1, Name: "Ronnie Coleman", NameKey: "ronnie_coleman"}
	store := &fakePersonStore{
		byKey:  map[string]*schema.Person{"ronnie_coleman": ronnie},
		byName: map[string]*schema.Person{"Ronnie Coleman": ronnie},
	}
	aliases := keys.AliasSet{"ronnie_coleman": {"Ronald Dean Coleman"}}
	r := NewPersons(store, aliases)

	t.Run("exact key", func(t *testing.T) {
		p, err := r.Resolve(context.Background(), "ronnie_coleman", "Ronnie Coleman")
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
	})

	t.Run("alias spelling", func(t *testing.T) {
		p, err := r.Resolve(context.Background(), "ronald_dean_coleman", "Ronald Dean Coleman")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "ronnie_coleman", p.NameKey)
	})

	t.Run("unknown never creates", func(t *testing.T) {
		p, err := r.Resolve(context.Background(), "nobody", "Nobody")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}
