package priority

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musclebase/ingest/internal/schema"
)

type fakeStore struct {
	persons      []schema.Person
	placements   map[int64][]schema.Placement
	competitions []schema.Competition
	eventCounts  map[int64]int

	personUpdates      map[int64]int
	competitionUpdates map[int64]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		placements:         make(map[int64][]schema.Placement),
		eventCounts:        make(map[int64]int),
		personUpdates:      make(map[int64]int),
		competitionUpdates: make(map[int64]int),
	}
}

func (f *fakeStore) ListPersons(_ context.Context, limit, offset int) ([]schema.Person, error) {
	return page(f.persons, limit, offset), nil
}

func (f *fakeStore) ListPlacementsForPerson(_ context.Context, personID int64) ([]schema.Placement, error) {
	return f.placements[personID], nil
}

func (f *fakeStore) UpdatePersonPriority(_ context.Context, id int64, priority int) error {
	f.personUpdates[id] = priority
	return nil
}

func (f *fakeStore) ListCompetitions(_ context.Context, limit, offset int) ([]schema.Competition, error) {
	return page(f.competitions, limit, offset), nil
}

func (f *fakeStore) CountEventsForCompetition(_ context.Context, competitionID int64) (int, error) {
	return f.eventCounts[competitionID], nil
}

func (f *fakeStore) UpdateCompetitionPriority(_ context.Context, id int64, priority int) error {
	f.competitionUpdates[id] = priority
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func newTestRunner(store Store) *Runner {
	r := NewRunner(store, DefaultConfig())
	r.Delay = 0
	return r
}

func TestUpdatePersonPriorities(t *testing.T) {
	store := newFakeStore()
	store.persons = []schema.Person{
		{ID: 1, Name: "Hadi Choopan", Priority: 9},
		{ID: 2, Name: "Local Competitor", Priority: 9},
	}
	store.placements[1] = []schema.Placement{{CompetitionKey: "olympia", Place: 1}}

	stats, err := newTestRunner(store).UpdatePersonPriorities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, store.personUpdates[1])
	_, touched := store.personUpdates[2]
	assert.False(t, touched, "unchanged priority is not rewritten")
}

func TestUpdatePersonPrioritiesPreview(t *testing.T) {
	store := newFakeStore()
	store.persons = []schema.Person{{ID: 1, Name: "Hadi Choopan", Priority: 9}}
	store.placements[1] = []schema.Placement{{CompetitionKey: "olympia", Place: 1}}

	runner := newTestRunner(store)
	runner.Preview = true

	stats, err := runner.UpdatePersonPriorities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Updated)
	assert.Empty(t, store.personUpdates, "preview must not write")
}

func TestUpdateCompetitionPriorities(t *testing.T) {
	store := newFakeStore()
	store.competitions = []schema.Competition{
		{ID: 1, Name: "Mr. Olympia", NameKey: "olympia", Priority: 5},
		{ID: 2, Name: "Tampa Pro", NameKey: "tampa_pro", Priority: 5},
		{ID: 3, Name: "One-Off Pro", NameKey: "one_off_pro", Priority: 5},
	}
	store.eventCounts[2] = 9

	stats, err := newTestRunner(store).UpdateCompetitionPriorities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 2, stats.Updated)
	assert.Equal(t, 1, store.competitionUpdates[1], "marquee competition is tier 1")
	assert.Equal(t, 2, store.competitionUpdates[2])
	_, touched := store.competitionUpdates[3]
	assert.False(t, touched, "single-event competition stays at the default tier")
}
