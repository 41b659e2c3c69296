package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musclebase/ingest/internal/schema"
)

type fakeStore struct {
	persons []schema.Person
	events  []schema.Event
}

func (f *fakeStore) ListPersons(_ context.Context, limit, offset int) ([]schema.Person, error) {
	return slicePage(f.persons, limit, offset), nil
}

func (f *fakeStore) ListEvents(_ context.Context, limit, offset int) ([]schema.Event, error) {
	return slicePage(f.events, limit, offset), nil
}

func slicePage[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type fakeImages struct {
	present map[string]bool
}

func (f fakeImages) HasImage(folder, name string) (bool, error) {
	return f.present[folder+"/"+AssetName(name)], nil
}

func newTestChecks(store Store, images ImageChecker) *Checks {
	c := New(store, images)
	c.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestAssetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"United States", "united-states"},
		{"Bosnia and Herzegovina", "bosnia-and-herzegovina"},
		{"St. Louis", "st-louis"},
		{"  Iran ", "iran"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AssetName(tt.in), tt.in)
	}
}

func TestMissingFlags(t *testing.T) {
	store := &fakeStore{persons: []schema.Person{
		{ID: 1, Nationality: []string{"Iran"}},
		{ID: 2, Nationality: []string{"United States"}},
		{ID: 3, Nationality: []string{"Iran", "Kurdistan"}},
	}}
	images := fakeImages{present: map[string]bool{"flags/united-states": true}}

	report, err := newTestChecks(store, images).MissingFlags(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "2025-06-01T12:00:00Z", report.Timestamp)
	assert.Equal(t, 2, report.TotalMissingFlags)
	require.Len(t, report.Countries, 2)
	assert.Equal(t, "Iran", report.Countries[0].Country, "most-affected country first")
	assert.Equal(t, []int64{1, 3}, report.Countries[0].PersonIDs)
	assert.Equal(t, 2, report.Countries[0].Count)
	assert.Equal(t, "Kurdistan", report.Countries[1].Country)
}

func TestMissingLocations(t *testing.T) {
	store := &fakeStore{events: []schema.Event{
		{ID: 10, Location: &schema.Location{City: "Miami", Country: "United States"}},
		{ID: 11, Location: &schema.Location{City: "Gothenburg", Country: "Sweden"}},
		{ID: 12, Location: &schema.Location{Country: "Sweden"}},
		{ID: 13},
	}}
	images := fakeImages{present: map[string]bool{"locations/united-states": true}}

	report, err := newTestChecks(store, images).MissingLocations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalFailures, "country-level image rescues the Miami event")
	require.Len(t, report.Failures, 2)
	assert.Equal(t, int64(11), report.Failures[0].EventID)

	assert.Equal(t, 2, report.TotalMissingLocations)
	require.Len(t, report.Locations, 2)
	assert.Equal(t, "Sweden", report.Locations[0].LocationName)
	assert.Equal(t, "country", report.Locations[0].LocationType)
	assert.Equal(t, []int64{11, 12}, report.Locations[0].EventIDs)
	assert.Equal(t, "Gothenburg", report.Locations[1].LocationName)
	assert.Equal(t, "city", report.Locations[1].LocationType)
}

func TestDirChecker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "flags"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "flags", "united_states.png"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "flags", "iran.png"), nil, 0o644))

	checker := DirChecker{Root: root}

	has, err := checker.HasImage("flags", "United States")
	require.NoError(t, err)
	assert.True(t, has, "underscore spelling matches")

	has, err = checker.HasImage("flags", "Iran")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = checker.HasImage("flags", "Kurdistan")
	require.NoError(t, err)
	assert.False(t, has)

	has, err = checker.HasImage("locations", "Miami")
	require.NoError(t, err)
	assert.False(t, has, "missing folder means no image")
}
