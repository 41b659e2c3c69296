package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRows(t *testing.T) {
	rows := []Row{
		{
			Name:      "Tampa Pro",
			StartDate: "August 1",
			City:      "Tampa",
			Divisions: "Men's Bodybuilding, Men's Physique",
			URL:       "https://example.com/tampa",
		},
		{
			Name:    "Chicago Pro",
			City:    "Chicago",
			Country: "USA",
		},
		{
			Name:      "TAMPA PRO",
			StartDate: "August 2",
			EndDate:   "August 3",
			State:     "Florida",
			Divisions: "Men's Physique, Women's Bikini",
		},
	}

	merged := MergeRows(rows)
	require.Len(t, merged, 2)

	tampa := merged[0]
	assert.Equal(t, "Tampa Pro", tampa.Name, "first-seen spelling wins")
	assert.Equal(t, "Men's Bodybuilding, Men's Physique, Women's Bikini", tampa.Divisions)
	assert.Equal(t, "August 1", tampa.StartDate, "populated columns are not overwritten")
	assert.Equal(t, "August 3", tampa.EndDate, "empty columns fill from the duplicate")
	assert.Equal(t, "Florida", tampa.State)
	assert.Equal(t, "https://example.com/tampa", tampa.URL)

	assert.Equal(t, "Chicago Pro", merged[1].Name)
}

func TestMergeRowsNoDuplicates(t *testing.T) {
	rows := []Row{{Name: "Tampa Pro"}, {Name: "Chicago Pro"}}
	assert.Equal(t, rows, MergeRows(rows))
}
