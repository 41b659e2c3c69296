package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/musclebase/ingest/internal/schema"
)

func TestCountry(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
		{"scrape artifact digits", "USA, 7", "United States"},
		{"abbreviation", "usa", "United States"},
		{"dotted abbreviation", "u.s.a.", "United States"},
		{"uk abbreviation", "uk", "United Kingdom"},
		{"home nation folds into uk", "england", "United Kingdom"},
		{"historical country", "yugoslavia", "Serbia"},
		{"rhodesia", "rhodesia", "Zimbabwe"},
		{"macedonia rename", "macedonia", "North Macedonia"},
		{"tahiti", "tahiti", "French Polynesia"},
		{"cape verde rename", "cape verde", "Cabo Verde"},
		{"st lucia", "st lucia", "Saint Lucia"},
		{"misspelling", "germay", "Germany"},
		{"hyphenated lowercase", "united-kingdom", "United Kingdom"},
		{"plain lowercase", "vietnam", "Vietnam"},
		{"multiword lowercase", "south africa", "South Africa"},
		{"ampersand join", "Trinidad & Tobago", "Trinidad and Tobago"},
		{"capitalized And join", "Antigua And Barbuda", "Antigua and Barbuda"},
		{"already canonical", "Brazil", "Brazil"},
		{"digits only", "1234", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Country(tt.input))
		})
	}
}

func TestCountryIsIdempotent(t *testing.T) {
	inputs := []string{"USA, 7", "yugoslavia", "united-kingdom", "Trinidad & Tobago", "Brazil"}
	for _, input := range inputs {
		once := Country(input)
		assert.Equal(t, once, Country(once), "cleaning %q twice changed the result", input)
	}
}

func TestNationalities(t *testing.T) {
	t.Run("dedupes case-insensitively after cleaning", func(t *testing.T) {
		got := Nationalities([]string{"usa", "United States", "US", "Brazil"})
		assert.Equal(t, []string{"United States", "Brazil"}, got)
	})

	t.Run("drops entries that clean to empty", func(t *testing.T) {
		got := Nationalities([]string{"", "  ", "123", "Canada"})
		assert.Equal(t, []string{"Canada"}, got)
	})

	t.Run("preserves first-seen order", func(t *testing.T) {
		got := Nationalities([]string{"Brazil", "usa", "brazil"})
		assert.Equal(t, []string{"Brazil", "United States"}, got)
	})
}

func TestOrigins(t *testing.T) {
	raw := []schema.Location{
		{City: "Miami", State: "Florida", Country: "usa"},
		{City: "Miami", State: "Florida", Country: "United States"},
		{City: "Sao Paulo", Country: "Brazil"},
	}

	got := Origins(raw)
	assert.Len(t, got, 2)
	assert.Equal(t, "United States", got[0].Country)
	assert.Equal(t, "Brazil", got[1].Country)
}
