package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompetitionNameFromSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"underscore slug with year", "https://example.com/contests/2025_ifbb_pro_tampa", "IFBB PRO Tampa"},
		{"hyphen slug with year", "https://example.com/2025-sample-pro", "Sample PRO"},
		{"no year prefix", "https://example.com/texas_pro", "Texas PRO"},
		{"trailing slash", "https://example.com/2024_olympia/", "Olympia"},
		{"empty", "", ""},
		{"bare slug", "arnold_classic", "Arnold Classic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompetitionNameFromSlug(tt.input))
		})
	}
}

func TestNameKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Sample Pro", "sample_pro"},
		{"Mr. Olympia", "mr_olympia"},
		{"  Tampa  Pro  ", "tampa_pro"},
		{"Arnold Classic (Ohio)", "arnold_classic_ohio"},
		{"212", "212"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NameKey(tt.input), "input %q", tt.input)
	}
}

func TestSubtypeTitle(t *testing.T) {
	assert.Equal(t, "Light-Heavyweight", SubtypeTitle("light-heavyweight"))
	assert.Equal(t, "Heavyweight", SubtypeTitle("HEAVYWEIGHT"))
	assert.Equal(t, "", SubtypeTitle(""))
	assert.Equal(t, "Middleweight", SubtypeTitle(" middleweight "))
}
