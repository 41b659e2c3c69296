package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start string
		end   string
	}{
		{"empty", "", "", ""},
		{"single date with year comma", "March 1, 2025", "March 1, 2025", "March 1, 2025"},
		{"hyphen range", "March 1-2, 2025", "March 1", "2, 2025"},
		{"en dash range", "June 1 – June 2", "June 1", "June 2"},
		{"comma separated full dates", "June 1 2025, June 2 2025", "June 1 2025", "June 2 2025"},
		{"single token", "June 14", "June 14", "June 14"},
		{"identical halves collapse end", "June 1, June 1", "June 1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ParseDateRange(tt.input)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestParseDateRangeIsOpaque(t *testing.T) {
	// No calendar validation: nonsense tokens pass through untouched.
	start, end := ParseDateRange("Septembruary 42")
	assert.Equal(t, "Septembruary 42", start)
	assert.Equal(t, "Septembruary 42", end)
}
