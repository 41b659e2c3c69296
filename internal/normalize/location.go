package normalize

import (
	"strings"

	"github.com/musclebase/ingest/internal/schema"
)

// usStates maps two-letter US state abbreviations to full names.
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

// USState expands a two-letter US state abbreviation to its full name.
// Unknown input is returned unchanged.
func USState(abbr string) string {
	trimmed := strings.TrimSpace(abbr)
	if trimmed == "" {
		return abbr
	}
	if full, ok := usStates[strings.ToUpper(trimmed)]; ok {
		return full
	}
	return abbr
}

// ParseLocation splits a comma-separated venue string into its parts.
// One part is a city, two are city and state, three or more are city,
// state, and country, with trailing parts rejoined into the country.
// This is a positional heuristic, not geocoding.
func ParseLocation(s string) schema.Location {
	s = strings.TrimSpace(s)
	if s == "" {
		return schema.Location{}
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		return schema.Location{City: parts[0]}
	case 2:
		return schema.Location{City: parts[0], State: parts[1]}
	default:
		return schema.Location{
			City:    parts[0],
			State:   parts[1],
			Country: strings.Join(parts[2:], ", "),
		}
	}
}
