// Package normalize provides deterministic cleaning of scraped field values:
// country names, date ranges, venue strings, division labels, and name keys.
// Every function is a pure transformation of its input.
package normalize

import (
	"regexp"
	"strings"

	"github.com/musclebase/ingest/internal/schema"
)

// countryAliases maps known raw spellings (lowercased) to canonical country
// names. Historic countries map to their present-day successor.
var countryAliases = map[string]string{
	"usa":                      "United States",
	"us":                       "United States",
	"u.s.":                     "United States",
	"u.s.a.":                   "United States",
	"united states of america": "United States",
	"uk":                       "United Kingdom",
	"u.k.":                     "United Kingdom",
	"united kingdom of great britain and northern ireland": "United Kingdom",
	"great britain":        "United Kingdom",
	"england":              "United Kingdom",
	"scotland":             "United Kingdom",
	"wales":                "United Kingdom",
	"northern ireland":     "United Kingdom",
	"bosnia & herzegovina": "Bosnia and Herzegovina",
	"bosnia and herzegovina": "Bosnia and Herzegovina",
	"antigua & barbuda":      "Antigua and Barbuda",
	"antigua and barbuda":    "Antigua and Barbuda",
	"trinidad & tobago":      "Trinidad and Tobago",
	"trinidad and tobago":    "Trinidad and Tobago",
	"st lucia":               "Saint Lucia",
	"st. lucia":              "Saint Lucia",
	"cape verde":             "Cabo Verde",
	"curaçao":                "Curacao",
	"faroe islandss":         "Faroe Islands",
	"germay":                 "Germany",
	"north africa":           "Africa",
	"south wales":            "Wales",
	"west roxbury":           "United States",
	"boston west roxbury":    "United States",
	"tahiti":                 "French Polynesia",
	"yugoslavia":             "Serbia",
	"rhodesia":               "Zimbabwe",
	"macedonia":              "North Macedonia",
}

var digitsAndCommas = regexp.MustCompile(`[,0-9]`)

// Country cleans a raw country or nationality string. Stray digits and
// commas are removed, known aliases are replaced by their canonical name,
// all-lowercase input is title-cased (hyphens become spaces), and
// ampersand joins are normalized to "and". Empty input stays empty.
func Country(raw string) string {
	cleaned := strings.TrimSpace(digitsAndCommas.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return ""
	}

	if canonical, ok := countryAliases[strings.ToLower(cleaned)]; ok {
		return canonical
	}

	if cleaned == strings.ToLower(cleaned) {
		if strings.Contains(cleaned, "-") {
			cleaned = titleWords(strings.Split(cleaned, "-"))
		} else {
			cleaned = titleWords(strings.Split(cleaned, " "))
		}
	}

	if strings.Contains(cleaned, " And ") || strings.Contains(cleaned, " & ") {
		cleaned = strings.ReplaceAll(cleaned, " And ", " and ")
		cleaned = strings.ReplaceAll(cleaned, " & ", " and ")
	}

	return cleaned
}

func titleWords(words []string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, strings.ToUpper(w[:1])+w[1:])
	}
	return strings.Join(out, " ")
}

// Nationalities cleans each entry and removes case-insensitive duplicates,
// keeping first-seen order. Entries that clean to empty are dropped.
func Nationalities(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := []string{}
	for _, r := range raw {
		cleaned := Country(r)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cleaned)
	}
	return out
}

// Origins cleans every component of each location through Country and
// removes duplicates on the (city, state, country) triple, keeping
// first-seen order.
func Origins(raw []schema.Location) []schema.Location {
	seen := make(map[string]bool, len(raw))
	out := []schema.Location{}
	for _, loc := range raw {
		cleaned := schema.Location{
			City:    Country(loc.City),
			State:   Country(loc.State),
			Country: Country(loc.Country),
		}
		key := cleaned.City + "|" + cleaned.State + "|" + cleaned.Country
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cleaned)
	}
	return out
}
