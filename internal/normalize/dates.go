package normalize

import (
	"regexp"
	"strings"
)

// dateSeparators is the ordered rule table for splitting a date range.
// Separators are tried in order; the first one that applies wins. A comma
// only separates two dates when the right side is not a bare year, so
// "March 1, 2025" stays a single date while "June 1 2025, June 2 2025"
// splits.
var dateSeparators = []struct {
	sep       string
	keepWhole func(right string) bool
}{
	{sep: "–"},
	{sep: "-"},
	{sep: ",", keepWhole: isBareYear},
}

var bareYear = regexp.MustCompile(`^\d{4}$`)

func isBareYear(s string) bool {
	return bareYear.MatchString(strings.TrimSpace(s))
}

// ParseDateRange splits a raw date string into start and end parts.
// A single token resolves to start=end. When two parts are found and the
// end equals the start literally, end is returned empty to signal a
// single-day range. Dates are opaque strings; no calendar validation.
func ParseDateRange(s string) (start, end string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}

	for _, rule := range dateSeparators {
		idx := strings.Index(s, rule.sep)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(s[:idx])
		right := strings.TrimSpace(s[idx+len(rule.sep):])
		if rule.keepWhole != nil && rule.keepWhole(right) {
			continue
		}
		if left == "" || right == "" {
			break
		}
		if right == left {
			return left, ""
		}
		return left, right
	}

	return s, s
}
