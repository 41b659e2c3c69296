package normalize

import (
	"regexp"
	"strings"
)

var (
	yearPrefix    = regexp.MustCompile(`^\d{4}[_-]`)
	slugSeparator = regexp.MustCompile(`[_-]+`)
	knownAcronyms = regexp.MustCompile(`\b(Ifbb|Pro)\b`)
	nonKeyChars   = regexp.MustCompile(`[^a-z0-9]+`)
)

// NameKey derives the stable lookup key for a display name: lowercase,
// runs of non-alphanumerics collapsed to single underscores.
func NameKey(name string) string {
	key := nonKeyChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return strings.Trim(key, "_")
}

// CompetitionNameFromSlug derives a display name from the last path
// segment of a contest URL. A leading year token is stripped, separators
// become spaces, each word is title-cased, and known acronyms are forced
// to upper case ("Ifbb" -> "IFBB").
func CompetitionNameFromSlug(url string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	slug := parts[len(parts)-1]
	slug = yearPrefix.ReplaceAllString(slug, "")
	if slug == "" {
		return ""
	}

	name := titleWords(slugSeparator.Split(slug, -1))
	return knownAcronyms.ReplaceAllStringFunc(name, strings.ToUpper)
}

// SubtypeTitle title-cases a weight-class subtype, preserving hyphens,
// e.g. "light-heavyweight" -> "Light-Heavyweight".
func SubtypeTitle(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	parts := strings.Split(s, "-")
	for i, part := range parts {
		parts[i] = titleWords(strings.Split(strings.ToLower(strings.TrimSpace(part)), " "))
	}
	return strings.Join(parts, "-")
}
