package normalize

import "strings"

// Canonical division display labels as they appear on federation pages.
const (
	MensBodybuilding    = "Men's Bodybuilding"
	Mens212Bodybuilding = "Men's 212 Bodybuilding"
	MensClassicPhysique = "Men's Classic Physique"
	MensPhysique        = "Men's Physique"
	MensWheelchair      = "Men's Wheelchair"
	WomensBodybuilding  = "Women's Bodybuilding"
	WomensFitness       = "Women's Fitness"
	WomensFigure        = "Women's Figure"
	WomensBikini        = "Women's Bikini"
	WomensPhysique      = "Women's Physique"
	WomensWellness      = "Women's Wellness"
)

// divisionKeywords is the ordered scan table: the first keyword found in a
// lowercased text claims its label. Specific phrases come before the bare
// fallbacks ("bikini", "212") that would otherwise shadow them.
var divisionKeywords = []struct {
	keyword string
	label   string
}{
	{"men's 212 bodybuilding", Mens212Bodybuilding},
	{"men's bodybuilding", MensBodybuilding},
	{"men's classic physique", MensClassicPhysique},
	{"men's physique", MensPhysique},
	{"men's wheelchair", MensWheelchair},
	{"women's bodybuilding", WomensBodybuilding},
	{"women's fitness", WomensFitness},
	{"women's figure", WomensFigure},
	{"women's bikini", WomensBikini},
	{"women's physique", WomensPhysique},
	{"women's wellness", WomensWellness},
	{"bikini", WomensBikini},
	{"figure", WomensFigure},
	{"fitness", WomensFitness},
	{"wellness", WomensWellness},
	{"classic physique", MensClassicPhysique},
	{"bodybuilding", MensBodybuilding},
	{"physique", MensPhysique},
	{"212", Mens212Bodybuilding},
	{"wheelchair", MensWheelchair},
}

// ScanDivisions finds every division label mentioned in a free-text blob
// (a competition name, a page heading, a description). Multiple divisions
// may be detected; duplicates are dropped while keeping scan order. Text
// claimed by an earlier, more specific keyword is not rescanned, so the
// bare fallbacks never fire inside a phrase already matched. Matches
// must fall on word boundaries: "women's physique" does not also
// register the embedded "men's physique".
func ScanDivisions(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool, len(divisionKeywords))
	var claimed [][2]int
	var out []string
	for _, rule := range divisionKeywords {
		idx := findUnclaimed(lower, rule.keyword, claimed)
		if idx < 0 {
			continue
		}
		claimed = append(claimed, [2]int{idx, idx + len(rule.keyword)})
		if seen[rule.label] {
			continue
		}
		seen[rule.label] = true
		out = append(out, rule.label)
	}
	return out
}

// findUnclaimed returns the index of the first word-bounded occurrence
// of keyword in text that does not fall inside an already claimed span,
// or -1.
func findUnclaimed(text, keyword string, claimed [][2]int) int {
	offset := 0
	for {
		idx := strings.Index(text[offset:], keyword)
		if idx < 0 {
			return -1
		}
		idx += offset
		end := idx + len(keyword)
		inside := false
		for _, span := range claimed {
			if idx >= span[0] && end <= span[1] {
				inside = true
				break
			}
		}
		if !inside && wordBounded(text, idx, end) {
			return idx
		}
		offset = idx + 1
	}
}

// wordBounded reports whether text[start:end] is not glued to adjacent
// letters or digits.
func wordBounded(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// SplitDivisions splits a comma-separated division list into trimmed,
// non-empty entries.
func SplitDivisions(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// WeightFromHint derives the category weight name from free hint text:
// any mention of 212 selects the 212 bracket, everything else is Open.
func WeightFromHint(hint string) string {
	if strings.Contains(strings.ToUpper(hint), "212") {
		return "212"
	}
	return "Open"
}
