package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// divisionCanon maps the uppercase labels competition pages use to the
// canonical division names the pipelines expect.
var divisionCanon = map[string]string{
	"MEN'S BODYBUILDING":     "Men's Bodybuilding",
	"MEN'S 212 BODYBUILDING": "Men's 212 Bodybuilding",
	"MEN'S CLASSIC PHYSIQUE": "Men's Classic Physique",
	"MEN'S PHYSIQUE":         "Men's Physique",
	"MEN'S WHEELCHAIR":       "Men's Wheelchair",
	"WOMEN'S BODYBUILDING":   "Women's Bodybuilding",
	"WOMEN'S FITNESS":        "Women's Fitness",
	"WOMEN'S FIGURE":         "Women's Figure",
	"WOMEN'S BIKINI":         "Women's Bikini",
	"WOMEN'S PHYSIQUE":       "Women's Physique",
	"WOMEN'S WELLNESS":       "Women's Wellness",
}

// divisionMarkers identify labels that are divisions even when they are
// not in the canonical map.
var divisionMarkers = []string{
	"BODYBUILDING", "PHYSIQUE", "FITNESS", "FIGURE", "BIKINI", "WELLNESS", "WHEELCHAIR",
}

// divisionKeywords is the lowercase scan list for the free-text
// fallback, ordered so longer labels are claimed before their
// substrings.
var divisionKeywords = []string{
	"men's 212 bodybuilding",
	"men's classic physique",
	"women's bodybuilding",
	"women's physique",
	"women's fitness",
	"women's figure",
	"women's bikini",
	"women's wellness",
	"men's bodybuilding",
	"men's physique",
	"men's wheelchair",
}

// beforeDash captures everything before an en-dash qualifier, e.g. the
// division part of "MEN'S BODYBUILDING – OPEN".
var beforeDash = regexp.MustCompile(`^([^–]+)`)

// DivisionsFromPage extracts the contested divisions from a competition
// page. Division headings are tried first, then the result-table class
// cells, then a keyword scan over the page's text elements.
func DivisionsFromPage(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var divisions []string
	seen := make(map[string]bool)
	add := func(division string) {
		if division == "" || seen[division] {
			return
		}
		seen[division] = true
		divisions = append(divisions, division)
	}

	doc.Find("h3.table-title").Each(func(_ int, elem *goquery.Selection) {
		add(canonicalDivision(elem.Text()))
	})

	doc.Find(".className").Each(func(_ int, elem *goquery.Selection) {
		match := beforeDash.FindString(strings.TrimSpace(elem.Text()))
		add(canonicalDivision(match))
	})

	doc.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, elem *goquery.Selection) {
		text := strings.ToLower(elem.Text())
		for _, keyword := range divisionKeywords {
			if containsWord(text, keyword) {
				add(divisionCanon[strings.ToUpper(keyword)])
			}
		}
	})

	return divisions, nil
}

// canonicalDivision maps a raw page label to a canonical division name.
// Unknown labels pass through when they carry a division marker word.
func canonicalDivision(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	if canonical, ok := divisionCanon[label]; ok {
		return canonical
	}
	for _, marker := range divisionMarkers {
		if strings.Contains(label, marker) {
			return label
		}
	}
	return ""
}

// containsWord reports whether text contains needle starting at a word
// boundary, so "women's bodybuilding" does not also match the men's
// label embedded in it.
func containsWord(text, needle string) bool {
	for from := 0; ; {
		idx := strings.Index(text[from:], needle)
		if idx < 0 {
			return false
		}
		idx += from
		if idx == 0 || !isLetter(text[idx-1]) {
			return true
		}
		from = idx + 1
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
