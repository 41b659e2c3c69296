package category

import "strings"

// Collapsed is the outcome of folding a historical weight-class label
// into a modern category type. Subtype preserves the original label
// when granularity was collapsed away.
type Collapsed struct {
	TypeKey string
	Subtype string
}

var maleWeightClasses = map[string]bool{
	"heavyweight":       true,
	"light-heavyweight": true,
	"lightweight":       true,
	"medium":            true,
	"middleweight":      true,
	"professional":      true,
	"short":             true,
	"tall":              true,
}

var femaleWeightClasses = map[string]bool{
	"heavyweight":  true,
	"lightweight":  true,
	"middleweight": true,
}

// CollapseLegacy maps a historical results category label to a modern
// category type key. Weight-class granularity folds into the base
// division with the original label kept as a subtype annotation. The
// men's lightweight class became the 202 bracket in 2007 and the 212
// bracket in 2012, both stored under the combined 202_212 type.
func CollapseLegacy(sex, label string, year int) Collapsed {
	raw := strings.TrimSpace(label)
	lower := strings.ToLower(raw)

	if sex == "male" {
		if strings.Contains(lower, "light") && strings.Contains(lower, "weight") && !strings.Contains(lower, "heavy") {
			if year >= 2007 {
				return Collapsed{TypeKey: "202_212"}
			}
			return Collapsed{TypeKey: "mensbb", Subtype: raw}
		}
		switch lower {
		case "", "open", "bodybuilding":
			return Collapsed{TypeKey: "mensbb"}
		case "physique":
			return Collapsed{TypeKey: "mensphysique"}
		}
		if maleWeightClasses[lower] {
			return Collapsed{TypeKey: "mensbb", Subtype: raw}
		}
	}

	if sex == "female" {
		switch lower {
		case "", "bodybuilding":
			return Collapsed{TypeKey: "womensbb"}
		case "physique":
			return Collapsed{TypeKey: "womensphysique"}
		}
		if femaleWeightClasses[lower] {
			return Collapsed{TypeKey: "womensbb", Subtype: raw}
		}
	}

	switch lower {
	case "202", "212":
		return Collapsed{TypeKey: "202_212"}
	}
	return Collapsed{TypeKey: lower}
}
