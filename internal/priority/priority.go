// Package priority derives display-ranking tiers for persons and
// competitions from their result history. Derivation is pure and
// re-runnable at any time over existing canonical data.
package priority

import (
	"strings"

	"github.com/musclebase/ingest/internal/schema"
)

// Tier maps a minimum event count to a competition priority.
type Tier struct {
	MinEvents int
	Priority  int
}

// Config holds the marquee competition keys and count thresholds the
// derivations rank against.
type Config struct {
	OlympiaKeys  []string
	ArnoldKeys   []string
	ArnoldPrefix string
	EventTiers   []Tier
}

// DefaultConfig returns the standard marquee keys and tier thresholds.
func DefaultConfig() Config {
	return Config{
		OlympiaKeys:  []string{"olympia", "olympia_europe"},
		ArnoldKeys:   []string{"arnold_classic"},
		ArnoldPrefix: "arnold_classic_",
		EventTiers: []Tier{
			{MinEvents: 8, Priority: 2},
			{MinEvents: 5, Priority: 3},
			{MinEvents: 2, Priority: 4},
		},
	}
}

func (c Config) isOlympia(key string) bool {
	for _, k := range c.OlympiaKeys {
		if key == k {
			return true
		}
	}
	return false
}

func (c Config) isArnold(key string) bool {
	for _, k := range c.ArnoldKeys {
		if key == k {
			return true
		}
	}
	return c.ArnoldPrefix != "" && strings.HasPrefix(key, c.ArnoldPrefix)
}

// PersonPriority ranks a person 1 (best) to 9 from their placement
// history. Marquee wins dominate, then marquee podiums, then marquee
// appearances, then regular pro-show placements.
func PersonPriority(placements []schema.Placement, cfg Config) int {
	var (
		olympiaWin, arnoldWin    bool
		olympiaTop3, arnoldTop3  bool
		olympiaTop10, arnoldTop5 bool
		atMarquee                bool
		proWin, proTop3          bool
		proTop5, proTop10        bool
	)

	for _, p := range placements {
		if p.CompetitionKey == "" || p.Place == 0 {
			continue
		}
		switch {
		case cfg.isOlympia(p.CompetitionKey):
			atMarquee = true
			switch {
			case p.Place == 1:
				olympiaWin = true
			case p.Place <= 3:
				olympiaTop3 = true
			case p.Place <= 10:
				olympiaTop10 = true
			}
		case cfg.isArnold(p.CompetitionKey):
			atMarquee = true
			switch {
			case p.Place == 1:
				arnoldWin = true
			case p.Place <= 3:
				arnoldTop3 = true
			case p.Place <= 5:
				arnoldTop5 = true
			}
		default:
			switch {
			case p.Place == 1:
				proWin = true
			case p.Place <= 3:
				proTop3 = true
			case p.Place <= 5:
				proTop5 = true
			case p.Place <= 10:
				proTop10 = true
			}
		}
	}

	switch {
	case olympiaWin || arnoldWin:
		return 1
	case olympiaTop3 || arnoldTop3:
		return 2
	case olympiaTop10 || arnoldTop5:
		return 3
	case atMarquee:
		return 4
	case proWin:
		return 5
	case proTop3:
		return 6
	case proTop5:
		return 7
	case proTop10:
		return 8
	}
	return 9
}

// CompetitionPriority ranks a competition 1 (best) to 5. Marquee
// competitions are always tier 1; everything else tiers by how many
// events it has held.
func CompetitionPriority(nameKey string, eventCount int, cfg Config) int {
	if cfg.isOlympia(nameKey) || cfg.isArnold(nameKey) {
		return 1
	}
	for _, tier := range cfg.EventTiers {
		if eventCount >= tier.MinEvents {
			return tier.Priority
		}
	}
	return 5
}
