package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/musclebase/ingest/internal/category"
	"github.com/musclebase/ingest/internal/normalize"
	"github.com/musclebase/ingest/internal/schema"
)

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// RawResultRow is one scraped contest placement before normalization.
type RawResultRow struct {
	CompetitionKey  string `json:"competition_key" validate:"required"`
	Year            int    `json:"year" validate:"required"`
	AthleteName     string `json:"athlete_name" validate:"required"`
	Division        string `json:"division" validate:"required"`
	DivisionSubtype string `json:"division_subtype"`
	Place           string `json:"place"`
	Judging1        string `json:"judging_1"`
	Judging2        string `json:"judging_2"`
	Judging3        string `json:"judging_3"`
	Judging4        string `json:"judging_4"`
	Routine         string `json:"routine"`
	Total           string `json:"total"`
}

// Validate checks the raw row for required fields.
func (r *RawResultRow) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ResultRecord is a parsed result row ready for resolution.
type ResultRecord struct {
	CompetitionKey string
	Year           int
	AthleteKey     string
	TypeKey        string
	WeightHint     string
	Subtype        string
	Result         schema.Result
}

func parseScore(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parsePlace(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseResultRow validates and normalizes one result row. Parenthetical
// annotations are stripped from the athlete name before key derivation.
func ParseResultRow(r RawResultRow) (*ResultRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(parenthetical.ReplaceAllString(r.AthleteName, " "))
	division := strings.ToLower(strings.TrimSpace(r.Division))
	if division == "" {
		return nil, fmt.Errorf("result row for %s has no division", name)
	}

	return &ResultRecord{
		CompetitionKey: r.CompetitionKey,
		Year:           r.Year,
		AthleteKey:     normalize.NameKey(name),
		TypeKey:        division,
		WeightHint:     division,
		Subtype:        normalize.SubtypeTitle(r.DivisionSubtype),
		Result: schema.Result{
			Judging1: parseScore(r.Judging1),
			Judging2: parseScore(r.Judging2),
			Judging3: parseScore(r.Judging3),
			Judging4: parseScore(r.Judging4),
			Routine:  parseScore(r.Routine),
			Total:    parseScore(r.Total),
			Place:    parsePlace(r.Place),
		},
	}, nil
}

// Results is the upload stage for contest placements. Athletes, events,
// and categories must already exist; rows referencing unknown parents
// are skipped, never auto-created.
type Results struct {
	store      Store
	categories *category.Resolver

	Mode  string
	Delay time.Duration
	Logf  func(format string, args ...any)

	events    map[string]*schema.Event
	divisions map[string]*schema.Division
	athletes  map[string]*schema.Athlete
}

// NewResults creates a results stage for one batch run.
func NewResults(store Store, mode string) *Results {
	return &Results{
		store:      store,
		categories: category.NewResolver(store),
		Mode:       mode,
		Delay:      writeDelay,
		events:     make(map[string]*schema.Event),
		divisions:  make(map[string]*schema.Division),
		athletes:   make(map[string]*schema.Athlete),
	}
}

func (s *Results) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// Run processes every row and returns the batch counters.
func (s *Results) Run(ctx context.Context, rows []RawResultRow) (Counters, error) {
	var c Counters

	for _, raw := range rows {
		if err := ctx.Err(); err != nil {
			return c, err
		}

		rec, err := ParseResultRow(raw)
		if err != nil {
			s.logf("skipping malformed result row %q: %v", raw.AthleteName, err)
			c.Errors++
			continue
		}

		if err := s.processRecord(ctx, rec, &c); err != nil {
			s.logf("error processing result for %s: %v", rec.AthleteKey, err)
			c.Errors++
		}
	}
	return c, nil
}

func (s *Results) processRecord(ctx context.Context, rec *ResultRecord, c *Counters) error {
	athlete, err := s.lookupAthlete(ctx, rec.AthleteKey)
	if err != nil {
		return err
	}
	if athlete == nil {
		s.logf("skipping result for unknown athlete %s", rec.AthleteKey)
		c.Skipped++
		return nil
	}

	event, err := s.lookupEvent(ctx, rec.CompetitionKey, rec.Year)
	if err != nil {
		return err
	}
	if event == nil {
		s.logf("skipping result at unknown event %s %d", rec.CompetitionKey, rec.Year)
		c.Skipped++
		return nil
	}

	cat, err := s.categories.ResolveByKey(ctx, rec.TypeKey, rec.WeightHint)
	if err != nil {
		if errors.Is(err, category.ErrNotResolved) {
			s.logf("skipping result in unresolved category %s", rec.TypeKey)
			c.Skipped++
			return nil
		}
		return err
	}

	division, createdDivision, err := s.divisionFor(ctx, event, cat, rec.Subtype)
	if err != nil {
		return err
	}
	if createdDivision {
		c.Success++
		if err := throttle(ctx, s.Delay); err != nil {
			return err
		}
	}

	existing, err := s.store.GetResultByAthleteAndDivision(ctx, athlete.ID, division.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if s.Mode != ModeNew {
			s.logf("result already recorded for %s in division %d", rec.AthleteKey, division.ID)
		}
		c.Existing++
		return nil
	}

	result := rec.Result
	result.AthleteID = athlete.ID
	result.DivisionID = division.ID
	if _, err := s.store.CreateResult(ctx, &result); err != nil {
		return err
	}
	c.Success++
	return throttle(ctx, s.Delay)
}

func (s *Results) lookupAthlete(ctx context.Context, nameKey string) (*schema.Athlete, error) {
	if a, ok := s.athletes[nameKey]; ok {
		return a, nil
	}
	a, err := s.store.GetAthleteByPersonNameKey(ctx, nameKey)
	if err != nil {
		return nil, err
	}
	s.athletes[nameKey] = a
	return a, nil
}

func (s *Results) lookupEvent(ctx context.Context, competitionKey string, year int) (*schema.Event, error) {
	key := fmt.Sprintf("%s_%d", competitionKey, year)
	if e, ok := s.events[key]; ok {
		return e, nil
	}
	e, err := s.store.GetEventByCompetitionAndYear(ctx, competitionKey, year)
	if err != nil {
		return nil, err
	}
	s.events[key] = e
	return e, nil
}

// divisionFor finds or creates the division for an (event, category)
// pair, caching per batch. The second return reports creation.
func (s *Results) divisionFor(ctx context.Context, event *schema.Event, cat *schema.Category, subtype string) (*schema.Division, bool, error) {
	key := fmt.Sprintf("%d_%d", event.ID, cat.ID)
	if d, ok := s.divisions[key]; ok {
		return d, false, nil
	}

	d, err := s.store.GetDivisionByEventAndCategory(ctx, event.ID, cat.ID)
	if err != nil {
		return nil, false, err
	}
	if d != nil {
		s.divisions[key] = d
		return d, false, nil
	}

	d, err = s.store.CreateDivision(ctx, &schema.Division{
		EventID:    event.ID,
		CategoryID: cat.ID,
		Subtype:    subtype,
	})
	if err != nil {
		return nil, false, err
	}
	s.divisions[key] = d
	return d, true, nil
}
