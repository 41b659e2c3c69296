package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/musclebase/ingest/internal/normalize"
	"github.com/musclebase/ingest/internal/schema"
)

// RawAthleteRow is one scraped athlete profile before normalization.
// LocationJSON carries the scraped origin list as a JSON array.
type RawAthleteRow struct {
	Name         string `json:"name" validate:"required"`
	NameKey      string `json:"name_key"`
	NameShort    string `json:"name_short"`
	Sex          string `json:"sex"`
	Nickname     string `json:"nickname"`
	LocationJSON string `json:"location"`
}

// Validate checks the raw row for required fields.
func (r *RawAthleteRow) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AthleteRecord is a parsed athlete row ready for upload.
type AthleteRecord struct {
	Person   schema.Person
	Nickname string
}

// ParseAthleteRow validates and normalizes one athlete row.
// Nationalities are the cleaned unique countries of the origin list.
func ParseAthleteRow(r RawAthleteRow) (*AthleteRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	key := r.NameKey
	if key == "" {
		key = normalize.NameKey(r.Name)
	}
	short := r.NameShort
	if short == "" {
		short = r.Name
	}

	var origins []schema.Location
	if r.LocationJSON != "" {
		// Scraped origin data is best effort; a malformed blob means
		// no origins, not a rejected athlete.
		_ = json.Unmarshal([]byte(r.LocationJSON), &origins)
	}

	var countries []string
	for _, loc := range origins {
		countries = append(countries, normalize.Country(loc.Country))
	}

	return &AthleteRecord{
		Person: schema.Person{
			Name:        r.Name,
			NameKey:     key,
			NameShort:   short,
			Sex:         r.Sex,
			Nationality: normalize.Nationalities(countries),
			From:        normalize.Origins(origins),
		},
		Nickname: r.Nickname,
	}, nil
}

// Athletes is the upload stage for athlete profiles. Each row creates
// a person and its athlete role; persons dedup by name key.
type Athletes struct {
	store Store

	Mode  string
	Delay time.Duration
	Logf  func(format string, args ...any)
}

// NewAthletes creates an athletes stage for one batch run.
func NewAthletes(store Store, mode string) *Athletes {
	return &Athletes{
		store: store,
		Mode:  mode,
		Delay: writeDelay,
	}
}

func (s *Athletes) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// Run processes every row and returns the batch counters.
func (s *Athletes) Run(ctx context.Context, rows []RawAthleteRow) (Counters, error) {
	var c Counters

	for _, raw := range rows {
		if err := ctx.Err(); err != nil {
			return c, err
		}

		rec, err := ParseAthleteRow(raw)
		if err != nil {
			s.logf("skipping malformed athlete row %q: %v", raw.Name, err)
			c.Errors++
			continue
		}

		if err := s.processRecord(ctx, rec, &c); err != nil {
			s.logf("error processing athlete %s: %v", rec.Person.NameKey, err)
			c.Errors++
		}
	}
	return c, nil
}

func (s *Athletes) processRecord(ctx context.Context, rec *AthleteRecord, c *Counters) error {
	existing, err := s.store.GetPersonByNameKey(ctx, rec.Person.NameKey)
	if err != nil {
		return err
	}

	var person *schema.Person
	if existing != nil {
		if s.Mode == ModeNew {
			c.Existing++
			return nil
		}
		person = existing
		c.Existing++
	} else {
		person, err = s.store.CreatePerson(ctx, &rec.Person)
		if err != nil {
			return err
		}
		c.Success++
		if err := throttle(ctx, s.Delay); err != nil {
			return err
		}
	}

	athlete, err := s.store.GetAthleteByPersonID(ctx, person.ID)
	if err != nil {
		return err
	}
	if athlete != nil {
		return nil
	}

	if _, err := s.store.CreateAthlete(ctx, &schema.Athlete{
		PersonID: person.ID,
		Active:   true,
		Nickname: rec.Nickname,
	}); err != nil {
		return err
	}
	c.Success++
	return throttle(ctx, s.Delay)
}
