package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/musclebase/ingest/internal/category"
	"github.com/musclebase/ingest/internal/identity"
	"github.com/musclebase/ingest/internal/keys"
	"github.com/musclebase/ingest/internal/normalize"
	"github.com/musclebase/ingest/internal/schema"
)

// RawScheduleRow is one scraped schedule entry before normalization.
// Either the split date and location columns or the combined Dates and
// Location fields may be populated.
type RawScheduleRow struct {
	Name             string `json:"name" validate:"required"`
	CompetitionKey   string `json:"competition_key"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Dates            string `json:"dates"`
	LocationCity     string `json:"location_city"`
	LocationState    string `json:"location_state"`
	LocationCountry  string `json:"location_country"`
	Location         string `json:"location"`
	Divisions        string `json:"divisions"`
	DivisionType     string `json:"division_type"`
	CompetitionLevel string `json:"competition_level"`
	PromoterName     string `json:"promoter_name"`
	PromoterEmail    string `json:"promoter_email"`
	PromoterWebsite  string `json:"promoter_website"`
	Description      string `json:"description"`
	URL              string `json:"url"`
	Source           string `json:"source"`
}

// Validate checks the raw row for required fields.
func (r *RawScheduleRow) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ScheduleRecord is a parsed and normalized schedule row ready for
// resolution against the store.
type ScheduleRecord struct {
	Competition schema.Competition
	Year        int
	StartDate   string
	EndDate     string
	Location    *schema.Location
	Promoter    [3]string
	URL         string
	Description string
	Divisions   []string
}

// FilterScheduleRow reports whether a scraped row belongs in the pro
// schedule at all. Amateur levels and natural-only contests are out.
func FilterScheduleRow(r RawScheduleRow) bool {
	if r.CompetitionLevel != "" && r.CompetitionLevel != "IFBB Pro" {
		return false
	}
	dt := strings.ToUpper(r.DivisionType)
	if dt != "" {
		if !strings.Contains(dt, "OPEN") || strings.Contains(dt, "NATURAL OPEN") {
			return false
		}
	}
	return true
}

// ParseScheduleRow validates and normalizes one schedule row.
func ParseScheduleRow(r RawScheduleRow, year int) (*ScheduleRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	key := r.CompetitionKey
	if key == "" {
		key = normalize.NameKey(r.Name)
	}

	start, end := r.StartDate, r.EndDate
	if start == "" {
		start, end = normalize.ParseDateRange(r.Dates)
	}
	if end == "" {
		end = start
	}

	loc := schema.Location{
		City:    r.LocationCity,
		State:   r.LocationState,
		Country: r.LocationCountry,
	}
	if loc.IsZero() && r.Location != "" {
		loc = normalize.ParseLocation(r.Location)
	}
	loc.State = normalize.USState(loc.State)
	loc.Country = normalize.Country(loc.Country)

	// Rows without a division list fall back to whatever divisions the
	// competition name and qualifier text mention.
	divisions := normalize.SplitDivisions(r.Divisions)
	if len(divisions) == 0 {
		divisions = normalize.ScanDivisions(r.Name + " " + r.Description)
	}

	rec := &ScheduleRecord{
		Competition: schema.Competition{
			Name:         r.Name,
			NameKey:      key,
			NameShort:    r.Name,
			Organization: "IFBB Pro",
		},
		Year:        year,
		StartDate:   start,
		EndDate:     end,
		Promoter:    [3]string{r.PromoterName, r.PromoterEmail, r.PromoterWebsite},
		URL:         r.URL,
		Description: r.Description,
		Divisions:   divisions,
	}
	if !loc.IsZero() {
		rec.Location = &loc
	}
	return rec, nil
}

// Schedule is the upload stage for scraped schedule rows. It creates
// competitions, one event per competition and year, and the divisions
// each event hosts.
type Schedule struct {
	store        Store
	competitions *identity.Competitions
	categories   *category.Resolver

	Year  int
	Mode  string
	Delay time.Duration
	Logf  func(format string, args ...any)
}

// NewSchedule creates a schedule stage for one batch run.
func NewSchedule(store Store, aliases keys.AliasSet, year int, mode string) *Schedule {
	return &Schedule{
		store:        store,
		competitions: identity.NewCompetitions(store, aliases),
		categories:   category.NewResolver(store),
		Year:         year,
		Mode:         mode,
		Delay:        writeDelay,
	}
}

func (s *Schedule) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// Run processes every row, never aborting the batch on a record
// failure, and returns the batch counters.
func (s *Schedule) Run(ctx context.Context, rows []RawScheduleRow) (Counters, error) {
	var c Counters

	for _, raw := range rows {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		if !FilterScheduleRow(raw) {
			c.Skipped++
			continue
		}

		rec, err := ParseScheduleRow(raw, s.Year)
		if err != nil {
			s.logf("skipping malformed schedule row %q: %v", raw.Name, err)
			c.Errors++
			continue
		}

		if err := s.processRecord(ctx, rec, &c); err != nil {
			s.logf("error processing %q: %v", rec.Competition.Name, err)
			c.Errors++
		}
	}
	return c, nil
}

func (s *Schedule) processRecord(ctx context.Context, rec *ScheduleRecord, c *Counters) error {
	comp, created, err := s.competitions.ResolveOrCreate(ctx, rec.Competition.NameKey, &rec.Competition)
	if err != nil {
		return err
	}
	if created {
		s.logf("created competition %s", comp.NameKey)
		c.Success++
		if err := throttle(ctx, s.Delay); err != nil {
			return err
		}
	}

	event, err := s.store.GetEventByCompetitionAndYear(ctx, comp.NameKey, rec.Year)
	if err != nil {
		return err
	}
	if event == nil {
		event, err = s.store.CreateEvent(ctx, &schema.Event{
			CompetitionID:   comp.ID,
			Year:            rec.Year,
			StartDate:       rec.StartDate,
			EndDate:         rec.EndDate,
			Location:        rec.Location,
			PromoterName:    rec.Promoter[0],
			PromoterEmail:   rec.Promoter[1],
			PromoterWebsite: rec.Promoter[2],
			URL:             rec.URL,
		})
		if err != nil {
			return err
		}
		c.Success++
		if err := throttle(ctx, s.Delay); err != nil {
			return err
		}
	} else {
		if s.Mode == ModeNew {
			c.Existing++
			return nil
		}
		if err := s.refreshEvent(ctx, event, rec); err != nil {
			return err
		}
		c.Existing++
	}

	return s.processDivisions(ctx, rec, event, c)
}

// refreshEvent fills in dates and location an earlier upload left
// empty. Populated fields are never overwritten.
func (s *Schedule) refreshEvent(ctx context.Context, event *schema.Event, rec *ScheduleRecord) error {
	if event.StartDate == "" && rec.StartDate != "" {
		if err := s.store.UpdateEventDates(ctx, event.ID, rec.StartDate, rec.EndDate); err != nil {
			return err
		}
		s.logf("filled dates for event %d", event.ID)
		if err := throttle(ctx, s.Delay); err != nil {
			return err
		}
	}
	if event.Location == nil && rec.Location != nil {
		if err := s.store.UpdateEventLocation(ctx, event.ID, rec.Location); err != nil {
			return err
		}
		s.logf("filled location for event %d", event.ID)
		if err := throttle(ctx, s.Delay); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schedule) processDivisions(ctx context.Context, rec *ScheduleRecord, event *schema.Event, c *Counters) error {
	for _, label := range rec.Divisions {
		cat, err := s.categories.Resolve(ctx, label, label)
		if err != nil {
			if errors.Is(err, category.ErrNotResolved) {
				s.logf("skipping unresolved division %q at %s", label, rec.Competition.NameKey)
				c.Skipped++
				continue
			}
			return err
		}

		div, err := s.store.GetDivisionByEventAndCategory(ctx, event.ID, cat.ID)
		if err != nil {
			return err
		}
		if div != nil {
			c.Existing++
			continue
		}

		if _, err := s.store.CreateDivision(ctx, &schema.Division{
			EventID:     event.ID,
			CategoryID:  cat.ID,
			Description: rec.Description,
		}); err != nil {
			return err
		}
		c.Success++
		if err := throttle(ctx, s.Delay); err != nil {
			return err
		}
	}
	return nil
}
