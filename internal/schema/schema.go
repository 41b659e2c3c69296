// Package schema defines the canonical entity model shared by the
// normalization, resolution, and upload stages.
package schema

// Location is a structured venue or origin. Empty fields are omitted when
// serialized so partially known locations stay compact.
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsZero reports whether no component of the location is set.
func (l Location) IsZero() bool {
	return l.City == "" && l.State == "" && l.Country == ""
}

// Competition is a recurring contest identified by a stable name key.
// NameValues holds every raw spelling known to refer to this competition.
type Competition struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	NameKey      string   `json:"name_key"`
	NameShort    string   `json:"name_short,omitempty"`
	NameValues   []string `json:"name_values,omitempty"`
	Organization string   `json:"organization,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Priority     int      `json:"priority,omitempty"`
}

// Event is one edition of a competition in a given year.
// At most one event exists per (competition, year) pair.
type Event struct {
	ID              int64     `json:"id"`
	CompetitionID   int64     `json:"competition_id"`
	Year            int       `json:"year"`
	StartDate       string    `json:"start_date,omitempty"`
	EndDate         string    `json:"end_date,omitempty"`
	Location        *Location `json:"location,omitempty"`
	PromoterName    string    `json:"promoter_name,omitempty"`
	PromoterEmail   string    `json:"promoter_email,omitempty"`
	PromoterWebsite string    `json:"promoter_website,omitempty"`
	URL             string    `json:"url,omitempty"`
}

// CategoryType is a contest division family, keyed by a short name key
// such as "mensbb" or "bikini". The set of types is seeded once and
// never grown by the pipelines.
type CategoryType struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	NameKey string `json:"name_key"`
}

// CategoryWeight is a weight bracket within a division family, e.g.
// "Open" or "212".
type CategoryWeight struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category pairs a type with a weight. Only pre-seeded pairs exist.
type Category struct {
	ID               int64 `json:"id"`
	CategoryTypeID   int64 `json:"category_type_id"`
	CategoryWeightID int64 `json:"category_weight_id"`
}

// Division is the occurrence of a category at an event. At most one
// division exists per (event, category) pair.
type Division struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	CategoryID  int64  `json:"category_id"`
	Subtype     string `json:"subtype,omitempty"`
	Description string `json:"description,omitempty"`
}

// Person is an individual identified by a stable name key. Nationality
// and From carry cleaned, deduplicated origin data.
type Person struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	NameKey     string     `json:"name_key"`
	NameShort   string     `json:"name_short,omitempty"`
	NameValues  []string   `json:"name_values,omitempty"`
	Sex         string     `json:"sex,omitempty"`
	Nationality []string   `json:"nationality,omitempty"`
	From        []Location `json:"from,omitempty"`
	Priority    int        `json:"priority,omitempty"`
}

// Athlete is the competitor role of a person.
type Athlete struct {
	ID       int64  `json:"id"`
	PersonID int64  `json:"person_id"`
	Active   bool   `json:"active"`
	Nickname string `json:"nickname,omitempty"`
}

// Placement is a flattened view of one result joined up to its
// competition, used by the priority derivation.
type Placement struct {
	CompetitionKey string `json:"competition_key"`
	Place          int    `json:"place"`
}

// Result is an athlete's placement in a division. Judging rounds that
// did not take place stay nil. At most one result exists per
// (athlete, division) pair.
type Result struct {
	ID         int64    `json:"id"`
	AthleteID  int64    `json:"athlete_id"`
	DivisionID int64    `json:"division_id"`
	Judging1   *float64 `json:"judging_1,omitempty"`
	Judging2   *float64 `json:"judging_2,omitempty"`
	Judging3   *float64 `json:"judging_3,omitempty"`
	Judging4   *float64 `json:"judging_4,omitempty"`
	Routine    *float64 `json:"routine,omitempty"`
	Total      *float64 `json:"total,omitempty"`
	Place      *int     `json:"place,omitempty"`
}
