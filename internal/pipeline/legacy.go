package pipeline

import (
	"github.com/go-playground/validator/v10"

	"github.com/musclebase/ingest/internal/category"
	"github.com/musclebase/ingest/internal/normalize"
)

// LegacyResultRow is one row of a historical results sheet. The
// division column still carries the weight-class and height-class
// labels used before the modern category system, and sex is implied by
// which sheet the row came from.
type LegacyResultRow struct {
	Competition string `json:"competition" validate:"required"`
	Year        int    `json:"year" validate:"required"`
	Sex         string `json:"sex" validate:"required,oneof=male female"`
	Competitor  string `json:"competitor" validate:"required"`
	Division    string `json:"division"`
	Place       string `json:"place"`
	Judging     string `json:"judging"`
	Finals      string `json:"finals"`
	Routine     string `json:"routine"`
	Total       string `json:"total"`
}

// Validate checks the legacy row for required fields.
func (r *LegacyResultRow) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ConvertLegacyRow folds a historical results row into the modern
// upload shape. The competition name becomes a name key and the
// historical division label collapses into a category type, keeping
// the original label as the division subtype where granularity was
// folded away.
func ConvertLegacyRow(r LegacyResultRow) (RawResultRow, error) {
	if err := r.Validate(); err != nil {
		return RawResultRow{}, err
	}

	collapsed := category.CollapseLegacy(r.Sex, r.Division, r.Year)
	return RawResultRow{
		CompetitionKey:  normalize.NameKey(r.Competition),
		Year:            r.Year,
		AthleteName:     r.Competitor,
		Division:        collapsed.TypeKey,
		DivisionSubtype: collapsed.Subtype,
		Place:           r.Place,
		Judging1:        r.Judging,
		Judging2:        r.Finals,
		Routine:         r.Routine,
		Total:           r.Total,
	}, nil
}
