package maintenance

import (
	"context"

	"github.com/musclebase/ingest/internal/normalize"
	"github.com/musclebase/ingest/internal/schema"
)

// OriginStats reports one person nationality and origin cleaning run.
type OriginStats struct {
	Processed          int `json:"processed"`
	Updated            int `json:"updated"`
	NationalityCleaned int `json:"nationality_cleaned"`
	FromCleaned        int `json:"from_cleaned"`
	DuplicatesRemoved  int `json:"duplicates_removed"`
	Errors             int `json:"errors"`
}

// CleanPersonOrigins normalizes and dedups every person's nationality
// and origin lists. Persons whose lists are already clean are left
// untouched.
func (j *Jobs) CleanPersonOrigins(ctx context.Context) (OriginStats, error) {
	var stats OriginStats

	for offset := 0; ; offset += pageSize {
		page, err := j.store.ListPersons(ctx, pageSize, offset)
		if err != nil {
			return stats, err
		}
		if len(page) == 0 {
			break
		}

		for _, person := range page {
			stats.Processed++

			nationality := normalize.Nationalities(person.Nationality)
			from := normalize.Origins(person.From)

			nationalityChanged := !equalStrings(nationality, person.Nationality)
			fromChanged := !equalOrigins(from, person.From)
			if !nationalityChanged && !fromChanged {
				continue
			}

			if nationalityChanged {
				stats.NationalityCleaned++
				stats.DuplicatesRemoved += len(person.Nationality) - len(nationality)
			}
			if fromChanged {
				stats.FromCleaned++
				stats.DuplicatesRemoved += len(person.From) - len(from)
			}

			if j.Preview {
				j.logf("would clean origins for person %d (%s)", person.ID, person.Name)
				stats.Updated++
				continue
			}

			if err := j.store.UpdatePersonOrigins(ctx, person.ID, nationality, from); err != nil {
				j.logf("error updating person %d: %v", person.ID, err)
				stats.Errors++
				continue
			}
			stats.Updated++
			if err := j.throttle(ctx); err != nil {
				return stats, err
			}
		}

		if len(page) < pageSize {
			break
		}
	}
	return stats, nil
}

func equalOrigins(a, b []schema.Location) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
