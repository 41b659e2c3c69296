// Package scrape pulls the pro schedule from the federation website and
// flattens it into the CSV the upload pipelines consume. The schedule
// page is a set of plain HTML tables; each competition links to its own
// page where the contested divisions are listed.
package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/musclebase/ingest/internal/csvio"
	"github.com/musclebase/ingest/internal/fetch"
	"github.com/musclebase/ingest/internal/normalize"
)

// DefaultScheduleURL is the schedule page scraped by default.
const DefaultScheduleURL = "https://www.ifbbpro.com/schedule/"

// pageDelay is the courtesy pause between competition page fetches.
const pageDelay = 1 * time.Second

// pageTimeout bounds each individual competition page fetch.
const pageTimeout = 10 * time.Second

// Header is the column order of the schedule CSV.
var Header = []string{
	"Competition Name",
	"Start Date",
	"End Date",
	"Location City",
	"Location State",
	"Location Country",
	"Divisions",
	"Division Type",
	"Competition Level",
	"Promoter Name",
	"Promoter Email",
	"Promoter Website",
	"Description",
	"Competition URL",
	"Source",
}

// Row is one scraped schedule entry, one CSV line.
type Row struct {
	Name            string
	StartDate       string
	EndDate         string
	City            string
	State           string
	Country         string
	Divisions       string
	DivisionType    string
	Level           string
	PromoterName    string
	PromoterEmail   string
	PromoterWebsite string
	Description     string
	URL             string
	Source          string
}

// Record returns the row's cells in Header order.
func (r Row) Record() []string {
	return []string{
		r.Name, r.StartDate, r.EndDate,
		r.City, r.State, r.Country,
		r.Divisions, r.DivisionType, r.Level,
		r.PromoterName, r.PromoterEmail, r.PromoterWebsite,
		r.Description, r.URL, r.Source,
	}
}

// nameSuffixes are schedule-listing qualifiers appended to competition
// names. A matched suffix is stripped from the name and kept as the
// description. Ordered most specific first so compound qualifiers win
// over their prefixes.
var nameSuffixes = []string{
	"NATURAL OPEN + NATURAL MASTERS 35/40/45/50/60/70",
	"NATURAL OPEN + MASTERS 40",
	"OPEN + MASTERS 35/40/45/50/55/60/70",
	"OPEN + MASTERS 35/40/45/50/55/60",
	"OPEN + MASTERS 40/45/50/55/60",
	"OPEN + MASTERS 40/50/60/70",
	"OPEN + MASTERS 35/40/50",
	"OPEN + MASTERS 40/50",
	"OPEN + MASTERS 40",
	"MASTERS 35/40/45/50/55/60/70",
	"MASTERS 40/45/50/55/60",
	"MASTERS 40/50/60/70",
	"MASTERS 40/50",
	"MASTERS 40",
	"NATURAL OPEN",
	"OPEN",
}

// CleanName strips a schedule qualifier suffix off a competition name,
// returning the clean name and the stripped qualifier.
func CleanName(name string) (clean, description string) {
	for _, suffix := range nameSuffixes {
		if strings.Contains(name, suffix) {
			return strings.TrimSpace(strings.Replace(name, suffix, "", 1)), suffix
		}
	}
	return strings.TrimSpace(name), ""
}

// divisionTypeFor classifies a competition by its cleaned name.
func divisionTypeFor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "natural"):
		return "Natural"
	case strings.Contains(lower, "masters"):
		return "Masters"
	default:
		return "Open"
	}
}

// ParseSchedulePage extracts schedule rows from the schedule page HTML.
// Every table on the page is scanned; rows need at least the name,
// date, venue, and promoter cells to count.
func ParseSchedulePage(html string) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &fetch.Error{URL: DefaultScheduleURL, Message: "failed to parse schedule page", Cause: err}
	}

	var rows []Row
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(rowIndex int, row *goquery.Selection) {
			if rowIndex == 0 {
				return
			}
			cells := row.Find("td")
			if cells.Length() < 4 {
				return
			}

			rawName := strings.TrimSpace(cells.Eq(0).Text())
			date := strings.TrimSpace(cells.Eq(1).Text())
			venue := strings.TrimSpace(cells.Eq(2).Text())
			promoter := strings.TrimSpace(cells.Eq(3).Text())
			url, _ := cells.Eq(0).Find("a").Attr("href")
			if rawName == "" && url != "" {
				rawName = normalize.CompetitionNameFromSlug(url)
			}
			if rawName == "" || date == "" {
				return
			}

			name, description := CleanName(rawName)

			startDate := date
			endDate := ""
			if idx := strings.Index(date, "-"); idx >= 0 {
				startDate = strings.TrimSpace(date[:idx])
				endDate = strings.TrimSpace(date[idx+1:])
			}

			var city, state, country string
			if venue != "" {
				parts := strings.Split(venue, ",")
				for i := range parts {
					parts[i] = strings.TrimSpace(parts[i])
				}
				switch {
				case len(parts) >= 3:
					city, state, country = parts[0], parts[1], parts[2]
				case len(parts) == 2:
					city, state = parts[0], parts[1]
				default:
					city = venue
				}
			}

			email := ""
			if href, ok := cells.Eq(3).Find(`a[href^="mailto:"]`).Attr("href"); ok {
				email = strings.TrimPrefix(href, "mailto:")
			}

			rows = append(rows, Row{
				Name:          name,
				StartDate:     startDate,
				EndDate:       endDate,
				City:          city,
				State:         state,
				Country:       country,
				DivisionType:  divisionTypeFor(name),
				Level:         "IFBB Pro",
				PromoterName:  promoter,
				PromoterEmail: email,
				Description:   description,
				URL:           url,
				Source:        "IFBB Pro Schedule",
			})
		})
	})

	return rows, nil
}

// Scraper fetches the schedule and enriches each row with the divisions
// listed on the competition's own page.
type Scraper struct {
	ScheduleURL string
	Options     *fetch.Options
	UseBrowser  bool
	Verbose     bool
	Delay       time.Duration
	Logf        func(format string, args ...any)
}

// NewScraper creates a scraper with defaults.
func NewScraper() *Scraper {
	return &Scraper{
		ScheduleURL: DefaultScheduleURL,
		Options:     fetch.DefaultOptions(),
		Delay:       pageDelay,
	}
}

func (s *Scraper) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// Run scrapes the schedule page and every linked competition page.
// Division-page failures are logged and leave the row's divisions
// empty; only a failed schedule fetch aborts the run.
func (s *Scraper) Run(ctx context.Context) ([]Row, error) {
	html, err := s.fetchPage(ctx, s.ScheduleURL, s.Options)
	if err != nil {
		return nil, err
	}

	rows, err := ParseSchedulePage(html)
	if err != nil {
		return nil, err
	}
	s.logf("found %d competitions", len(rows))

	pageOpts := &fetch.Options{Timeout: pageTimeout, UserAgent: s.Options.UserAgent}
	for i := range rows {
		if rows[i].URL == "" {
			continue
		}
		s.logf("processing %d/%d: %s", i+1, len(rows), rows[i].Name)

		pageHTML, err := s.fetchPage(ctx, rows[i].URL, pageOpts)
		if err != nil {
			s.logf("error fetching divisions from %s: %v", rows[i].URL, err)
		} else {
			divisions, err := DivisionsFromPage(pageHTML)
			if err != nil {
				s.logf("error parsing divisions from %s: %v", rows[i].URL, err)
			} else {
				rows[i].Divisions = strings.Join(divisions, ", ")
			}
		}

		if err := s.throttle(ctx); err != nil {
			return rows, err
		}
	}

	return rows, nil
}

func (s *Scraper) fetchPage(ctx context.Context, url string, opts *fetch.Options) (string, error) {
	result, err := fetch.URL(ctx, url, opts)
	if err != nil {
		return "", err
	}
	if s.UseBrowser && fetch.ShouldUseBrowser(result.HTML) {
		return fetch.WithBrowser(ctx, url, opts.Timeout, s.Verbose)
	}
	return result.HTML, nil
}

func (s *Scraper) throttle(ctx context.Context) error {
	if s.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WriteCSV writes scraped rows with the schedule header.
func WriteCSV(path string, rows []Row) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
	}
	return csvio.WriteRecords(path, Header, records)
}
