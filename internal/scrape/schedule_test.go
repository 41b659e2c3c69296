package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleHTML = `
<html><body>
<table>
<tr><th>Competition</th><th>Date</th><th>Venue</th><th>Promoter</th></tr>
<tr>
  <td><a href="/competitions/sample-pro">SAMPLE PRO OPEN</a></td>
  <td>June 1 - June 2, 2025</td>
  <td>Miami, Florida, USA</td>
  <td>Jane Promoter <a href="mailto:jane@example.com">email</a></td>
</tr>
<tr>
  <td>EUROPEAN NATURAL PRO NATURAL OPEN</td>
  <td>July 12, 2025</td>
  <td>Madrid, Spain</td>
  <td>Pedro Promoter</td>
</tr>
<tr>
  <td><a href="/competitions/2025-texas-pro"><img alt="logo"></a></td>
  <td>August 15, 2025</td>
  <td>Dallas, Texas, USA</td>
  <td>Promoter TBD</td>
</tr>
<tr><td>INCOMPLETE ROW</td><td></td></tr>
</table>
</body></html>`

const competitionHTML = `
<html><body>
<h1>Sample Pro</h1>
<h3 class="table-title">MEN'S BODYBUILDING</h3>
<div class="className">WOMEN'S BIKINI – OPEN</div>
<p>The women's wellness lineup returns this year.</p>
</body></html>`

func TestCleanName(t *testing.T) {
	tests := []struct {
		in              string
		wantName        string
		wantDescription string
	}{
		{"SAMPLE PRO OPEN", "SAMPLE PRO", "OPEN"},
		{"SAMPLE PRO NATURAL OPEN", "SAMPLE PRO", "NATURAL OPEN"},
		{"SAMPLE PRO OPEN + MASTERS 40/50", "SAMPLE PRO", "OPEN + MASTERS 40/50"},
		{"SAMPLE PRO MASTERS 40/50/60/70", "SAMPLE PRO", "MASTERS 40/50/60/70"},
		{"SAMPLE PRO", "SAMPLE PRO", ""},
	}
	for _, tt := range tests {
		name, description := CleanName(tt.in)
		assert.Equal(t, tt.wantName, name, tt.in)
		assert.Equal(t, tt.wantDescription, description, tt.in)
	}
}

func TestParseSchedulePage(t *testing.T) {
	rows, err := ParseSchedulePage(scheduleHTML)
	require.NoError(t, err)
	require.Len(t, rows, 3, "incomplete row is dropped")

	first := rows[0]
	assert.Equal(t, "SAMPLE PRO", first.Name)
	assert.Equal(t, "OPEN", first.Description)
	assert.Equal(t, "June 1", first.StartDate)
	assert.Equal(t, "June 2, 2025", first.EndDate)
	assert.Equal(t, "Miami", first.City)
	assert.Equal(t, "Florida", first.State)
	assert.Equal(t, "USA", first.Country)
	assert.Equal(t, "Open", first.DivisionType)
	assert.Equal(t, "IFBB Pro", first.Level)
	assert.Equal(t, "jane@example.com", first.PromoterEmail)
	assert.Equal(t, "/competitions/sample-pro", first.URL)
	assert.Equal(t, "IFBB Pro Schedule", first.Source)

	second := rows[1]
	assert.Equal(t, "EUROPEAN NATURAL PRO", second.Name)
	assert.Equal(t, "NATURAL OPEN", second.Description)
	assert.Equal(t, "July 12, 2025", second.StartDate)
	assert.Equal(t, "", second.EndDate)
	assert.Equal(t, "Madrid", second.City)
	assert.Equal(t, "Spain", second.State, "two-part venue fills city and state")
	assert.Equal(t, "Natural", second.DivisionType)
	assert.Equal(t, "", second.PromoterEmail)

	third := rows[2]
	assert.Equal(t, "Texas PRO", third.Name, "image-only name cell falls back to the URL slug")
	assert.Equal(t, "/competitions/2025-texas-pro", third.URL)
	assert.Equal(t, "Dallas", third.City)
}

func TestDivisionsFromPage(t *testing.T) {
	divisions, err := DivisionsFromPage(competitionHTML)
	require.NoError(t, err)

	assert.Equal(t, []string{"Men's Bodybuilding", "Women's Bikini", "Women's Wellness"}, divisions)
}

func TestDivisionsFromPageWomensOnly(t *testing.T) {
	divisions, err := DivisionsFromPage(`<html><body><p>Women's Bodybuilding and Women's Physique</p></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, []string{"Women's Bodybuilding", "Women's Physique"}, divisions,
		"women's labels must not also register the men's divisions")
}

func TestDivisionsFromPageUnknownLabel(t *testing.T) {
	divisions, err := DivisionsFromPage(`<html><body><h3 class="table-title">MEN'S SUPER BODYBUILDING</h3></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, []string{"MEN'S SUPER BODYBUILDING"}, divisions,
		"unmapped labels with a division marker pass through")
}

func TestScraperRun(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/schedule/", func(w http.ResponseWriter, _ *http.Request) {
		html := strings.ReplaceAll(scheduleHTML, `href="/competitions/sample-pro"`,
			`href="`+server.URL+`/competitions/sample-pro"`)
		_, _ = w.Write([]byte(html))
	})
	mux.HandleFunc("/competitions/sample-pro", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(competitionHTML))
	})

	scraper := NewScraper()
	scraper.ScheduleURL = server.URL + "/schedule/"
	scraper.Delay = 0

	rows, err := scraper.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Men's Bodybuilding, Women's Bikini, Women's Wellness", rows[0].Divisions)
	assert.Equal(t, "", rows[1].Divisions, "row without a URL keeps empty divisions")
	assert.Equal(t, "", rows[2].Divisions, "unreachable competition page leaves divisions empty")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	rows := []Row{{Name: "Sample Pro", StartDate: "June 1", Level: "IFBB Pro", Source: "IFBB Pro Schedule"}}

	require.NoError(t, WriteCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.Contains(t, lines[1], "Sample Pro")
}
