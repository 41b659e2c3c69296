package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/musclebase/ingest/internal/schema"
)

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchSummary("schedule upload", 12, 3, 2, 1)
	output := buf.String()

	assert.Contains(t, output, "SCHEDULE UPLOAD")
	assert.Contains(t, output, "Created:   12")
	assert.Contains(t, output, "Existing:  3")
	assert.Contains(t, output, "Skipped:   2")
	assert.Contains(t, output, "Errors:    1")
}

func TestPrintCompetition(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	c := &schema.Competition{
		Name:         "Mr. Olympia",
		NameKey:      "olympia",
		Organization: "IFBB Pro",
		Priority:     1,
		NameValues:   []string{"Mr. Olympia", "Olympia Weekend"},
	}

	p.PrintCompetition(c)
	output := buf.String()

	assert.Contains(t, output, "COMPETITION")
	assert.Contains(t, output, "Mr. Olympia")
	assert.Contains(t, output, "olympia")
	assert.Contains(t, output, "IFBB Pro")
	assert.Contains(t, output, "Olympia Weekend")
}

func TestPrintCompetition_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCompetition(nil)

	assert.Empty(t, buf.String())
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	e := &schema.Event{
		Year:      2025,
		StartDate: "June 1",
		EndDate:   "June 2",
		Location:  &schema.Location{City: "Miami", State: "Florida", Country: "United States"},
		URL:       "https://example.com/2025_sample_pro",
	}

	p.PrintEvent(e)
	output := buf.String()

	assert.Contains(t, output, "EVENT")
	assert.Contains(t, output, "2025")
	assert.Contains(t, output, "June 1 to June 2")
	assert.Contains(t, output, "Miami, Florida, United States")
}

func TestPrintPerson(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	person := &schema.Person{
		Name:        "Hadi Choopan",
		NameKey:     "hadi_choopan",
		Sex:         "male",
		Nationality: []string{"Iran"},
		Priority:    1,
	}

	p.PrintPerson(person)
	output := buf.String()

	assert.Contains(t, output, "PERSON")
	assert.Contains(t, output, "Hadi Choopan")
	assert.Contains(t, output, "Iran")
}

func TestPrintMissingCounts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	labels := []string{"Iran", "Brazil", "Jordan"}
	counts := []int{12, 5, 1}

	p.PrintMissingCounts("missing flags", labels, counts)
	output := buf.String()

	assert.Contains(t, output, "MISSING FLAGS")
	assert.Contains(t, output, "Total: 3")
	assert.Contains(t, output, "Iran")
	assert.Contains(t, output, "12")
}

func TestPrintMissingCounts_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMissingCounts("missing flags", nil, nil)
	output := buf.String()

	assert.Contains(t, output, "NOTHING MISSING")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	c := &schema.Competition{
		Name:    "A Very Long Competition Name That Should Be Truncated To Fit The Box",
		NameKey: "a_very_long_competition_name",
	}

	p.PrintCompetition(c)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
