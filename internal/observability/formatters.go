// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/musclebase/ingest/internal/schema"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBatchSummary outputs the counters of one upload or maintenance
// batch.
func (p *Printer) PrintBatchSummary(title string, success, existing, skipped, errors int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Created:   %d\n", success))
	sb.WriteString(fmt.Sprintf("Existing:  %d\n", existing))
	sb.WriteString(fmt.Sprintf("Skipped:   %d\n", skipped))
	sb.WriteString(fmt.Sprintf("Errors:    %d", errors))

	p.printBox(strings.ToUpper(title), sb.String())
}

// PrintCompetition outputs a human-readable summary of a competition.
func (p *Printer) PrintCompetition(c *schema.Competition) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", c.Name))
	sb.WriteString(fmt.Sprintf("Key:      %s\n", c.NameKey))
	if c.Organization != "" {
		sb.WriteString(fmt.Sprintf("Org:      %s\n", c.Organization))
	}
	if c.Priority > 0 {
		sb.WriteString(fmt.Sprintf("Priority: %d\n", c.Priority))
	}

	if len(c.NameValues) > 0 {
		sb.WriteString("\nKnown spellings:\n")
		count := min(len(c.NameValues), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", c.NameValues[i]))
		}
		if len(c.NameValues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(c.NameValues)-maxItemsToShow))
		}
	}

	p.printBox("COMPETITION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvent outputs a human-readable summary of an event.
func (p *Printer) PrintEvent(e *schema.Event) {
	if e == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Year:     %d\n", e.Year))
	if e.StartDate != "" {
		dates := e.StartDate
		if e.EndDate != "" && e.EndDate != e.StartDate {
			dates += " to " + e.EndDate
		}
		sb.WriteString(fmt.Sprintf("Dates:    %s\n", dates))
	}
	if e.Location != nil {
		parts := []string{}
		for _, part := range []string{e.Location.City, e.Location.State, e.Location.Country} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		sb.WriteString(fmt.Sprintf("Location: %s\n", strings.Join(parts, ", ")))
	}
	if e.PromoterName != "" {
		sb.WriteString(fmt.Sprintf("Promoter: %s\n", e.PromoterName))
	}
	if e.URL != "" {
		sb.WriteString(fmt.Sprintf("URL:      %s\n", e.URL))
	}

	p.printBox("EVENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPerson outputs a human-readable summary of a person.
func (p *Printer) PrintPerson(person *schema.Person) {
	if person == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", person.Name))
	sb.WriteString(fmt.Sprintf("Key:      %s\n", person.NameKey))
	if person.Sex != "" {
		sb.WriteString(fmt.Sprintf("Sex:      %s\n", person.Sex))
	}
	if len(person.Nationality) > 0 {
		sb.WriteString(fmt.Sprintf("From:     %s\n", strings.Join(person.Nationality, ", ")))
	}
	if person.Priority > 0 {
		sb.WriteString(fmt.Sprintf("Priority: %d\n", person.Priority))
	}

	p.printBox("PERSON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMissingCounts outputs a report of labels and their occurrence
// counts, highest first. Items must already be sorted.
func (p *Printer) PrintMissingCounts(title string, labels []string, counts []int) {
	if len(labels) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NOTHING MISSING")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(labels)))

	count := min(len(labels), maxItemsToShow)
	for i := 0; i < count; i++ {
		label := labels[i]
		if len(label) > 40 {
			label = label[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("%4d  %s\n", counts[i], label))
	}
	if len(labels) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(labels)-maxItemsToShow))
	}

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}
