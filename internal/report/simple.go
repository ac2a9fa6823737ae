package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/circusanalytics/internal/model"
)

// SimpleWriter outputs human-readable text for the terminal.
// By default it prints the one-line completion summary; verbose mode adds
// the totals, specialty counts and revenue table.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and pipes cleanly to files.
type SimpleWriter struct {
	baseWriter

	// verbose enables the detailed breakdown after the summary line.
	verbose bool

	// maxTitle is the column width for show titles in verbose output.
	maxTitle int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithMaxTitle sets the width at which show titles are truncated.
// Values below 4 are ignored.
func WithMaxTitle(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n >= 4 {
			w.maxTitle = n
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		maxTitle:   32,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Summary returns the completion line printed after a successful run.
func Summary(r *model.SummaryReport) string {
	return fmt.Sprintf("Analysis complete! Found %d performers and %d upcoming shows.",
		r.TotalPerformers, r.UpcomingShows)
}

// Write outputs the document in human-readable format.
func (w *SimpleWriter) Write(doc *Document) (int, error) {
	if doc == nil || doc.Report == nil {
		return 0, errNilReport
	}

	var sb strings.Builder
	sb.WriteString(Summary(doc.Report))
	sb.WriteString("\n")

	if w.verbose {
		w.writeTotals(&sb, doc)
		w.writeSpecialties(&sb, doc.Report)
		w.writeRevenue(&sb, doc.Report)
		sb.WriteString(strings.Repeat("=", 70))
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// writeTotals writes the scalar totals.
func (w *SimpleWriter) writeTotals(sb *strings.Builder, doc *Document) {
	r := doc.Report
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                     CIRCUS ANALYTICS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if !doc.GeneratedAt.IsZero() {
		fmt.Fprintf(sb, "Generated:         %s\n", doc.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(sb, "Total performers:  %d\n", r.TotalPerformers)
	fmt.Fprintf(sb, "Active performers: %d\n", r.ActivePerformers)
	fmt.Fprintf(sb, "Upcoming shows:    %d\n", r.UpcomingShows)
	fmt.Fprintf(sb, "Total venues:      %d\n", r.TotalVenues)
	fmt.Fprintf(sb, "Total capacity:    %d\n", r.TotalCapacity)
	sb.WriteString("\n")
}

// writeSpecialties writes the specialty counts in first-seen order.
func (w *SimpleWriter) writeSpecialties(sb *strings.Builder, r *model.SummaryReport) {
	sb.WriteString("SPECIALTIES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	if len(r.Specialties) == 0 {
		sb.WriteString("  (none)\n\n")
		return
	}
	for _, s := range r.Specialties {
		fmt.Fprintf(sb, "  %-30s %d\n", s.Specialty, s.Count)
	}
	sb.WriteString("\n")
}

// writeRevenue writes the revenue potential table.
func (w *SimpleWriter) writeRevenue(sb *strings.Builder, r *model.SummaryReport) {
	sb.WriteString("REVENUE POTENTIAL\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	if len(r.RevenuePotential) == 0 {
		sb.WriteString("  (none)\n\n")
		return
	}
	for _, s := range r.RevenuePotential {
		fmt.Fprintf(sb, "  %-10s %-*s %14s\n",
			s.ShowID, w.maxTitle, truncateString(s.Title, w.maxTitle), formatAmount(s.PotentialRevenue))
	}
	sb.WriteString("\n")
}

// truncateString shortens s to at most maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
