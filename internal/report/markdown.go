package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/circusanalytics/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
	title cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}
}

// Write outputs the document in Markdown format.
func (w *MarkdownWriter) Write(doc *Document) (int, error) {
	if doc == nil || doc.Report == nil {
		return 0, errNilReport
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, doc)
	w.writeSummary(md, doc.Report)
	w.writeSpecialties(md, doc.Report)
	w.writeRevenue(md, doc.Report)
	w.writeVenueRevenue(md, doc.VenueRevenue)
	w.writeVenueShows(md, doc.VenueShows)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// Label converts a snake_case report key to a title-cased label,
// e.g. "total_performers" becomes "Total Performers".
func (w *MarkdownWriter) Label(key string) string {
	return w.title.String(strings.ReplaceAll(key, "_", " "))
}

// writeHeader writes the report title and generation time.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, doc *Document) {
	md.H1("Circus Analytics Report")
	md.PlainText("")
	if !doc.GeneratedAt.IsZero() {
		md.PlainTextf("Generated at %s", doc.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
		md.PlainText("")
	}
}

// writeSummary writes the scalar totals of the report.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, r *model.SummaryReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{w.Label("total_performers"), strconv.Itoa(r.TotalPerformers)},
			{w.Label("active_performers"), strconv.Itoa(r.ActivePerformers)},
			{w.Label("upcoming_shows"), strconv.Itoa(r.UpcomingShows)},
			{w.Label("total_venues"), strconv.Itoa(r.TotalVenues)},
			{w.Label("total_capacity"), strconv.Itoa(r.TotalCapacity)},
		},
	})
	md.PlainText("")

	if r.UpcomingShows == 0 {
		md.Note("No upcoming shows are scheduled.")
		md.PlainText("")
	}
}

// writeSpecialties writes the specialty histogram as a table and pie chart.
func (w *MarkdownWriter) writeSpecialties(md *markdown.Markdown, r *model.SummaryReport) {
	md.H2(w.Label("specialties"))
	md.PlainText("")

	if len(r.Specialties) == 0 {
		md.PlainText("No performer specialties recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(r.Specialties)+1)
	for _, s := range r.Specialties {
		rows = append(rows, []string{s.Specialty, strconv.Itoa(s.Count)})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(r.Specialties.Total()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Specialty", "Performers"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, r.Specialties)
}

// writePieChart writes a mermaid pie chart for the specialty distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, specialties model.SpecialtyCounts) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Performer Specialty Distribution"),
		piechart.WithShowData(true),
	)

	for _, s := range specialties {
		chart.LabelAndIntValue(s.Specialty, uint64(s.Count)) //nolint:gosec // counts are never negative
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeRevenue writes the per-show revenue potential, highest first.
func (w *MarkdownWriter) writeRevenue(md *markdown.Markdown, r *model.SummaryReport) {
	md.H2(w.Label("revenue_potential"))
	md.PlainText("")

	if len(r.RevenuePotential) == 0 {
		md.PlainText("No shows loaded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(r.RevenuePotential))
	for _, s := range r.RevenuePotential {
		rows = append(rows, []string{s.ShowID, s.Title, formatAmount(s.PotentialRevenue)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Show", "Title", w.Label("potential_revenue")},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeVenueRevenue writes potential revenue aggregated per venue.
func (w *MarkdownWriter) writeVenueRevenue(md *markdown.Markdown, venues []model.VenueRevenue) {
	if len(venues) == 0 {
		return
	}

	md.H2("Revenue by Venue")
	md.PlainText("")

	rows := make([][]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, []string{
			v.Name,
			strconv.Itoa(v.Shows),
			formatAmount(v.PotentialRevenue),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Venue", "Shows", w.Label("potential_revenue")},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeVenueShows writes the data behind the shows-by-venue chart.
func (w *MarkdownWriter) writeVenueShows(md *markdown.Markdown, venues []VenueShows) {
	md.H2("Shows by Venue")
	md.PlainText("")

	if len(venues) == 0 {
		md.PlainText("No shows loaded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, []string{strconv.Itoa(v.VenueID), v.Name, strconv.Itoa(v.Count)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Venue", "Shows"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by circusanalytics*")
}

// formatAmount renders a currency amount with two decimals.
func formatAmount(v model.Amount) string {
	return strconv.FormatFloat(float64(v), 'f', 2, 64)
}
