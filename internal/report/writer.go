package report

import (
	"io"
	"time"

	"github.com/nao1215/circusanalytics/internal/model"
)

// Document bundles the summary report with the supporting views some
// formats render. Only Report is part of the JSON artifact.
type Document struct {
	// Report is the aggregate report.
	Report *model.SummaryReport

	// GeneratedAt is when the report was computed.
	GeneratedAt time.Time

	// VenueShows lists the labeled show count per venue, as charted.
	VenueShows []VenueShows

	// VenueRevenue lists potential revenue per loaded venue.
	VenueRevenue []model.VenueRevenue
}

// VenueShows is one labeled bar of the shows-by-venue chart.
type VenueShows struct {
	VenueID int
	Name    string
	Count   int
}

// Writer defines the interface for report output.
// Implementations write a Document in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the same API.
type Writer interface {
	// Write outputs the document to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(doc *Document) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
