package pipeline

import (
	"time"

	"github.com/nao1215/circusanalytics/internal/analytics"
	"github.com/nao1215/circusanalytics/internal/chart"
	"github.com/nao1215/circusanalytics/internal/dataset"
	"github.com/nao1215/circusanalytics/internal/report"
)

// Run carries one analysis through the pipeline.
type Run struct {
	// Dataset is the loaded input.
	Dataset *dataset.Dataset

	// Document is the computed report and its supporting views.
	Document *report.Document

	// Bars is the shows-by-venue chart data.
	Bars []chart.Bar

	// Outputs lists the files written so far, in order.
	Outputs []string

	// PerformedSteps lists the names of the steps that completed.
	PerformedSteps []string

	// ArchiveID is the id assigned by the archive step, or zero.
	ArchiveID int64

	// Err is the error that stopped the run, if any.
	Err error

	// Cancelled is true when the context ended the run.
	Cancelled bool
}

// NewRun computes every view of the report from engine once, so all
// steps write figures taken from the same clock reading.
func NewRun(ds *dataset.Dataset, engine *analytics.Engine, generatedAt time.Time) *Run {
	bars := chart.BuildVenueBars(engine.VenueShowCounts(), engine.VenueName)

	venueShows := make([]report.VenueShows, 0, len(bars))
	for _, b := range bars {
		venueShows = append(venueShows, report.VenueShows{
			VenueID: b.VenueID,
			Name:    b.Label,
			Count:   b.Value,
		})
	}

	return &Run{
		Dataset: ds,
		Document: &report.Document{
			Report:       engine.SummaryReport(),
			GeneratedAt:  generatedAt,
			VenueShows:   venueShows,
			VenueRevenue: engine.RevenueByVenue(),
		},
		Bars: bars,
	}
}

// addOutput records a written file.
func (r *Run) addOutput(path string) {
	r.Outputs = append(r.Outputs, path)
}
