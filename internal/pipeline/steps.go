package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gonum.org/v1/plot/vg"

	"github.com/nao1215/circusanalytics/internal/archive"
	"github.com/nao1215/circusanalytics/internal/chart"
	"github.com/nao1215/circusanalytics/internal/report"
)

// errNoDocument is returned by steps that need a computed document.
var errNoDocument = errors.New("run has no report document")

// ReportStep writes the JSON report file.
type ReportStep struct {
	path   string
	logger *slog.Logger
}

// NewReportStep creates a step that writes the JSON report to path with
// two-space indentation.
func NewReportStep(path string, logger *slog.Logger) *ReportStep {
	return &ReportStep{path: path, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "json_report"
}

// Do executes the JSON report step.
func (s *ReportStep) Do(_ context.Context, run *Run) error {
	if run.Document == nil {
		return errNoDocument
	}

	err := report.WriteFile(s.path, run.Document, func(w io.Writer) report.Writer {
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	})
	if err != nil {
		return err
	}

	s.logger.Debug("report written", "path", s.path)
	run.addOutput(s.path)
	return nil
}

// MarkdownStep writes the markdown report file.
type MarkdownStep struct {
	path   string
	logger *slog.Logger
}

// NewMarkdownStep creates a step that writes the markdown report to path.
func NewMarkdownStep(path string, logger *slog.Logger) *MarkdownStep {
	return &MarkdownStep{path: path, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *MarkdownStep) Name() string {
	return "markdown_report"
}

// Do executes the markdown report step.
func (s *MarkdownStep) Do(_ context.Context, run *Run) error {
	if run.Document == nil {
		return errNoDocument
	}

	err := report.WriteFile(s.path, run.Document, func(w io.Writer) report.Writer {
		return report.NewMarkdownWriter(w)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("markdown report written", "path", s.path)
	run.addOutput(s.path)
	return nil
}

// ChartStep renders the shows-by-venue PNG chart.
type ChartStep struct {
	path      string
	width     vg.Length
	height    vg.Length
	chartOpts []chart.Option
	logger    *slog.Logger
}

// ChartStepOption configures a ChartStep.
type ChartStepOption func(*ChartStep)

// WithChartSize sets the chart image size.
func WithChartSize(width, height vg.Length) ChartStepOption {
	return func(s *ChartStep) {
		s.width = width
		s.height = height
	}
}

// WithChartLogger sets a custom logger for the chart step.
func WithChartLogger(logger *slog.Logger) ChartStepOption {
	return func(s *ChartStep) {
		s.logger = logger
	}
}

// WithChartOptions passes extra rendering options, such as a title or bar
// color, to chart.Render.
func WithChartOptions(opts ...chart.Option) ChartStepOption {
	return func(s *ChartStep) {
		s.chartOpts = append(s.chartOpts, opts...)
	}
}

// NewChartStep creates a step that renders the chart to path.
func NewChartStep(path string, opts ...ChartStepOption) *ChartStep {
	s := &ChartStep{
		path:   path,
		width:  chart.DefaultWidth,
		height: chart.DefaultHeight,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ChartStep) Name() string {
	return "venue_chart"
}

// Do executes the chart step. Nothing is created when rendering fails
// before the file is opened.
func (s *ChartStep) Do(_ context.Context, run *Run) (err error) {
	if s.width <= 0 || s.height <= 0 {
		return &report.WriteError{
			Path: s.path,
			Err:  fmt.Errorf("%w: %vx%v", chart.ErrInvalidSize, s.width, s.height),
		}
	}

	f, err := report.CreateFile(s.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &report.WriteError{Path: s.path, Err: cerr}
		}
	}()

	opts := append([]chart.Option{chart.WithSize(s.width, s.height)}, s.chartOpts...)
	if err := chart.Render(f, run.Bars, opts...); err != nil {
		return &report.WriteError{Path: s.path, Err: err}
	}

	s.logger.Debug("chart written", "path", s.path, "bars", len(run.Bars))
	run.addOutput(s.path)
	return nil
}

// RunStore persists completed runs.
// *archive.Archive satisfies it.
type RunStore interface {
	SaveRun(ctx context.Context, run *archive.Run) (int64, error)
}

// ArchiveStep stores the report in the run archive.
type ArchiveStep struct {
	store   RunStore
	dataDir string
	logger  *slog.Logger
}

// NewArchiveStep creates a step that saves the run into store. dataDir is
// recorded with the run as given by the user.
func NewArchiveStep(store RunStore, dataDir string, logger *slog.Logger) *ArchiveStep {
	return &ArchiveStep{store: store, dataDir: dataDir, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *ArchiveStep) Name() string {
	return "archive"
}

// Do executes the archive step.
func (s *ArchiveStep) Do(ctx context.Context, run *Run) error {
	if run.Document == nil {
		return errNoDocument
	}

	digest := ""
	if run.Dataset != nil {
		digest = run.Dataset.Digest
	}

	id, err := s.store.SaveRun(ctx, &archive.Run{
		GeneratedAt: run.Document.GeneratedAt,
		DataDir:     s.dataDir,
		InputDigest: digest,
		Report:      run.Document.Report,
	})
	if err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}

	s.logger.Debug("run archived", "id", id)
	run.ArchiveID = id
	return nil
}

// orDefault returns logger, or slog.Default() when it is nil.
func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
