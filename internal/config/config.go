package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/circusanalytics/internal/chart"
)

// Default configuration values.
const (
	// DefaultDataDir is the directory holding performers.json, shows.csv
	// and venues.yaml, relative to the working directory.
	DefaultDataDir = "data"

	// DefaultOutputDir is where outputs are written: the working directory.
	DefaultOutputDir = "."

	// DefaultReportFile is the JSON report file name.
	DefaultReportFile = "analytics_report.json"

	// DefaultChartFile is the bar chart file name.
	DefaultChartFile = "shows_by_venue.png"

	// DefaultChartWidth and DefaultChartHeight are the chart size in inches.
	DefaultChartWidth  = 10.0
	DefaultChartHeight = 6.0

	// LogFormatText and LogFormatJSON are the supported log formats.
	LogFormatText = "text"
	LogFormatJSON = "json"

	// AppName is the application name used for XDG directory paths.
	AppName = "circusanalytics"
)

// Config holds all configuration options for circusanalytics.
// This struct is populated from defaults, the config file and CLI flags,
// in that order, and passed through the application explicitly.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is small.
type Config struct {
	// DataDir is the directory containing the three input files.
	DataDir string

	// OutputDir is the directory outputs are written to. Relative output
	// file names are resolved against it. It is created if missing.
	OutputDir string

	// ReportFile is the JSON report file name.
	ReportFile string

	// ChartFile is the PNG chart file name.
	ChartFile string

	// MarkdownFile is the optional markdown report file name.
	// When empty, no markdown report is written.
	MarkdownFile string

	// ChartWidth and ChartHeight are the chart size in inches.
	ChartWidth  float64
	ChartHeight float64

	// ChartTitle replaces the default chart title when not empty.
	ChartTitle string

	// ChartColor is the bar color as #RRGGBB. Empty keeps the default.
	ChartColor string

	// LogFormat selects the stderr log encoding: "text" or "json".
	LogFormat string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Archive stores every successful run in the SQLite archive.
	Archive bool

	// ArchiveDir is the directory holding the archive database.
	// Defaults to the XDG data directory (~/.local/share/circusanalytics on Linux).
	ArchiveDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .circusanalytics in the current
	// directory, the home directory and the XDG config directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		DataDir:     DefaultDataDir,
		OutputDir:   DefaultOutputDir,
		ReportFile:  DefaultReportFile,
		ChartFile:   DefaultChartFile,
		ChartWidth:  DefaultChartWidth,
		ChartHeight: DefaultChartHeight,
		LogFormat:   LogFormatText,
		ArchiveDir:  XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for circusanalytics.
// On Linux: ~/.local/share/circusanalytics
// On macOS: ~/Library/Application Support/circusanalytics
// On Windows: %LOCALAPPDATA%\circusanalytics
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for circusanalytics.
// On Linux: ~/.config/circusanalytics
// On macOS: ~/Library/Application Support/circusanalytics
// On Windows: %APPDATA%\circusanalytics
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ReportPath returns the resolved JSON report path.
func (c *Config) ReportPath() string {
	return c.outputPath(c.ReportFile)
}

// ChartPath returns the resolved chart path.
func (c *Config) ChartPath() string {
	return c.outputPath(c.ChartFile)
}

// MarkdownPath returns the resolved markdown report path, or "" when no
// markdown report is configured.
func (c *Config) MarkdownPath() string {
	if c.MarkdownFile == "" {
		return ""
	}
	return c.outputPath(c.MarkdownFile)
}

// outputPath resolves name against OutputDir unless it is absolute.
func (c *Config) outputPath(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(c.OutputDir, name)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages before any
// input is read. The first error found is returned.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrEmptyDataDir
	}

	if c.ReportFile == "" {
		return ErrEmptyReportFile
	}

	if c.ChartFile == "" {
		return ErrEmptyChartFile
	}

	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidChartSize, c.ChartWidth, c.ChartHeight)
	}

	if c.ChartColor != "" {
		if _, err := chart.ParseColor(c.ChartColor); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidChartColor, err)
		}
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	seen := map[string]bool{c.ReportPath(): true}
	for _, p := range []string{c.ChartPath(), c.MarkdownPath()} {
		if p == "" {
			continue
		}
		if seen[p] {
			return fmt.Errorf("%w: %s", ErrConflictingOutputs, p)
		}
		seen[p] = true
	}

	return nil
}
