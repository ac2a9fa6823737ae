package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrEmptyDataDir is returned when no data directory is configured.
	ErrEmptyDataDir = errors.New("invalid data directory: must not be empty")

	// ErrEmptyReportFile is returned when the JSON report file name is empty.
	ErrEmptyReportFile = errors.New("invalid report file: must not be empty")

	// ErrEmptyChartFile is returned when the chart file name is empty.
	ErrEmptyChartFile = errors.New("invalid chart file: must not be empty")

	// ErrInvalidChartSize is returned when the chart width or height is not positive.
	ErrInvalidChartSize = errors.New("invalid chart size: width and height must be positive")

	// ErrInvalidChartColor is returned when the chart color is not #RRGGBB.
	ErrInvalidChartColor = errors.New("invalid chart color")

	// ErrInvalidLogFormat is returned for a log format other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConflictingOutputs is returned when two outputs resolve to the same
	// file, which would make the later one overwrite the earlier one.
	ErrConflictingOutputs = errors.New("conflicting outputs: report, chart and markdown files must differ")
)
