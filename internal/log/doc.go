// Package log provides logging for circusanalytics, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - File path attributes rewritten relative to the working directory
//   - Configurable log levels with verbose mode support
//   - Text or JSON output with the same handler chain
//
// # Path rewriting
//
// The PathHandler shortens path-valued attributes so log lines stay
// readable and do not leak the user's directory layout:
//   - paths under the base directory become relative ("data/shows.csv")
//   - other paths under the home directory start with "~"
//   - every other value is left untouched
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("loaded input", "path", "/home/me/circus/data/shows.csv")
//	// path=data/shows.csv when run from /home/me/circus
//
//	slog.SetDefault(logger)
package log
