// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - JSONWriter: the analytics_report.json artifact
//   - MarkdownWriter: a human-readable report with tables and a pie chart
//   - SimpleWriter: plain text output for the terminal
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably by the output steps. Files are created
// through CreateFile so that every output failure surfaces as a *WriteError.
package report
