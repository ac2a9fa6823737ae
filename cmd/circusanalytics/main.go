// Package main provides the entry point for the circusanalytics CLI.
//
// circusanalytics reads performers.json, shows.csv and venues.yaml from a
// data directory and writes analytics_report.json and shows_by_venue.png.
//
// Usage:
//
//	circusanalytics
//	circusanalytics --data-dir fixtures --output-dir build --markdown report.md
//
// See --help for all available options.
package main

// main is the entry point for circusanalytics.
func main() {
	Execute()
}
