// Package archive provides SQLite-based storage for generated reports.
//
// Every archived run stores the summary report as JSON together with the
// data directory it was computed from and a digest of the input files, so
// the history command can list past runs and print any of them again.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the archive is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Runs are written once per invocation, far below SQLite's limits
package archive
