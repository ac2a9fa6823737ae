// Package model defines the core data structures used throughout circusanalytics.
//
// This package contains the following main types:
//   - Performer, Show, Venue: the loaded input records
//   - ShowRevenue: the derived revenue projection of a Show
//   - SummaryReport: the aggregate report written to analytics_report.json
//   - SpecialtyCounts: an insertion-ordered specialty histogram
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The dataset loader, the analytics engine, the report writers
// and the archive all use these types.
//
// Stored records are never modified after load. Derived values live in
// separate projection types instead of extra fields on Show.
package model
