// Package dataset loads the circus input files into an immutable Dataset.
//
// Three files are read from a data directory:
//   - performers.json: an object with a "performers" array
//   - shows.csv: a header row followed by one show per row
//   - venues.yaml: a document with a "venues" sequence
//
// Failures are classified so the CLI can report them precisely:
//   - LoadError: the file is missing or unreadable, or lacks its top-level key
//   - ParseError: the file is not valid JSON, CSV or YAML
//   - DataError: a price, capacity, date or id cell holds an unusable value
//
// Numeric policy for shows.csv: an empty price or capacity cell counts as 0;
// a non-numeric, negative or (for capacity) fractional value aborts the load
// with a DataError naming the row and column.
package dataset
