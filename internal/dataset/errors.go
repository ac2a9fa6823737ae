package dataset

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by LoadError and DataError.
// Callers can test for them with errors.Is.
var (
	// ErrMissingKey is returned when a JSON or YAML input lacks its required
	// top-level key ("performers" or "venues").
	ErrMissingKey = errors.New("missing required top-level key")

	// ErrMissingColumn is returned when shows.csv lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrNegativeValue is returned when a price or capacity is below zero.
	ErrNegativeValue = errors.New("value must not be negative")

	// ErrNotNumeric is returned when a price or capacity cell is not a number.
	ErrNotNumeric = errors.New("value is not numeric")

	// ErrNotInteger is returned when an integer column holds a fractional number.
	ErrNotInteger = errors.New("value is not an integer")

	// ErrRequiredValue is returned when a required cell is empty.
	ErrRequiredValue = errors.New("value is required")
)

// LoadError reports that an input file is missing, unreadable, or lacks
// its required top-level structure. It is fatal: no computation runs.
type LoadError struct {
	// Path is the input file that failed to load.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError reports that an input file exists but is not valid in its
// expected format (malformed JSON, CSV or YAML, or wrong value types).
type ParseError struct {
	// Path is the offending file.
	Path string

	// Line is the 1-based line of the failure, or 0 when unknown.
	Line int

	// Err is the decoder's error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DataError reports a value that is structurally present but invalid for
// aggregation, such as a negative capacity or a non-numeric price.
type DataError struct {
	// Path is the file the record came from. Empty for in-memory datasets.
	Path string

	// Record identifies the offending record (row number or show id).
	Record string

	// Field is the column or attribute name.
	Field string

	// Value is the raw offending value.
	Value string

	// Err is the sentinel cause (ErrNegativeValue, ErrNotNumeric, ...).
	Err error
}

func (e *DataError) Error() string {
	where := e.Record
	if e.Path != "" {
		where = e.Path + " " + e.Record
	}
	return fmt.Sprintf("invalid %s %q in %s: %v", e.Field, e.Value, where, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}
