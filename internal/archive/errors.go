package archive

import "errors"

// ErrNotFound is returned when the archive file does not exist and
// CreateIfNotExists is false.
var ErrNotFound = errors.New("archive not found")

// ErrRunNotFound is returned by GetRun when no run has the requested id.
var ErrRunNotFound = errors.New("archived run not found")

// ErrNilReport is returned by SaveRun when the run carries no report.
var ErrNilReport = errors.New("run has no report")
