package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteError reports a failure to create or write an output file.
//
// Design decision: output failures carry the destination path so the CLI
// can print one diagnostic naming the file, while Unwrap keeps the cause
// (permission denied, disk full) available to errors.Is.
type WriteError struct {
	// Path is the output file that could not be written.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// CreateFile creates (or truncates) the file at path, creating missing
// parent directories first. Failures are returned as *WriteError.
func CreateFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, &WriteError{Path: path, Err: err}
		}
	}

	f, err := os.Create(path) //nolint:gosec // output path comes from the user's configuration
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	return f, nil
}

// WriteFile creates path and writes the document to it with the writer
// returned by newWriter. The file is closed on every exit path.
func WriteFile(path string, doc *Document, newWriter func(w io.Writer) Writer) (err error) {
	f, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	if _, werr := newWriter(f).Write(doc); werr != nil {
		return &WriteError{Path: path, Err: werr}
	}
	return nil
}
