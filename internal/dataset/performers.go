package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nao1215/circusanalytics/internal/model"
)

// performersDocument is the top-level shape of performers.json.
// A pointer distinguishes a missing key from an empty array.
type performersDocument struct {
	Performers *[]model.Performer `json:"performers"`
}

// ParsePerformers decodes the contents of performers.json.
// path is only used in error messages.
func ParsePerformers(path string, data []byte) ([]model.Performer, error) {
	var doc performersDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Line: jsonErrorLine(data, err), Err: err}
	}
	if doc.Performers == nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrMissingKey, "performers")}
	}
	return *doc.Performers, nil
}

// jsonErrorLine converts the byte offset carried by encoding/json errors
// into a 1-based line number. It returns 0 when no offset is available.
func jsonErrorLine(data []byte, err error) int {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}
