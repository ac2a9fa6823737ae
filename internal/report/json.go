package report

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/nao1215/circusanalytics/internal/model"
)

// errNilReport is returned when a document carries no summary report.
var errNilReport = errors.New("document has no summary report")

// JSONWriter outputs the summary report in JSON format.
// This is the analytics_report.json artifact consumed by other tools.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because the report is a handful of fields and the standard
// encoder already preserves struct field order.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the document's summary report in JSON format.
func (w *JSONWriter) Write(doc *Document) (int, error) {
	if doc == nil || doc.Report == nil {
		return 0, errNilReport
	}
	return w.WriteReport(doc.Report)
}

// WriteReport outputs a summary report in JSON format.
func (w *JSONWriter) WriteReport(report *model.SummaryReport) (int, error) {
	return w.writeJSON(report)
}

// WriteShow outputs one show joined with its venue and revenue projection.
func (w *JSONWriter) WriteShow(details model.ShowDetails) (int, error) {
	return w.writeJSON(details)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
