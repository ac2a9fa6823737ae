package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/circusanalytics/internal/model"
)

// Column names required in the shows.csv header.
const (
	ColumnShowID         = "show_id"
	ColumnTitle          = "title"
	ColumnVenueID        = "venue_id"
	ColumnStartDate      = "start_date"
	ColumnTicketPriceMin = "ticket_price_min"
	ColumnTicketPriceMax = "ticket_price_max"
	ColumnCapacity       = "capacity"
)

// requiredShowColumns lists the header columns ParseShows needs.
// Any other column is ignored.
var requiredShowColumns = []string{
	ColumnShowID,
	ColumnTitle,
	ColumnVenueID,
	ColumnStartDate,
	ColumnTicketPriceMin,
	ColumnTicketPriceMax,
	ColumnCapacity,
}

// ParseShows decodes the contents of shows.csv.
// path is only used in error messages.
func ParseShows(path string, data []byte) ([]model.Show, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: empty file has no header row", ErrMissingColumn)}
	}
	if err != nil {
		return nil, &ParseError{Path: path, Line: csvErrorLine(err), Err: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range requiredShowColumns {
		if _, ok := index[col]; !ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrMissingColumn, col)}
		}
	}

	shows := make([]model.Show, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Line: csvErrorLine(err), Err: err}
		}

		line, _ := reader.FieldPos(0)
		rp := rowParser{path: path, record: fmt.Sprintf("line %d", line), row: row, index: index}

		show := model.Show{
			ShowID: rp.text(ColumnShowID),
			Title:  rp.text(ColumnTitle),
		}
		show.VenueID = rp.requiredInt(ColumnVenueID)
		show.StartDate = rp.date(ColumnStartDate)
		show.TicketPriceMin = rp.amount(ColumnTicketPriceMin)
		show.TicketPriceMax = rp.amount(ColumnTicketPriceMax)
		show.Capacity = rp.count(ColumnCapacity)
		if rp.err != nil {
			return nil, rp.err
		}

		shows = append(shows, show)
	}

	return shows, nil
}

// csvErrorLine extracts the line number from an encoding/csv error.
func csvErrorLine(err error) int {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Line
	}
	return 0
}

// rowParser converts the cells of one CSV row and keeps the first error.
// Subsequent conversions after an error are no-ops.
type rowParser struct {
	path   string
	record string
	row    []string
	index  map[string]int
	err    error
}

// text returns the trimmed cell for column.
func (p *rowParser) text(column string) string {
	return strings.TrimSpace(p.row[p.index[column]])
}

// fail records a DataError for column unless an error is already recorded.
func (p *rowParser) fail(column, value string, cause error) {
	if p.err == nil {
		p.err = &DataError{Path: p.path, Record: p.record, Field: column, Value: value, Err: cause}
	}
}

// requiredInt parses a non-empty integer identifier.
func (p *rowParser) requiredInt(column string) int {
	raw := p.text(column)
	if raw == "" {
		p.fail(column, raw, ErrRequiredValue)
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(column, raw, ErrNotInteger)
		return 0
	}
	return n
}

// date parses a required YYYY-MM-DD cell.
func (p *rowParser) date(column string) model.Date {
	raw := p.text(column)
	if raw == "" {
		p.fail(column, raw, ErrRequiredValue)
		return model.Date{}
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		p.fail(column, raw, err)
		return model.Date{}
	}
	return d
}

// amount parses a non-negative price. An empty cell counts as 0.
func (p *rowParser) amount(column string) float64 {
	raw := p.text(column)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.fail(column, raw, ErrNotNumeric)
		return 0
	}
	if v < 0 {
		p.fail(column, raw, ErrNegativeValue)
		return 0
	}
	return v
}

// count parses a non-negative integer capacity. An empty cell counts as 0.
// Integral floats such as "100.0" are accepted.
func (p *rowParser) count(column string) int {
	v := p.amount(column)
	if p.err != nil {
		return 0
	}
	if v != math.Trunc(v) {
		p.fail(column, p.text(column), ErrNotInteger)
		return 0
	}
	return int(v)
}
