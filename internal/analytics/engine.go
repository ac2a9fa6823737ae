// Package analytics derives circus statistics from a loaded dataset.
//
// Engine holds one immutable snapshot and answers every query with a pure
// function over it. Nothing is cached and nothing is mutated, so the same
// snapshot and clock reading always produce the same report.
package analytics

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/nao1215/circusanalytics/internal/dataset"
	"github.com/nao1215/circusanalytics/internal/model"
)

// Engine answers aggregate queries over performers, shows and venues.
type Engine struct {
	performers []model.Performer
	shows      []model.Show
	venues     []model.Venue

	// venueNames maps venue id to name for label joins.
	venueNames map[int]string

	// clock returns the current time. Read once per date-dependent call.
	clock func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the function used to read the current time.
// Tests use it to pin "today".
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// New creates an Engine over ds.
//
// The slices are copied so later changes by the caller cannot leak into the
// snapshot. Show prices and capacities are checked again here because a
// Dataset may be built in memory without going through the loader; a
// negative or non-finite value is reported as a *dataset.DataError.
func New(ds *dataset.Dataset, opts ...Option) (*Engine, error) {
	e := &Engine{
		performers: slices.Clone(ds.Performers),
		shows:      slices.Clone(ds.Shows),
		venues:     slices.Clone(ds.Venues),
		venueNames: make(map[int]string, len(ds.Venues)),
		clock:      time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	for _, s := range e.shows {
		if err := validateShow(s); err != nil {
			return nil, err
		}
	}

	for _, v := range e.venues {
		if _, dup := e.venueNames[v.ID]; !dup {
			e.venueNames[v.ID] = v.Name
		}
	}

	return e, nil
}

// validateShow rejects values that would make revenue figures meaningless.
func validateShow(s model.Show) error {
	fields := []struct {
		name  string
		value float64
	}{
		{dataset.ColumnTicketPriceMin, s.TicketPriceMin},
		{dataset.ColumnTicketPriceMax, s.TicketPriceMax},
		{dataset.ColumnCapacity, float64(s.Capacity)},
	}
	for _, f := range fields {
		var cause error
		switch {
		case math.IsNaN(f.value) || math.IsInf(f.value, 0):
			cause = dataset.ErrNotNumeric
		case f.value < 0:
			cause = dataset.ErrNegativeValue
		default:
			continue
		}
		return &dataset.DataError{
			Record: "show " + s.ShowID,
			Field:  f.name,
			Value:  fmt.Sprint(f.value),
			Err:    cause,
		}
	}
	return nil
}

// Today returns the current calendar date according to the engine clock.
func (e *Engine) Today() model.Date {
	return model.DateOf(e.clock())
}

// ActivePerformers returns the performers with Active set, in input order.
func (e *Engine) ActivePerformers() []model.Performer {
	active := make([]model.Performer, 0, len(e.performers))
	for _, p := range e.performers {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// UpcomingShows returns the shows starting today or later, in input order.
// Dates are compared as calendar dates, not strings.
func (e *Engine) UpcomingShows() []model.Show {
	today := e.Today()
	upcoming := make([]model.Show, 0, len(e.shows))
	for _, s := range e.shows {
		if !s.StartDate.Before(today) {
			upcoming = append(upcoming, s)
		}
	}
	return upcoming
}

// RevenuePotential computes the revenue projection of every show and
// returns them by potential revenue, highest first. Shows with equal
// revenue keep their input order.
func (e *Engine) RevenuePotential() []model.ShowRevenue {
	revenues := make([]model.ShowRevenue, len(e.shows))
	for i, s := range e.shows {
		revenues[i] = s.Revenue()
	}
	sort.SliceStable(revenues, func(i, j int) bool {
		return revenues[i].PotentialRevenue > revenues[j].PotentialRevenue
	})
	return revenues
}

// PerformerSpecialties counts performers per specialty in the order each
// specialty first appears. Performers without a specialty are skipped.
func (e *Engine) PerformerSpecialties() model.SpecialtyCounts {
	counts := model.SpecialtyCounts{}
	position := make(map[string]int)
	for _, p := range e.performers {
		if !p.HasSpecialty() {
			continue
		}
		if i, ok := position[p.Specialty]; ok {
			counts[i].Count++
			continue
		}
		position[p.Specialty] = len(counts)
		counts = append(counts, model.SpecialtyCount{Specialty: p.Specialty, Count: 1})
	}
	return counts
}

// TotalCapacity sums the capacity of every venue.
func (e *Engine) TotalCapacity() int {
	total := 0
	for _, v := range e.venues {
		total += v.Capacity
	}
	return total
}

// SummaryReport assembles the aggregate report.
func (e *Engine) SummaryReport() *model.SummaryReport {
	return &model.SummaryReport{
		TotalPerformers:  len(e.performers),
		ActivePerformers: len(e.ActivePerformers()),
		UpcomingShows:    len(e.UpcomingShows()),
		TotalVenues:      len(e.venues),
		TotalCapacity:    e.TotalCapacity(),
		Specialties:      e.PerformerSpecialties(),
		RevenuePotential: e.RevenuePotential(),
	}
}
