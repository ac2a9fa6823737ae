package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SummaryReport is the aggregate report written to analytics_report.json.
// Field order matches the serialized key order.
type SummaryReport struct {
	// TotalPerformers is the number of loaded performers.
	TotalPerformers int `json:"total_performers"`

	// ActivePerformers is the number of performers with active == true.
	ActivePerformers int `json:"active_performers"`

	// UpcomingShows is the number of shows starting today or later.
	UpcomingShows int `json:"upcoming_shows"`

	// TotalVenues is the number of loaded venues.
	TotalVenues int `json:"total_venues"`

	// TotalCapacity is the sum of all venue capacities.
	TotalCapacity int `json:"total_capacity"`

	// Specialties counts performers per specialty in first-seen order.
	Specialties SpecialtyCounts `json:"specialties"`

	// RevenuePotential lists every show by potential revenue, highest first.
	RevenuePotential []ShowRevenue `json:"revenue_potential"`
}

// SpecialtyCount is one bucket of a SpecialtyCounts histogram.
type SpecialtyCount struct {
	Specialty string
	Count     int
}

// SpecialtyCounts maps specialty names to performer counts while keeping
// the order in which each specialty was first seen.
//
// Design decision: a Go map would lose insertion order, and the JSON report
// must list specialties deterministically. The slice encodes as a JSON object.
type SpecialtyCounts []SpecialtyCount

// Get returns the count for specialty and whether it is present.
func (sc SpecialtyCounts) Get(specialty string) (int, bool) {
	for _, c := range sc {
		if c.Specialty == specialty {
			return c.Count, true
		}
	}
	return 0, false
}

// Total returns the sum of all counts.
func (sc SpecialtyCounts) Total() int {
	total := 0
	for _, c := range sc {
		total += c.Count
	}
	return total
}

// MarshalJSON encodes the histogram as a JSON object in insertion order.
func (sc SpecialtyCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range sc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Specialty)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", c.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (sc *SpecialtyCounts) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*sc = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("specialties: expected JSON object")
	}

	result := SpecialtyCounts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("specialties: expected string key")
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("specialties: count for %q: %w", key, err)
		}
		result = append(result, SpecialtyCount{Specialty: key, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*sc = result
	return nil
}
