package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// PerformerID identifies a performer. performers.json may write ids as
// numbers or strings; both are kept in their literal textual form.
type PerformerID string

// UnmarshalJSON accepts a JSON string, number or boolean. null decodes to
// the empty id. Objects and arrays are rejected.
func (id *PerformerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return errors.New("performer id: empty value")
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PerformerID(s)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("performer id: expected string or number, got %s", data)
	case bytes.Equal(data, []byte("null")):
		*id = ""
	default:
		*id = PerformerID(data)
	}
	return nil
}

// Performer is an individual circus act loaded from performers.json.
type Performer struct {
	// ID uniquely identifies the performer. It is never interpreted.
	ID PerformerID `json:"id"`

	// Name is the performer's display name.
	Name string `json:"name"`

	// Specialty is the performer's act (e.g. "Aerialist").
	// An empty string means the performer has no specialty; a JSON null
	// decodes to the same value.
	Specialty string `json:"specialty,omitempty"`

	// Active reports whether the performer is currently performing.
	// A missing field decodes to false.
	Active bool `json:"active"`
}

// HasSpecialty reports whether the performer declares a non-empty specialty.
func (p Performer) HasSpecialty() bool {
	return p.Specialty != ""
}

// Show is a scheduled performance loaded from shows.csv.
//
// Show carries only input columns. Average ticket price and potential
// revenue are computed into a ShowRevenue by Revenue and never stored here.
type Show struct {
	ShowID         string  `json:"show_id"`
	Title          string  `json:"title"`
	VenueID        int     `json:"venue_id"`
	StartDate      Date    `json:"start_date"`
	TicketPriceMin float64 `json:"ticket_price_min"`
	TicketPriceMax float64 `json:"ticket_price_max"`
	Capacity       int     `json:"capacity"`
}

// AverageTicketPrice returns the midpoint of the ticket price range.
func (s Show) AverageTicketPrice() float64 {
	return (s.TicketPriceMin + s.TicketPriceMax) / 2
}

// Revenue returns the derived revenue projection for the show.
func (s Show) Revenue() ShowRevenue {
	avg := s.AverageTicketPrice()
	return ShowRevenue{
		ShowID:           s.ShowID,
		Title:            s.Title,
		AvgTicketPrice:   Amount(avg),
		PotentialRevenue: Amount(avg * float64(s.Capacity)),
	}
}

// Venue is a physical location hosting shows, loaded from venues.yaml.
type Venue struct {
	// ID uniquely identifies the venue and is referenced by Show.VenueID.
	ID int `json:"id" yaml:"id"`

	// Name is the venue's display name.
	Name string `json:"name" yaml:"name"`

	// Capacity is the venue's seat count. A missing value decodes to 0.
	Capacity int `json:"capacity" yaml:"capacity"`
}
