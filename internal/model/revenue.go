package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value. It always serializes with a fractional part,
// so 2000 is written as 2000.0.
type Amount float64

// MarshalJSON writes the amount as a JSON number containing a decimal
// point or an exponent.
func (a Amount) MarshalJSON() ([]byte, error) {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("amount: unsupported value %v", f)
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return []byte(s), nil
}

// ShowRevenue is the derived revenue view of a single Show.
type ShowRevenue struct {
	ShowID           string `json:"show_id"`
	Title            string `json:"title"`
	AvgTicketPrice   Amount `json:"-"`
	PotentialRevenue Amount `json:"potential_revenue"`
}

// VenueShowCount is the number of shows referencing one venue.
type VenueShowCount struct {
	VenueID int `json:"venue_id"`
	Count   int `json:"count"`
}

// VenueRevenue aggregates the potential revenue of all shows at a venue.
type VenueRevenue struct {
	VenueID          int    `json:"venue_id"`
	Name             string `json:"name"`
	Shows            int    `json:"shows"`
	PotentialRevenue Amount `json:"potential_revenue"`
}

// UnknownVenueName is the placeholder name used when a show references a
// venue id that is not in the loaded venue list.
const UnknownVenueName = "Unknown venue"

// ShowDetails joins a show with its venue and revenue projection.
type ShowDetails struct {
	Show

	// Venue is the referenced venue. When the venue id is unknown, Venue
	// carries the show's venue id and UnknownVenueName.
	Venue Venue `json:"venue"`

	// VenueFound is false when Venue is a placeholder.
	VenueFound bool `json:"venue_found"`

	AvgTicketPrice   Amount `json:"avg_ticket_price"`
	PotentialRevenue Amount `json:"potential_revenue"`
}
