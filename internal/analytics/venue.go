package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"sort"

	"github.com/nao1215/circusanalytics/internal/model"
)

// VenueShowCounts counts the shows referencing each venue id, ordered by
// venue id ascending.
//
// The counts come from the shows alone: a venue without shows never
// appears, and a show pointing at an unknown venue id still gets a bucket.
func (e *Engine) VenueShowCounts() []model.VenueShowCount {
	counts := make(map[int]int)
	for _, s := range e.shows {
		counts[s.VenueID]++
	}

	result := make([]model.VenueShowCount, 0, len(counts))
	for id, n := range counts {
		result = append(result, model.VenueShowCount{VenueID: id, Count: n})
	}
	slices.SortFunc(result, func(a, b model.VenueShowCount) int {
		return cmp.Compare(a.VenueID, b.VenueID)
	})
	return result
}

// VenueName returns the name of the venue with the given id, or
// "Venue {id}" when no loaded venue has that id.
func (e *Engine) VenueName(id int) string {
	if name, ok := e.venueNames[id]; ok {
		return name
	}
	return FallbackVenueName(id)
}

// FallbackVenueName is the label used for a venue id missing from the
// venue list.
func FallbackVenueName(id int) string {
	return fmt.Sprintf("Venue %d", id)
}

// RevenueByVenue sums the potential revenue of the shows at each loaded
// venue. Every venue is listed, including those without shows. The result
// is ordered by revenue, highest first, keeping venue list order on ties.
// Shows at unknown venues are not attributed to any venue.
func (e *Engine) RevenueByVenue() []model.VenueRevenue {
	result := make([]model.VenueRevenue, 0, len(e.venues))
	position := make(map[int]int, len(e.venues))
	for _, v := range e.venues {
		if _, dup := position[v.ID]; dup {
			continue
		}
		position[v.ID] = len(result)
		result = append(result, model.VenueRevenue{VenueID: v.ID, Name: v.Name})
	}

	for _, s := range e.shows {
		i, ok := position[s.VenueID]
		if !ok {
			continue
		}
		result[i].Shows++
		result[i].PotentialRevenue += s.Revenue().PotentialRevenue
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PotentialRevenue > result[j].PotentialRevenue
	})
	return result
}

// ShowDetails returns the show with the given id joined with its venue and
// revenue projection. The second result is false when no show has that id.
func (e *Engine) ShowDetails(showID string) (model.ShowDetails, bool) {
	for _, s := range e.shows {
		if s.ShowID != showID {
			continue
		}

		rev := s.Revenue()
		details := model.ShowDetails{
			Show:             s,
			Venue:            model.Venue{ID: s.VenueID, Name: model.UnknownVenueName},
			AvgTicketPrice:   rev.AvgTicketPrice,
			PotentialRevenue: rev.PotentialRevenue,
		}
		for _, v := range e.venues {
			if v.ID == s.VenueID {
				details.Venue = v
				details.VenueFound = true
				break
			}
		}
		return details, true
	}
	return model.ShowDetails{}, false
}
