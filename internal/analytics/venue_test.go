package analytics

import (
	"math"
	"testing"

	"github.com/nao1215/circusanalytics/internal/dataset"
	"github.com/nao1215/circusanalytics/internal/model"
)

// TestVenueShowCounts tests the per-venue show histogram.
func TestVenueShowCounts(t *testing.T) {
	t.Parallel()

	t.Run("counts shows per venue id in ascending order", func(t *testing.T) {
		t.Parallel()
		counts := newTestEngine(t, circusDataset(t)).VenueShowCounts()

		expected := []model.VenueShowCount{
			{VenueID: 1, Count: 2},
			{VenueID: 2, Count: 1},
			{VenueID: 9, Count: 1},
		}
		if len(counts) != len(expected) {
			t.Fatalf("expected %d buckets, got %d: %+v", len(expected), len(counts), counts)
		}
		for i := range expected {
			if counts[i] != expected[i] {
				t.Errorf("bucket %d: expected %+v, got %+v", i, expected[i], counts[i])
			}
		}
	})

	t.Run("omits venues without shows", func(t *testing.T) {
		t.Parallel()
		for _, c := range newTestEngine(t, circusDataset(t)).VenueShowCounts() {
			if c.Count == 0 {
				t.Errorf("venue %d has a zero bucket", c.VenueID)
			}
			if c.VenueID == 3 {
				t.Error("venue 3 has no shows and must be omitted")
			}
		}
	})

	t.Run("extreme ids keep ascending order", func(t *testing.T) {
		t.Parallel()
		ds := &dataset.Dataset{Shows: []model.Show{
			{ShowID: "A", VenueID: math.MaxInt},
			{ShowID: "B", VenueID: 1},
			{ShowID: "C", VenueID: math.MinInt},
		}}
		counts := newTestEngine(t, ds).VenueShowCounts()

		expected := []int{math.MinInt, 1, math.MaxInt}
		if len(counts) != len(expected) {
			t.Fatalf("expected %d buckets, got %+v", len(expected), counts)
		}
		for i, id := range expected {
			if counts[i].VenueID != id {
				t.Errorf("bucket %d: expected venue %d, got %d", i, id, counts[i].VenueID)
			}
		}
	})

	t.Run("no shows yields no buckets", func(t *testing.T) {
		t.Parallel()
		ds := &dataset.Dataset{Venues: []model.Venue{{ID: 1, Name: "Empty"}}}
		if counts := newTestEngine(t, ds).VenueShowCounts(); len(counts) != 0 {
			t.Errorf("expected no buckets, got %+v", counts)
		}
	})
}

// TestVenueName tests the venue name join and its fallback.
func TestVenueName(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, circusDataset(t))

	if got := e.VenueName(1); got != "Big Top" {
		t.Errorf("expected Big Top, got %q", got)
	}
	if got := e.VenueName(9); got != "Venue 9" {
		t.Errorf("expected fallback 'Venue 9', got %q", got)
	}
}

// TestRevenueByVenue tests revenue aggregation seeded from the venue list.
func TestRevenueByVenue(t *testing.T) {
	t.Parallel()

	result := newTestEngine(t, circusDataset(t)).RevenueByVenue()

	// Big Top: 1500 + 3000, Side Tent: 1500, Arena: 0. S4 has an unknown venue.
	expected := []model.VenueRevenue{
		{VenueID: 1, Name: "Big Top", Shows: 2, PotentialRevenue: 4500},
		{VenueID: 2, Name: "Side Tent", Shows: 1, PotentialRevenue: 1500},
		{VenueID: 3, Name: "Arena", Shows: 0, PotentialRevenue: 0},
	}
	if len(result) != len(expected) {
		t.Fatalf("expected %d venues, got %d", len(expected), len(result))
	}
	for i := range expected {
		if result[i] != expected[i] {
			t.Errorf("position %d: expected %+v, got %+v", i, expected[i], result[i])
		}
	}
}

// TestShowDetails tests the show lookup joined with its venue.
func TestShowDetails(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, circusDataset(t))

	t.Run("joins the venue", func(t *testing.T) {
		t.Parallel()
		details, ok := e.ShowDetails("S3")
		if !ok {
			t.Fatal("expected S3 to exist")
		}
		if !details.VenueFound || details.Venue.Name != "Big Top" {
			t.Errorf("unexpected venue %+v", details.Venue)
		}
		if details.AvgTicketPrice != 10 || details.PotentialRevenue != 3000 {
			t.Errorf("unexpected revenue %v/%v", details.AvgTicketPrice, details.PotentialRevenue)
		}
	})

	t.Run("unknown venue gets a placeholder", func(t *testing.T) {
		t.Parallel()
		details, ok := e.ShowDetails("S4")
		if !ok {
			t.Fatal("expected S4 to exist")
		}
		if details.VenueFound {
			t.Error("expected VenueFound to be false")
		}
		if details.Venue.Name != model.UnknownVenueName || details.Venue.ID != 9 {
			t.Errorf("unexpected placeholder %+v", details.Venue)
		}
	})

	t.Run("unknown show returns false", func(t *testing.T) {
		t.Parallel()
		if _, ok := e.ShowDetails("nope"); ok {
			t.Error("expected lookup to fail")
		}
	})
}
