package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/circusanalytics/internal/model"
)

const (
	testPerformersJSON = `{"performers":[
  {"id":1,"name":"Ava","active":true,"specialty":"Aerialist"},
  {"id":2,"name":"Bo","active":false}
]}`
	testShowsCSV = `show_id,title,venue_id,start_date,ticket_price_min,ticket_price_max,capacity
S1,Night Flight,1,2099-01-01,10,30,100
`
	testVenuesYAML = `venues:
  - id: 1
    name: Big Top
    capacity: 500
`
)

// writeDataDir creates a data directory holding the given files.
func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// validFiles returns a fresh copy of a minimal valid input set.
func validFiles() map[string]string {
	return map[string]string{
		PerformersFile: testPerformersJSON,
		ShowsFile:      testShowsCSV,
		VenuesFile:     testVenuesYAML,
	}
}

// TestLoad tests loading a complete data directory.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads all three sources", func(t *testing.T) {
		t.Parallel()

		dir := writeDataDir(t, validFiles())
		ds, err := Load(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(ds.Performers) != 2 {
			t.Errorf("expected 2 performers, got %d", len(ds.Performers))
		}
		if len(ds.Shows) != 1 {
			t.Errorf("expected 1 show, got %d", len(ds.Shows))
		}
		if len(ds.Venues) != 1 {
			t.Errorf("expected 1 venue, got %d", len(ds.Venues))
		}
		if ds.Dir != dir {
			t.Errorf("expected Dir %q, got %q", dir, ds.Dir)
		}
	})

	t.Run("decodes performer defaults", func(t *testing.T) {
		t.Parallel()

		ds, err := Load(writeDataDir(t, validFiles()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		bo := ds.Performers[1]
		if bo.Active {
			t.Error("missing active field must decode to false")
		}
		if bo.HasSpecialty() {
			t.Errorf("expected no specialty, got %q", bo.Specialty)
		}
	})

	t.Run("digest is stable for identical inputs", func(t *testing.T) {
		t.Parallel()

		a, err := Load(writeDataDir(t, validFiles()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := Load(writeDataDir(t, validFiles()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Digest != b.Digest {
			t.Errorf("expected equal digests, got %s and %s", a.Digest, b.Digest)
		}
		if len(a.Digest) != 64 {
			t.Errorf("expected 64 hex characters, got %d", len(a.Digest))
		}
	})

	t.Run("digest changes with input", func(t *testing.T) {
		t.Parallel()

		files := validFiles()
		a, err := Load(writeDataDir(t, files))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		files[VenuesFile] = strings.Replace(testVenuesYAML, "500", "600", 1)
		b, err := Load(writeDataDir(t, files))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Digest == b.Digest {
			t.Error("expected different digests")
		}
	})

	for _, missing := range []string{PerformersFile, ShowsFile, VenuesFile} {
		missing := missing
		t.Run("missing "+missing+" returns LoadError", func(t *testing.T) {
			t.Parallel()

			files := validFiles()
			delete(files, missing)
			_, err := Load(writeDataDir(t, files))

			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected LoadError, got %T: %v", err, err)
			}
			if filepath.Base(loadErr.Path) != missing {
				t.Errorf("expected path to name %s, got %s", missing, loadErr.Path)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("expected fs.ErrNotExist, got %v", err)
			}
		})
	}
}

// TestParsePerformers tests performers.json decoding.
func TestParsePerformers(t *testing.T) {
	t.Parallel()

	t.Run("missing performers key returns LoadError", func(t *testing.T) {
		t.Parallel()

		_, err := ParsePerformers("performers.json", []byte(`{"people":[]}`))
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("expected LoadError, got %T: %v", err, err)
		}
		if !errors.Is(err, ErrMissingKey) {
			t.Errorf("expected ErrMissingKey, got %v", err)
		}
	})

	t.Run("empty performers array is valid", func(t *testing.T) {
		t.Parallel()

		performers, err := ParsePerformers("performers.json", []byte(`{"performers":[]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(performers) != 0 {
			t.Errorf("expected no performers, got %d", len(performers))
		}
	})

	t.Run("malformed JSON returns ParseError with line", func(t *testing.T) {
		t.Parallel()

		_, err := ParsePerformers("performers.json", []byte("{\n\"performers\": [\n{\"id\": 1,,}\n]}"))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %T: %v", err, err)
		}
		if parseErr.Line != 3 {
			t.Errorf("expected line 3, got %d", parseErr.Line)
		}
		if !strings.Contains(err.Error(), "performers.json") {
			t.Errorf("expected error to name the file, got %q", err.Error())
		}
	})

	t.Run("wrong value type returns ParseError", func(t *testing.T) {
		t.Parallel()

		_, err := ParsePerformers("performers.json", []byte(`{"performers":[{"id":1,"active":"yes"}]}`))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %T: %v", err, err)
		}
	})

	t.Run("null specialty decodes as empty", func(t *testing.T) {
		t.Parallel()

		performers, err := ParsePerformers("performers.json", []byte(`{"performers":[{"id":1,"specialty":null}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if performers[0].HasSpecialty() {
			t.Error("expected null specialty to be absent")
		}
	})

	t.Run("string and numeric ids are both accepted", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"performers":[{"id":"P001","name":"Ava"},{"id":42,"name":"Bo"},{"id":null,"name":"Cy"}]}`)
		performers, err := ParsePerformers("performers.json", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []model.PerformerID{"P001", "42", ""}
		for i, p := range performers {
			if p.ID != want[i] {
				t.Errorf("position %d: expected id %q, got %q", i, want[i], p.ID)
			}
		}
	})

	t.Run("object id returns ParseError", func(t *testing.T) {
		t.Parallel()

		_, err := ParsePerformers("performers.json", []byte(`{"performers":[{"id":{"n":1}}]}`))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %T: %v", err, err)
		}
	})
}

// TestParseShows tests shows.csv decoding and the numeric policy.
func TestParseShows(t *testing.T) {
	t.Parallel()

	const header = "show_id,title,venue_id,start_date,ticket_price_min,ticket_price_max,capacity\n"

	t.Run("decodes every column", func(t *testing.T) {
		t.Parallel()

		shows, err := ParseShows("shows.csv", []byte(testShowsCSV))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := shows[0]
		if s.ShowID != "S1" || s.Title != "Night Flight" || s.VenueID != 1 {
			t.Errorf("unexpected identity: %+v", s)
		}
		if s.StartDate.String() != "2099-01-01" {
			t.Errorf("unexpected start date %s", s.StartDate)
		}
		if s.TicketPriceMin != 10 || s.TicketPriceMax != 30 || s.Capacity != 100 {
			t.Errorf("unexpected numbers: %+v", s)
		}
	})

	t.Run("columns may appear in any order with extras", func(t *testing.T) {
		t.Parallel()

		data := "capacity,notes,title,show_id,ticket_price_max,ticket_price_min,start_date,venue_id\n" +
			"80,sold out,Clowns,S9,20,10,2030-05-05,3\n"
		shows, err := ParseShows("shows.csv", []byte(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if shows[0].ShowID != "S9" || shows[0].Capacity != 80 || shows[0].VenueID != 3 {
			t.Errorf("unexpected show: %+v", shows[0])
		}
	})

	t.Run("empty numeric cells default to zero", func(t *testing.T) {
		t.Parallel()

		shows, err := ParseShows("shows.csv", []byte(header+"S2,Free Show,1,2030-01-01,,,\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := shows[0]
		if s.TicketPriceMin != 0 || s.TicketPriceMax != 0 || s.Capacity != 0 {
			t.Errorf("expected zeros, got %+v", s)
		}
	})

	t.Run("integral float capacity is accepted", func(t *testing.T) {
		t.Parallel()

		shows, err := ParseShows("shows.csv", []byte(header+"S3,T,1,2030-01-01,1,2,150.0\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if shows[0].Capacity != 150 {
			t.Errorf("expected 150, got %d", shows[0].Capacity)
		}
	})

	dataErrorCases := []struct {
		name  string
		row   string
		field string
		cause error
	}{
		{"non-numeric price", "S4,T,1,2030-01-01,cheap,30,100", ColumnTicketPriceMin, ErrNotNumeric},
		{"negative price", "S4,T,1,2030-01-01,10,-30,100", ColumnTicketPriceMax, ErrNegativeValue},
		{"negative capacity", "S4,T,1,2030-01-01,10,30,-1", ColumnCapacity, ErrNegativeValue},
		{"fractional capacity", "S4,T,1,2030-01-01,10,30,10.5", ColumnCapacity, ErrNotInteger},
		{"non-numeric capacity", "S4,T,1,2030-01-01,10,30,many", ColumnCapacity, ErrNotNumeric},
		{"missing venue id", "S4,T,,2030-01-01,10,30,100", ColumnVenueID, ErrRequiredValue},
		{"non-integer venue id", "S4,T,one,2030-01-01,10,30,100", ColumnVenueID, ErrNotInteger},
		{"missing start date", "S4,T,1,,10,30,100", ColumnStartDate, ErrRequiredValue},
	}
	for _, tc := range dataErrorCases {
		tc := tc
		t.Run(tc.name+" returns DataError", func(t *testing.T) {
			t.Parallel()

			_, err := ParseShows("shows.csv", []byte(header+tc.row+"\n"))
			var dataErr *DataError
			if !errors.As(err, &dataErr) {
				t.Fatalf("expected DataError, got %T: %v", err, err)
			}
			if dataErr.Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, dataErr.Field)
			}
			if !errors.Is(err, tc.cause) {
				t.Errorf("expected cause %v, got %v", tc.cause, err)
			}
			if dataErr.Record != "line 2" {
				t.Errorf("expected record 'line 2', got %q", dataErr.Record)
			}
		})
	}

	t.Run("unparsable date returns DataError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseShows("shows.csv", []byte(header+"S5,T,1,01/02/2030,10,30,100\n"))
		var dataErr *DataError
		if !errors.As(err, &dataErr) {
			t.Fatalf("expected DataError, got %T: %v", err, err)
		}
		if dataErr.Field != ColumnStartDate {
			t.Errorf("expected start_date field, got %s", dataErr.Field)
		}
	})

	t.Run("missing column returns LoadError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseShows("shows.csv", []byte("show_id,title,venue_id,start_date\nS1,T,1,2030-01-01\n"))
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("expected LoadError, got %T: %v", err, err)
		}
		if !errors.Is(err, ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
		if !strings.Contains(err.Error(), "ticket_price_min") {
			t.Errorf("expected error to name the column, got %q", err.Error())
		}
	})

	t.Run("empty file returns LoadError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseShows("shows.csv", nil)
		if !errors.Is(err, ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})

	t.Run("ragged row returns ParseError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseShows("shows.csv", []byte(header+"S6,T,1\n"))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %T: %v", err, err)
		}
		if parseErr.Line != 2 {
			t.Errorf("expected line 2, got %d", parseErr.Line)
		}
	})

	t.Run("header only yields no shows", func(t *testing.T) {
		t.Parallel()

		shows, err := ParseShows("shows.csv", []byte(header))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(shows) != 0 {
			t.Errorf("expected no shows, got %d", len(shows))
		}
	})
}

// TestParseVenues tests venues.yaml decoding.
func TestParseVenues(t *testing.T) {
	t.Parallel()

	t.Run("missing capacity defaults to zero", func(t *testing.T) {
		t.Parallel()

		venues, err := ParseVenues("venues.yaml", []byte("venues:\n  - id: 2\n    name: Tent\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if venues[0].Capacity != 0 || venues[0].Name != "Tent" {
			t.Errorf("unexpected venue: %+v", venues[0])
		}
	})

	t.Run("missing venues key returns LoadError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseVenues("venues.yaml", []byte("places: []\n"))
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("expected LoadError, got %T: %v", err, err)
		}
		if !errors.Is(err, ErrMissingKey) {
			t.Errorf("expected ErrMissingKey, got %v", err)
		}
	})

	t.Run("malformed YAML returns ParseError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseVenues("venues.yaml", []byte("venues: [\n  - id: 1\n"))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %T: %v", err, err)
		}
	})

	t.Run("non-integer capacity returns ParseError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseVenues("venues.yaml", []byte("venues:\n  - id: 1\n    capacity: lots\n"))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %T: %v", err, err)
		}
	})

	t.Run("non-integer venue id returns ParseError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseVenues("venues.yaml", []byte("venues:\n  - id: V01\n    name: Big Top\n"))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError, got %T: %v", err, err)
		}
	})

	t.Run("negative capacity returns DataError", func(t *testing.T) {
		t.Parallel()

		_, err := ParseVenues("venues.yaml", []byte("venues:\n  - id: 1\n    capacity: -5\n"))
		if !errors.Is(err, ErrNegativeValue) {
			t.Errorf("expected ErrNegativeValue, got %v", err)
		}
	})
}
