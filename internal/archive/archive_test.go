package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/circusanalytics/internal/model"
)

// setupTestArchive creates a temporary archive for testing.
func setupTestArchive(t *testing.T) *Archive {
	t.Helper()

	a, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	return a
}

// sampleRun returns a run with a small report.
func sampleRun(performers int, at time.Time) *Run {
	return &Run{
		GeneratedAt: at,
		DataDir:     "data",
		InputDigest: "abc123",
		Report: &model.SummaryReport{
			TotalPerformers:  performers,
			ActivePerformers: 1,
			UpcomingShows:    2,
			TotalVenues:      1,
			TotalCapacity:    500,
			Specialties: model.SpecialtyCounts{
				{Specialty: "Juggling", Count: 2},
				{Specialty: "Clown", Count: 1},
			},
			RevenuePotential: []model.ShowRevenue{
				{ShowID: "S1", Title: "Opening Night", PotentialRevenue: 1500},
			},
		},
	}
}

// TestOpen tests archive opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates archive in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "newdir", "subdir")
		a, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open archive: %v", err)
		}
		defer a.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); os.IsNotExist(err) {
			t.Error("archive file was not created")
		}
		if a.Path() != filepath.Join(dir, FileName) {
			t.Errorf("unexpected path %q", a.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateIfNotExists=false opens existing archive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create archive: %v", err)
		}
		_ = a.Close()

		a, err = Open(dir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen archive: %v", err)
		}
		_ = a.Close()
	})
}

// TestDefaultOptions tests the default option values.
func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	if !opts.CreateIfNotExists {
		t.Error("expected CreateIfNotExists to be true")
	}
	if !opts.EnableWAL {
		t.Error("expected EnableWAL to be true")
	}
}

// TestSaveAndGetRun tests the archive round trip.
func TestSaveAndGetRun(t *testing.T) {
	t.Parallel()

	a := setupTestArchive(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	id, err := a.SaveRun(ctx, sampleRun(3, at))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	run, err := a.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}

	if run.ID != id {
		t.Errorf("expected id %d, got %d", id, run.ID)
	}
	if !run.GeneratedAt.Equal(at) {
		t.Errorf("expected %v, got %v", at, run.GeneratedAt)
	}
	if run.DataDir != "data" || run.InputDigest != "abc123" {
		t.Errorf("unexpected metadata %+v", run)
	}
	if run.Report.TotalPerformers != 3 || run.Report.TotalCapacity != 500 {
		t.Errorf("unexpected report %+v", run.Report)
	}
	if len(run.Report.Specialties) != 2 || run.Report.Specialties[0].Specialty != "Juggling" {
		t.Errorf("specialty order not preserved: %+v", run.Report.Specialties)
	}
	if len(run.Report.RevenuePotential) != 1 || run.Report.RevenuePotential[0].PotentialRevenue != 1500 {
		t.Errorf("unexpected revenue %+v", run.Report.RevenuePotential)
	}
}

// TestGetRunNotFound tests the missing-run error.
func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	a := setupTestArchive(t)
	if _, err := a.GetRun(context.Background(), 42); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

// TestSaveRunNilReport tests that a run without report is rejected.
func TestSaveRunNilReport(t *testing.T) {
	t.Parallel()

	a := setupTestArchive(t)
	if _, err := a.SaveRun(context.Background(), &Run{}); !errors.Is(err, ErrNilReport) {
		t.Errorf("expected ErrNilReport, got %v", err)
	}
}

// TestListRuns tests listing archived runs.
func TestListRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns empty list for empty archive", func(t *testing.T) {
		t.Parallel()

		runs, err := setupTestArchive(t).ListRuns(context.Background(), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})

	t.Run("lists newest first and honors the limit", func(t *testing.T) {
		t.Parallel()

		a := setupTestArchive(t)
		ctx := context.Background()
		base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		for i := 1; i <= 3; i++ {
			if _, err := a.SaveRun(ctx, sampleRun(i, base.Add(time.Duration(i)*time.Hour))); err != nil {
				t.Fatalf("failed to save: %v", err)
			}
		}

		all, err := a.ListRuns(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(all))
		}
		if all[0].TotalPerformers != 3 || all[2].TotalPerformers != 1 {
			t.Errorf("expected newest first, got %+v", all)
		}
		if all[0].UpcomingShows != 2 {
			t.Errorf("expected 2 upcoming shows, got %d", all[0].UpcomingShows)
		}

		limited, err := a.ListRuns(ctx, 2)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("expected 2 runs, got %d", len(limited))
		}
	})
}

// TestParseTimestamp tests the timestamp fallbacks.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{"rfc3339 nano", "2025-06-15T09:30:00.123456789Z", false},
		{"sqlite default", "2025-06-15 09:30:00", false},
		{"garbage", "not a time", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseTimestamp(tt.input); got.IsZero() != tt.zero {
				t.Errorf("parseTimestamp(%q) = %v", tt.input, got)
			}
		})
	}
}
