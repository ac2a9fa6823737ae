package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/circusanalytics/internal/model"
)

// FileName is the name of the archive database inside the archive directory.
const FileName = "circusanalytics.db"

// Archive stores generated reports in a SQLite database.
type Archive struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default archive options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the archive in dir.
// If CreateIfNotExists is false and the database doesn't exist, an error
// wrapping ErrNotFound is returned.
func Open(dir string, opts Options) (*Archive, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check archive path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Path returns the database file path.
func (a *Archive) Path() string {
	return a.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (a *Archive) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS report_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		generated_at TEXT NOT NULL,
		data_dir TEXT NOT NULL,
		input_digest TEXT NOT NULL,
		total_performers INTEGER NOT NULL,
		upcoming_shows INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_generated_at ON report_runs(generated_at);
	CREATE INDEX IF NOT EXISTS idx_runs_digest ON report_runs(input_digest);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// Run is one archived report run.
type Run struct {
	// ID is the unique identifier of the run, assigned by SaveRun.
	ID int64

	// GeneratedAt is when the report was computed.
	GeneratedAt time.Time

	// DataDir is the directory the input files were read from.
	DataDir string

	// InputDigest is the hex SHA3-256 digest of the input files.
	InputDigest string

	// Report is the archived summary report.
	Report *model.SummaryReport
}

// RunMetadata summarizes a run without decoding its report.
type RunMetadata struct {
	ID              int64
	GeneratedAt     time.Time
	DataDir         string
	InputDigest     string
	TotalPerformers int
	UpcomingShows   int
}

// SaveRun stores run and returns its new id.
func (a *Archive) SaveRun(ctx context.Context, run *Run) (int64, error) {
	if run == nil || run.Report == nil {
		return 0, ErrNilReport
	}

	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO report_runs (generated_at, data_dir, input_digest, total_performers, upcoming_shows, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := a.db.ExecContext(ctx, query,
		run.GeneratedAt.UTC().Format(time.RFC3339Nano),
		run.DataDir,
		run.InputDigest,
		run.Report.TotalPerformers,
		run.Report.UpcomingShows,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns returns the metadata of the most recent runs, newest first.
// A limit of zero or less returns every run.
func (a *Archive) ListRuns(ctx context.Context, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, generated_at, data_dir, input_digest, total_performers, upcoming_shows
	FROM report_runs
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string

		if err := rows.Scan(
			&meta.ID,
			&timestamp,
			&meta.DataDir,
			&meta.InputDigest,
			&meta.TotalPerformers,
			&meta.UpcomingShows,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		meta.GeneratedAt = parseTimestamp(timestamp)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetRun retrieves a run by id. It returns an error wrapping ErrRunNotFound
// when no run has that id.
func (a *Archive) GetRun(ctx context.Context, id int64) (*Run, error) {
	query := `
	SELECT id, generated_at, data_dir, input_digest, report_json
	FROM report_runs
	WHERE id = ?
	`

	var run Run
	var timestamp, reportJSON string

	err := a.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&timestamp,
		&run.DataDir,
		&run.InputDigest,
		&reportJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.GeneratedAt = parseTimestamp(timestamp)

	var r model.SummaryReport
	if err := json.Unmarshal([]byte(reportJSON), &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	run.Report = &r

	return &run, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // written by SaveRun
	time.RFC3339,              // RFC3339 without fractional seconds
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
