package dataset

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/circusanalytics/internal/model"
)

// Input file names inside the data directory.
const (
	PerformersFile = "performers.json"
	ShowsFile      = "shows.csv"
	VenuesFile     = "venues.yaml"
)

// Dataset is the snapshot of all three inputs.
// It is built once and never modified afterwards.
type Dataset struct {
	Performers []model.Performer
	Shows      []model.Show
	Venues     []model.Venue

	// Dir is the data directory the snapshot was loaded from.
	Dir string

	// Digest is the hex SHA3-256 of the raw input files in load order.
	// It identifies the snapshot in the run archive.
	Digest string
}

// Load reads performers.json, shows.csv and venues.yaml from dir.
// The first failure aborts the load and is returned as a *LoadError,
// *ParseError or *DataError.
func Load(dir string) (*Dataset, error) {
	hash := sha3.New256()

	performersPath := filepath.Join(dir, PerformersFile)
	data, err := readInput(performersPath)
	if err != nil {
		return nil, err
	}
	hash.Write(data)
	performers, err := ParsePerformers(performersPath, data)
	if err != nil {
		return nil, err
	}

	showsPath := filepath.Join(dir, ShowsFile)
	data, err = readInput(showsPath)
	if err != nil {
		return nil, err
	}
	hash.Write(data)
	shows, err := ParseShows(showsPath, data)
	if err != nil {
		return nil, err
	}

	venuesPath := filepath.Join(dir, VenuesFile)
	data, err = readInput(venuesPath)
	if err != nil {
		return nil, err
	}
	hash.Write(data)
	venues, err := ParseVenues(venuesPath, data)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Performers: performers,
		Shows:      shows,
		Venues:     venues,
		Dir:        dir,
		Digest:     hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// readInput reads a whole input file. os.ReadFile releases the handle on
// every path, including read errors.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // data directory is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: fs.ErrNotExist}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return data, nil
}
