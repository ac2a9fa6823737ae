package dataset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/circusanalytics/internal/model"
)

// venuesDocument is the top-level shape of venues.yaml.
type venuesDocument struct {
	Venues *[]model.Venue `yaml:"venues"`
}

// ParseVenues decodes the contents of venues.yaml.
// path is only used in error messages.
func ParseVenues(path string, data []byte) ([]model.Venue, error) {
	var doc venuesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc.Venues == nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrMissingKey, "venues")}
	}
	for i, v := range *doc.Venues {
		if v.Capacity < 0 {
			return nil, &DataError{
				Path:   path,
				Record: fmt.Sprintf("venue #%d (id %d)", i+1, v.ID),
				Field:  "capacity",
				Value:  fmt.Sprint(v.Capacity),
				Err:    ErrNegativeValue,
			}
		}
	}
	return *doc.Venues, nil
}
