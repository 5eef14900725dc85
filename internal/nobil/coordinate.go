package nobil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/robho/nobil-etl-service/internal/domain"
)

// ErrMalformedCoordinate marks an unparseable "(lat, long)" position string.
// It is a hard failure for the affected station; the record must be treated
// as corrupt rather than silently defaulted.
var ErrMalformedCoordinate = errors.New("malformed coordinate")

// positionRe matches Nobil's coordinate text encoding: "(lat, long)" with
// optional decimals and an optional leading minus sign on the longitude only.
var positionRe = regexp.MustCompile(`^\((\d+(?:\.\d+)?), *(-?\d+(?:\.\d+)?)\)$`)

// ParseCoordinate decodes a "(lat, long)" position string.
func ParseCoordinate(position string) (domain.Coordinate, error) {
	m := positionRe.FindStringSubmatch(position)
	if m == nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, position)
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, position)
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, position)
	}
	return domain.Coordinate{Lat: lat, Lng: lng}, nil
}

// FormatCoordinate encodes a coordinate in Nobil's "(lat, long)" text form.
// The output round-trips through [ParseCoordinate].
func FormatCoordinate(c domain.Coordinate) string {
	return "(" + strconv.FormatFloat(c.Lat, 'f', -1, 64) +
		", " + strconv.FormatFloat(c.Lng, 'f', -1, 64) + ")"
}
