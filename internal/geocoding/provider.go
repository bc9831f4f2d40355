package geocoding

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// Provider is an interface that defines a method for looking up a place.
// The Search method takes a context and a free-text query as input,
// and returns the first matching location or an error if none is found.
type Provider interface {
	Search(ctx context.Context, query string) (*models.Location, error)
}

// Errors shared by all providers.
var (
	ErrNotFound      = errors.New("location not found")
	ErrInvalidCoords = errors.New("provider returned invalid coordinates")
)

// validateCoords rejects non-finite values and points outside ±90 latitude
// or ±180 longitude.
func validateCoords(lat, lon float64) error {
	const maxLat, maxLon = 90, 180

	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.Abs(lat) > maxLat {
		return fmt.Errorf("%w: latitude out of range: %v", ErrInvalidCoords, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.Abs(lon) > maxLon {
		return fmt.Errorf("%w: longitude out of range: %v", ErrInvalidCoords, lon)
	}

	return nil
}
