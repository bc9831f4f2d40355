package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Search looks up the query using the Google Maps Geocoding API and returns the first result.
// The display name is the formatted address, the country is taken from the address
// component typed "country" when present.
func (gp *GoogleProvider) Search(ctx context.Context, query string) (*models.Location, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "query", query)

	req := maps.GeocodingRequest{Address: query}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrNotFound
	}
	top := geocodeResponse[0]
	if err = validateCoords(top.Geometry.Location.Lat, top.Geometry.Location.Lng); err != nil {
		return nil, err
	}

	return &models.Location{
		Latitude:    top.Geometry.Location.Lat,
		Longitude:   top.Geometry.Location.Lng,
		DisplayName: top.FormattedAddress,
		Country:     countryOf(top.AddressComponents),
	}, nil
}

func countryOf(components []maps.AddressComponent) string {
	for _, c := range components {
		if slices.Contains(c.Types, "country") {
			return c.LongName
		}
	}

	return ""
}
