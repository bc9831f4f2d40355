package presenter

import (
	"fmt"
	"math"
	"strings"
)

// UnknownCountry is displayed when the provider did not report a country.
const UnknownCountry = "unknown"

// FormatDegrees rounds v to 4 decimal places for display. Ties round away
// from zero, so 1.03125 renders as 1.0313.
func FormatDegrees(v float64) string {
	const scale = 1e4
	return fmt.Sprintf("%.4f°", math.Round(v*scale)/scale)
}

// FormatCoordinates renders a "lat°, lng°" pair.
func FormatCoordinates(lat, lng float64) string {
	return FormatDegrees(lat) + ", " + FormatDegrees(lng)
}

// shortName keeps the first comma separated segment of a display name.
func shortName(displayName string) string {
	name, _, _ := strings.Cut(displayName, ",")
	return strings.TrimSpace(name)
}

func countryOrUnknown(country string) string {
	if strings.TrimSpace(country) == "" {
		return UnknownCountry
	}

	return country
}
