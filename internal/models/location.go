package models

// Location is a single geocoding match for a free-text query.
type Location struct {
	Latitude    float64 // Latitude of the matched place.
	Longitude   float64 // Longitude of the matched place.
	DisplayName string  // DisplayName is the full name reported by the provider.
	Country     string  // Country is empty when the provider did not report one.
}
