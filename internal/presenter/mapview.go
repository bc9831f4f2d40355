package presenter

import "github.com/UnknownOlympus/waypoint/internal/models"

// Map defaults used for every new view.
const (
	DefaultZoom     = 15
	TileURLTemplate = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileMaxZoom     = 19
	TileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// TileLayer is the background layer of a map view.
type TileLayer struct {
	URLTemplate string `json:"url_template"`
	MaxZoom     int    `json:"max_zoom"`
	Attribution string `json:"attribution"`
}

// Marker is a point overlay on the map.
type Marker struct {
	Position models.Coordinates `json:"position"`
}

// MapView is one interactive map instance. Views are never updated in place:
// a new search builds a new view with a new ID.
type MapView struct {
	ID          uint64             `json:"id"`
	Center      models.Coordinates `json:"center"`
	Zoom        int                `json:"zoom"`
	Tiles       TileLayer          `json:"tiles"`
	Marker      Marker             `json:"marker"`
	Interactive bool               `json:"interactive"`
}

func newMapView(id uint64, center models.Coordinates) *MapView {
	return &MapView{
		ID:     id,
		Center: center,
		Zoom:   DefaultZoom,
		Tiles: TileLayer{
			URLTemplate: TileURLTemplate,
			MaxZoom:     TileMaxZoom,
			Attribution: TileAttribution,
		},
		Marker:      Marker{Position: center},
		Interactive: true,
	}
}
