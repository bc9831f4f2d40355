package presenter

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// Messages shown in the error panel.
const (
	EmptyInputMessage  = "Please enter a location name"
	ErrorMessagePrefix = "Error: "
	FocusPlaceholder   = "Enter a location name..."
)

// ExampleLocations feed the rotating input placeholder.
var ExampleLocations = []string{
	"Jakarta, Indonesia",
	"Surabaya, Indonesia",
	"Bandung, Indonesia",
	"Bali, Indonesia",
	"Yogyakarta, Indonesia",
	"Medan, Indonesia",
	"Semarang, Indonesia",
	"Makassar, Indonesia",
}

// InfoPanel holds the display strings for the current location.
type InfoPanel struct {
	Name        string `json:"name"`
	Coordinates string `json:"coordinates"`
	Country     string `json:"country"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
}

// Snapshot is a copy of everything the page needs to render.
// Info and View are nil while the map/info panel is hidden.
type Snapshot struct {
	State          State      `json:"state"`
	Placeholder    string     `json:"placeholder"`
	InitialMessage bool       `json:"initial_message"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	Info           *InfoPanel `json:"info,omitempty"`
	View           *MapView   `json:"view,omitempty"`
}

// Presenter owns the single map view and the panels around it.
// It is safe for concurrent use; the last call to resolve wins.
type Presenter struct {
	mu sync.RWMutex

	state       State
	view        *MapView
	info        InfoPanel
	mapVisible  bool
	initial     bool
	errMessage  string
	placeholder string
	nextViewID  uint64

	pick func(n int) int
	log  *slog.Logger
}

// NewPresenter returns a presenter in the Idle state with an example placeholder.
func NewPresenter(log *slog.Logger) *Presenter {
	p := &Presenter{
		state:   StateIdle,
		initial: true,
		pick:    rand.Intn,
		log:     log,
	}
	p.placeholder = p.examplePlaceholder()

	return p
}

// BeginSearch moves to Loading and hides every panel.
func (p *Presenter) BeginSearch() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = StateLoading
	p.mapVisible = false
	p.initial = false
	p.errMessage = ""
}

// ReplaceView discards the current map view, builds a new one centered on
// loc with a single marker and refreshes the info panel.
func (p *Presenter) ReplaceView(ctx context.Context, loc models.Location) *MapView {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.view != nil {
		p.log.DebugContext(ctx, "Discarding map view", "id", p.view.ID)
	}

	p.nextViewID++
	p.view = newMapView(p.nextViewID, loc.Coordinates())
	p.info = InfoPanel{
		Name:        shortName(loc.DisplayName),
		Coordinates: FormatCoordinates(loc.Latitude, loc.Longitude),
		Country:     countryOrUnknown(loc.Country),
		Lat:         FormatDegrees(loc.Latitude),
		Lng:         FormatDegrees(loc.Longitude),
	}
	p.mapVisible = true
	p.initial = false
	p.errMessage = ""
	p.state = StateShown

	p.log.DebugContext(ctx, "Map view created", "id", p.view.ID, "name", p.info.Name)

	view := *p.view
	return &view
}

// ShowError hides the map/info panel and shows reason in the error panel.
func (p *Presenter) ShowError(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.mapVisible = false
	p.initial = false
	p.errMessage = ErrorMessagePrefix + reason
	p.state = StateError
}

// ShowEmptyInput reports a missing query and rotates the example placeholder.
// A visible map stays visible and keeps the Shown state; otherwise the
// presenter moves to Error.
func (p *Presenter) ShowEmptyInput() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.errMessage = EmptyInputMessage
	p.placeholder = p.examplePlaceholder()
	if !p.mapVisible {
		p.state = StateError
	}
}

// Snapshot returns a copy of the current page state.
func (p *Presenter) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := Snapshot{
		State:          p.state,
		Placeholder:    p.placeholder,
		InitialMessage: p.initial,
		ErrorMessage:   p.errMessage,
	}
	if p.mapVisible && p.view != nil {
		info := p.info
		view := *p.view
		snap.Info = &info
		snap.View = &view
	}

	return snap
}

func (p *Presenter) examplePlaceholder() string {
	return "Example: " + ExampleLocations[p.pick(len(ExampleLocations))]
}
