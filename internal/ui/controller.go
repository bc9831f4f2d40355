package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/presenter"
	"github.com/UnknownOlympus/waypoint/internal/service"
)

// Trigger names the user action that started a search.
type Trigger string

const (
	TriggerClick Trigger = "click"
	TriggerEnter Trigger = "enter"
)

// ParseTrigger maps a form value to a Trigger. Unknown values count as a click.
func ParseTrigger(s string) Trigger {
	if Trigger(strings.ToLower(strings.TrimSpace(s))) == TriggerEnter {
		return TriggerEnter
	}

	return TriggerClick
}

// Searcher resolves a query to a location.
type Searcher interface {
	Lookup(ctx context.Context, query string) (*models.Location, error)
}

// Controller wires user actions to the lookup and the presenter.
// Overlapping submissions are not cancelled; whichever resolves last
// determines what the presenter shows.
type Controller struct {
	log       *slog.Logger
	searcher  Searcher
	presenter *presenter.Presenter
	metrics   *metrics.Metrics
}

// NewController creates a Controller.
func NewController(
	log *slog.Logger,
	searcher Searcher,
	presenter *presenter.Presenter,
	metrics *metrics.Metrics,
) *Controller {
	return &Controller{log: log, searcher: searcher, presenter: presenter, metrics: metrics}
}

// Submit handles one search trigger. Every trigger takes the same path, so
// identical input produces an identical outcome. Blank input is reported
// without issuing a lookup.
func (c *Controller) Submit(ctx context.Context, raw string, trigger Trigger) presenter.Snapshot {
	query := strings.TrimSpace(raw)
	c.log.DebugContext(ctx, "Search submitted", "query", query, "trigger", trigger)

	if query == "" {
		c.presenter.ShowEmptyInput()
		return c.presenter.Snapshot()
	}

	c.presenter.BeginSearch()

	loc, err := c.searcher.Lookup(ctx, query)
	switch {
	case err == nil:
		view := c.presenter.ReplaceView(ctx, *loc)
		c.metrics.MapViewsCreated.Inc()
		c.log.InfoContext(ctx, "Location shown", "query", query, "view", view.ID)
	case errors.Is(err, service.ErrEmptyQuery):
		c.presenter.ShowEmptyInput()
	default:
		var lookupErr *service.LookupError
		reason := err.Error()
		if errors.As(err, &lookupErr) {
			reason = lookupErr.Reason
		}
		c.presenter.ShowError(reason)
	}

	return c.presenter.Snapshot()
}

// Snapshot returns the current page state.
func (c *Controller) Snapshot() presenter.Snapshot {
	return c.presenter.Snapshot()
}
