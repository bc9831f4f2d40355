package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
)

var (
	// ErrEmptyQuery is returned when the query is blank; no lookup is attempted.
	ErrEmptyQuery = errors.New("no location provided")
	// ErrLookupFailed matches every *LookupError.
	ErrLookupFailed = errors.New("lookup unsuccessful")
)

// LookupError is the single failure outcome of a lookup. Reason is the
// message meant for the user; Err keeps the provider error for logs.
type LookupError struct {
	Query  string
	Reason string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q failed: %s", e.Query, e.Reason)
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == ErrLookupFailed }

// SearchService runs one provider lookup per call and records its outcome.
type SearchService struct {
	log          *slog.Logger       // Logger for logging service activities
	provider     geocoding.Provider // Geocoding provider for external geocoding services
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking service performance
}

// NewSearchService creates a new instance of SearchService.
func NewSearchService(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
) *SearchService {
	return &SearchService{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
	}
}

// Lookup trims the query and resolves it to the first matching location.
// A blank query returns ErrEmptyQuery without touching the provider. Any
// provider failure is returned as a *LookupError.
func (ss *SearchService) Lookup(ctx context.Context, query string) (*models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		ss.metrics.Lookups.WithLabelValues("empty").Inc()
		return nil, ErrEmptyQuery
	}

	ss.metrics.InFlight.Inc()
	defer ss.metrics.InFlight.Dec()

	startTime := time.Now()
	loc, err := ss.provider.Search(ctx, query)
	duration := time.Since(startTime).Seconds()
	ss.metrics.RequestSeconds.WithLabelValues(ss.providerName).Observe(duration)

	if err != nil {
		ss.log.ErrorContext(ctx, "Failed to look up location", "query", query, "error", err)
		ss.metrics.Lookups.WithLabelValues("failure").Inc()
		return nil, &LookupError{Query: query, Reason: reasonFor(err), Err: err}
	}

	ss.log.DebugContext(ctx, "Location found", "query", query, "name", loc.DisplayName,
		"lat", loc.Latitude, "lon", loc.Longitude)
	ss.metrics.Lookups.WithLabelValues("success").Inc()

	return loc, nil
}

// reasonFor turns a provider error into the text shown to the user.
func reasonFor(err error) string {
	var statusErr *geocoding.StatusError

	switch {
	case errors.Is(err, geocoding.ErrNotFound):
		return "location not found"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("failed to fetch data: %d %s", statusErr.Code, http.StatusText(statusErr.Code))
	case errors.Is(err, geocoding.ErrInvalidCoords):
		return "the geocoding service returned invalid coordinates"
	case errors.Is(err, context.DeadlineExceeded):
		return "the geocoding service did not respond in time"
	case errors.Is(err, context.Canceled):
		return "the search was cancelled"
	default:
		return "the geocoding service is unavailable"
	}
}
