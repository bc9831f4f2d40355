package server_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/presenter"
	"github.com/UnknownOlympus/waypoint/internal/server"
	"github.com/UnknownOlympus/waypoint/internal/service"
	"github.com/UnknownOlympus/waypoint/internal/ui"
	"github.com/UnknownOlympus/waypoint/test/mocks"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var jakarta = &models.Location{
	Latitude:    -6.2088,
	Longitude:   106.8456,
	DisplayName: "Jakarta, Indonesia",
	Country:     "Indonesia",
}

func newRouter(t *testing.T) (*mux.Router, *mocks.Provider) {
	t.Helper()
	logger := slog.Default()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	provider := mocks.NewProvider(t)
	svc := service.NewSearchService(logger, provider, "test", m)
	ctrl := ui.NewController(logger, svc, presenter.NewPresenter(logger), m)

	return server.NewRouter(server.NewHandlers(logger, ctrl), reg), provider
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) presenter.Snapshot {
	t.Helper()
	var snap struct {
		State        string               `json:"state"`
		ErrorMessage string               `json:"error_message"`
		Info         *presenter.InfoPanel `json:"info"`
		View         *presenter.MapView   `json:"view"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))

	out := presenter.Snapshot{ErrorMessage: snap.ErrorMessage, Info: snap.Info, View: snap.View}
	for _, s := range []presenter.State{presenter.StateIdle, presenter.StateLoading, presenter.StateShown, presenter.StateError} {
		if s.String() == snap.State {
			out.State = s
		}
	}

	return out
}

func TestPage_Initial(t *testing.T) {
	router, _ := newRouter(t)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<p id="initialMessage" >`)
	assert.Contains(t, body, `<section id="mapInfo" class="hidden">`)
	assert.Contains(t, body, "Example: ")
	for _, example := range presenter.ExampleLocations {
		assert.Contains(t, body, example)
	}
	assert.Contains(t, body, "JSON.parse(input.dataset.examples)")
	assert.NotContains(t, body, "L.map(")
}

func TestSearchForm(t *testing.T) {
	t.Run("success redirects and renders the map", func(t *testing.T) {
		router, provider := newRouter(t)
		provider.On("Search", mock.Anything, "Jakarta, Indonesia").Return(jakarta, nil).Once()

		form := url.Values{"q": {"Jakarta, Indonesia"}, "trigger": {"enter"}}
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?q=Jakarta%2C+Indonesia", rec.Header().Get("Location"))

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?q=Jakarta%2C+Indonesia", nil))

		body := rec.Body.String()
		assert.Contains(t, body, `<h2 id="locationName">Jakarta</h2>`)
		assert.Contains(t, body, "-6.2088°, 106.8456°")
		assert.Contains(t, body, `<span id="country">Indonesia</span>`)
		assert.Contains(t, body, "L.map(")
		assert.Contains(t, body, `<p id="errorMessage" class="hidden">`)
	})

	t.Run("empty input never calls the provider", func(t *testing.T) {
		router, provider := newRouter(t)

		form := url.Values{"q": {"   "}}
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusSeeOther, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Contains(t, rec.Body.String(), presenter.EmptyInputMessage)
		provider.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})
}

func TestSearchAPI(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, provider := newRouter(t)
		provider.On("Search", mock.Anything, "Jakarta, Indonesia").Return(jakarta, nil).Once()
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=Jakarta%2C+Indonesia", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		snap := decodeSnapshot(t, rec)
		assert.Equal(t, presenter.StateShown, snap.State)
		require.NotNil(t, snap.Info)
		assert.Equal(t, "Jakarta", snap.Info.Name)
		assert.Equal(t, "-6.2088°, 106.8456°", snap.Info.Coordinates)
		require.NotNil(t, snap.View)
		assert.Equal(t, presenter.DefaultZoom, snap.View.Zoom)
	})

	t.Run("lookup failure shows the error panel", func(t *testing.T) {
		router, provider := newRouter(t)
		provider.On("Search", mock.Anything, "Atlantis").Return(nil, geocoding.ErrNotFound).Once()
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=Atlantis", nil))

		snap := decodeSnapshot(t, rec)
		assert.Equal(t, presenter.StateError, snap.State)
		assert.Equal(t, "Error: location not found", snap.ErrorMessage)
		assert.Nil(t, snap.Info)
		assert.Nil(t, snap.View)
	})

	t.Run("state reflects the last search", func(t *testing.T) {
		router, provider := newRouter(t)
		provider.On("Search", mock.Anything, "Jakarta").Return(jakarta, nil).Once()

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/search?q=Jakarta", nil))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

		snap := decodeSnapshot(t, rec)
		assert.Equal(t, presenter.StateShown, snap.State)
		require.NotNil(t, snap.View)
		assert.Equal(t, uint64(1), snap.View.ID)
	})
}

func TestSearch_UnusableCoordinatesKeepPageRendering(t *testing.T) {
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"NaN","lon":"Infinity","display_name":"Nowhere"}]`))
	}))
	defer nominatim.Close()

	logger := slog.Default()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	provider := geocoding.NewNominatimProviderWithClient(
		nominatim.Client(), nominatim.URL+"/search", geocoding.DefaultUserAgent, rate.NewLimiter(rate.Inf, 0), logger,
	)
	svc := service.NewSearchService(logger, provider, "nominatim", m)
	ctrl := ui.NewController(logger, svc, presenter.NewPresenter(logger), m)
	router := server.NewRouter(server.NewHandlers(logger, ctrl), reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=Nowhere", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	assert.Equal(t, presenter.StateError, snap.State)
	assert.Nil(t, snap.View)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid coordinates")
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `waypoint_lookups_total{status="empty"} 1`)
}

func TestMethodNotAllowed(t *testing.T) {
	router, _ := newRouter(t)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
