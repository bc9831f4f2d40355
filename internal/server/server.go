package server

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/UnknownOlympus/waypoint/internal/presenter"
	"github.com/UnknownOlympus/waypoint/internal/ui"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Controller is the part of ui.Controller the handlers need.
type Controller interface {
	Submit(ctx context.Context, raw string, trigger ui.Trigger) presenter.Snapshot
	Snapshot() presenter.Snapshot
}

// Handlers serves the map page and its JSON API.
type Handlers struct {
	log        *slog.Logger
	controller Controller
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(log *slog.Logger, controller Controller) *Handlers {
	return &Handlers{log: log, controller: controller}
}

// NewRouter registers the page, API, health and metrics endpoints.
func NewRouter(h *Handlers, reg prometheus.Gatherer) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", h.Page).Methods(http.MethodGet)
	router.HandleFunc("/search", h.SearchForm).Methods(http.MethodPost)
	router.HandleFunc("/api/search", h.SearchAPI).Methods(http.MethodGet)
	router.HandleFunc("/api/state", h.State).Methods(http.MethodGet)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return router
}

// pageData is the template input.
type pageData struct {
	presenter.Snapshot

	Query            string
	FocusPlaceholder string
	Examples         string
	ViewJSON         template.JS
}

var examplesJSON = mustJSON(presenter.ExampleLocations)

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return string(raw)
}

// Page renders the current presenter state.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	snap := h.controller.Snapshot()
	data := pageData{
		Snapshot:         snap,
		Query:            r.URL.Query().Get("q"),
		FocusPlaceholder: presenter.FocusPlaceholder,
		Examples:         examplesJSON,
	}

	if snap.View != nil {
		raw, err := json.Marshal(snap.View)
		if err != nil {
			h.log.ErrorContext(r.Context(), "Failed to encode map view", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		data.ViewJSON = template.JS(raw)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to render page", "error", err)
	}
}

// SearchForm handles the search form; the submit button and the Enter key
// both post here. It redirects back to the page.
func (h *Handlers) SearchForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	query := r.PostForm.Get("q")
	h.controller.Submit(r.Context(), query, ui.ParseTrigger(r.PostForm.Get("trigger")))

	http.Redirect(w, r, "/?q="+url.QueryEscape(query), http.StatusSeeOther)
}

// SearchAPI runs a search and returns the resulting state as JSON.
func (h *Handlers) SearchAPI(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	snap := h.controller.Submit(r.Context(), params.Get("q"), ui.ParseTrigger(params.Get("trigger")))

	h.writeJSON(w, r, snap)
}

// State returns the current state as JSON.
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, h.controller.Snapshot())
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to encode response", "error", err)
	}
}
