package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Lookups         *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	InFlight        prometheus.Gauge
	MapViewsCreated prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "waypoint_lookups_total",
			Help: "Total number of location lookups by outcome.",
		}, []string{"status"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "waypoint_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		InFlight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "waypoint_lookups_in_flight",
			Help: "Current number of lookups waiting for the provider.",
		}),
		MapViewsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "waypoint_map_views_created_total",
			Help: "Total number of map views constructed after a successful lookup.",
		}),
	}
}
