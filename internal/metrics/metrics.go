package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsProcessed *prometheus.CounterVec
	GeocoderErrors    prometheus.Counter
	SearchSeconds     *prometheus.HistogramVec
	ExpandedNodes     *prometheus.HistogramVec
	ActiveWorkers     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routing_requests_processed_total",
			Help: "Total number of processed route requests.",
		}, []string{"status"}),
		GeocoderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "routing_geocoder_errors_total",
			Help: "Total number of errors received while geocoding requester addresses.",
		}),
		SearchSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routing_search_duration_seconds",
			Help:    "Duration of a single path search.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"algorithm"}),
		ExpandedNodes: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routing_search_expanded_nodes",
			Help:    "Number of nodes expanded by a single path search.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"algorithm"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "routing_active_workers",
			Help: "Current number of active workers processing route requests.",
		}),
	}
}
