// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus instruments for lookups, key rotation
// and open panels.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the stackfind instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	LookupsTotal   *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	KeyRotations   *prometheus.CounterVec
	OpenPanels     prometheus.Gauge
}

// New registers the instruments on reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stackfind_lookups_total",
				Help: "Total number of lookups by terminal outcome",
			},
			[]string{"outcome"},
		),
		SearchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stackfind_search_duration_seconds",
				Help:    "Stack Exchange search request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"status"},
		),
		KeyRotations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stackfind_key_rotations_total",
				Help: "Number of times each key pool index was dispensed",
			},
			[]string{"index"},
		),
		OpenPanels: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "stackfind_open_panels",
				Help: "Number of panels currently held by the serve bridge",
			},
		),
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordLookup counts a finished lookup by its terminal outcome.
func (m *Metrics) RecordLookup(outcome string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordSearch observes one Stack Exchange request; status is "ok" or the
// error kind.
func (m *Metrics) RecordSearch(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SearchDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordKeyRotation counts a key handed out at pool index.
func (m *Metrics) RecordKeyRotation(index string) {
	if m == nil {
		return
	}
	m.KeyRotations.WithLabelValues(index).Inc()
}

// SetOpenPanels sets the open panel gauge to n.
func (m *Metrics) SetOpenPanels(n int) {
	if m == nil {
		return
	}
	m.OpenPanels.Set(float64(n))
}
