// Package metrics exposes Prometheus counters for the calculation
// pipeline. Everything is registered on the default registry; main
// mounts promhttp on /metrics when enabled.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CalculationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foerderrechner_calculations_total",
		Help: "Number of calculation requests served.",
	})

	EmptyResultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foerderrechner_calculations_empty_total",
		Help: "Calculation requests where no program matched the region.",
	})

	MatchesPerQuery = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "foerderrechner_matches_per_query",
		Help:    "Matching programs per calculation request.",
		Buckets: []float64{0, 1, 2, 4, 8, 16},
	})

	CatalogReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foerderrechner_catalog_reloads_total",
		Help: "Catalog reloads by outcome.",
	}, []string{"outcome"})

	CatalogPrograms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foerderrechner_catalog_programs",
		Help: "Programs in the active catalog snapshot.",
	})
)

// Handler returns the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
