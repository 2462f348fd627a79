// Package metrics registers the prometheus instruments shared across
// the provider waterfall and the query layer.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ProviderCalls counts outbound vendor calls by provider and outcome
	// (ok, empty, error, breaker_open).
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradescope_provider_calls_total",
			Help: "Outbound provider calls by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	// CacheLookups counts bar-cache lookups by result (hit, miss).
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradescope_cache_lookups_total",
			Help: "Bar cache lookups by result.",
		},
		[]string{"result"},
	)

	// QueryLatency observes query-layer handler latency per endpoint.
	QueryLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradescope_query_latency_seconds",
			Help:    "Query handler latency by endpoint.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// QueryErrors counts query-layer failures per endpoint.
	QueryErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradescope_query_errors_total",
			Help: "Query handler errors by endpoint.",
		},
		[]string{"endpoint"},
	)
)

var registerOnce sync.Once

// Register installs all instruments into the default registry. Safe to
// call from every constructor that depends on them.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ProviderCalls, CacheLookups, QueryLatency, QueryErrors)
	})
}
