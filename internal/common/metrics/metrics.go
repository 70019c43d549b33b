package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"travel-discovery/internal/common/errors"
)

var (
	LoaderFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_fetches_total",
			Help: "Total number of loader fetches by terminal outcome",
		},
		[]string{"resource", "outcome"},
	)

	LoaderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loader_failures_total",
			Help: "Total number of failed loads by error code",
		},
		[]string{"resource", "error_code"},
	)

	LoaderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loader_fetch_duration_seconds",
			Help:    "Duration of a fetch and decode in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	LoadersInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "loaders_in_flight",
			Help: "Number of loaders currently in Loading",
		},
		[]string{"resource"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fetch_cache_hits_total",
			Help: "Total number of fetches served from the response cache",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fetch_cache_misses_total",
			Help: "Total number of fetches that went to the network",
		},
	)
)

// Instrument records every fetch attempt in the package collectors. It
// satisfies loader.Instrument.
type Instrument struct{}

func (Instrument) Start(ctx context.Context, resource, _ string) (context.Context, func(string, error)) {
	started := time.Now()
	LoadersInFlight.WithLabelValues(resource).Inc()

	return ctx, func(outcome string, err error) {
		LoadersInFlight.WithLabelValues(resource).Dec()
		LoaderFetchDuration.WithLabelValues(resource).Observe(time.Since(started).Seconds())
		LoaderFetches.WithLabelValues(resource, outcome).Inc()
		if err != nil {
			LoaderFailures.WithLabelValues(resource, string(errors.Normalize(err).Code)).Inc()
		}
	}
}
