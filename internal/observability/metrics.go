package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// FrameFetchDuration observes archive fetch latency for frame files.
	FrameFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "skycat",
			Name:      "frame_fetch_duration_seconds",
			Help:      "Archive fetch duration for frame files in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// FrameCacheHits counts frame requests served from the memo cache.
	FrameCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "skycat",
			Name:      "frame_cache_hits_total",
			Help:      "Frame requests served from the memoization cache",
		},
	)

	// FrameCacheMisses counts frame requests that went to the archive.
	FrameCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "skycat",
			Name:      "frame_cache_misses_total",
			Help:      "Frame requests not found in the memoization cache",
		},
	)

	// QueriesTotal counts SkyServer queries by outcome.
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skycat",
			Name:      "queries_total",
			Help:      "SkyServer queries issued, by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(FrameFetchDuration)
	prometheus.MustRegister(FrameCacheHits)
	prometheus.MustRegister(FrameCacheMisses)
	prometheus.MustRegister(QueriesTotal)
}
