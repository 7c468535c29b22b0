// Package observability holds the service's Prometheus collectors. All
// collectors are created once at package init (via promauto, registering
// against prometheus.DefaultRegisterer) and additionally exposed through
// Init for tests that want them scraped off a private registry.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"method", "route", "status"},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information for the binary.",
		},
		[]string{"version"},
	)

	codecOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codec_ops_total",
			Help: "Grid codec operations by kind and outcome.",
		},
		[]string{"op", "result"},
	)

	codecDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codec_op_duration_seconds",
			Help:    "Duration of grid codec operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"op"},
	)

	rangeQueryCandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "range_query_candidates_total",
			Help: "Candidate cells tested during range queries, by strategy.",
		},
		[]string{"strategy"},
	)

	rangeQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "range_query_duration_seconds",
			Help:    "Duration of range queries in seconds, by strategy.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"strategy"},
	)

	cacheOpTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_op_total",
			Help: "Cache operations by kind and outcome.",
		},
		[]string{"op", "result"},
	)

	cacheOpDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_op_duration_seconds",
			Help:    "Duration of cache operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
		[]string{"op"},
	)

	cacheResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_results_total",
			Help: "Range-query cache lookups by outcome (hit/miss), by tier.",
		},
		[]string{"tier", "outcome"},
	)
)

// Init resets every collector to zero and additionally registers it against
// reg, so a test (or an embedder) can scrape fresh counts off a private
// registry instead of the global default one that promauto used at package
// init.
func Init(reg prometheus.Registerer, _ bool) {
	for _, v := range []interface{ Reset() }{
		httpRequestsTotal, httpRequestDurationSeconds, buildInfo,
		codecOpsTotal, codecDurationSeconds,
		rangeQueryCandidatesTotal, rangeQueryDurationSeconds,
		cacheOpTotal, cacheOpDurationSeconds, cacheResultsTotal,
	} {
		v.Reset()
	}
	for _, c := range []prometheus.Collector{
		httpRequestsTotal, httpRequestDurationSeconds, buildInfo,
		codecOpsTotal, codecDurationSeconds,
		rangeQueryCandidatesTotal, rangeQueryDurationSeconds,
		cacheOpTotal, cacheOpDurationSeconds, cacheResultsTotal,
	} {
		_ = reg.Register(c)
	}
}

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}

// ObserveCodecOp records one encode/decode/children call. op is e.g.
// "encode2d", "decode3d", "children".
func ObserveCodecOp(op string, err error, durationSeconds float64) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	codecOpsTotal.WithLabelValues(op, result).Inc()
	codecDurationSeconds.WithLabelValues(op).Observe(durationSeconds)
}

// ObserveRangeQuery records one range-query call and the number of
// candidate cells it tested.
func ObserveRangeQuery(strategy string, candidates int, durationSeconds float64) {
	rangeQueryCandidatesTotal.WithLabelValues(strategy).Add(float64(candidates))
	rangeQueryDurationSeconds.WithLabelValues(strategy).Observe(durationSeconds)
}

func ObserveCacheOp(op string, err error, durationSeconds float64) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	cacheOpTotal.WithLabelValues(op, result).Inc()
	cacheOpDurationSeconds.WithLabelValues(op).Observe(durationSeconds)
}

func IncCacheHit(tier string)  { cacheResultsTotal.WithLabelValues(tier, "hit").Inc() }
func IncCacheMiss(tier string) { cacheResultsTotal.WithLabelValues(tier, "miss").Inc() }

// AddCacheHits/AddCacheMisses record a batch of MGET-style lookups tallied
// under the redis tier in one call.
func AddCacheHits(n int) {
	cacheResultsTotal.WithLabelValues("redis", "hit").Add(float64(n))
}

func AddCacheMisses(n int) {
	cacheResultsTotal.WithLabelValues("redis", "miss").Add(float64(n))
}
