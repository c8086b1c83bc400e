package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/waypost-dev/waypost/pkg/router"
)

// MetricsConfig configures the Prometheus metrics wrapper.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "waypost").
	Namespace string

	// Subsystem is the metrics subsystem (default: "router").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for lookup duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics wrapper.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "waypost",
		Subsystem:   "router",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors for router lookups.
type metrics struct {
	matchesTotal    *prometheus.CounterVec
	matchDuration   prometheus.Histogram
	boundariesTotal *prometheus.CounterVec
}

// globalMetrics is the singleton collector set, created on the first
// Prometheus() call. Registering the same collectors twice would panic,
// so later calls reuse the first configuration.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics registers the router collectors.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		matchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "matches_total",
			Help:        "Total route lookups by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome", "kind"}),

		matchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "match_duration_seconds",
			Help:        "Route lookup duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		boundariesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "boundary_lookups_total",
			Help:        "Total error boundary lookups by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),
	}
}

// GetMetrics returns the initialized collector set, or nil before the
// first Prometheus() call. Exposed for tests and custom recording.
func GetMetrics() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// metricsResolver decorates a Resolver with Prometheus collection.
type metricsResolver struct {
	next router.Resolver
	m    *metrics
}

// Prometheus wraps a resolver so every lookup is counted and timed.
//
// Metrics collected:
//   - waypost_router_matches_total: Counter by outcome (match/no_match)
//     and matched entry kind (page/redirect/none)
//   - waypost_router_match_duration_seconds: Histogram of lookup duration
//   - waypost_router_boundary_lookups_total: Counter by outcome
//
// Expose them the usual way:
//
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(next router.Resolver, opts ...MetricsOption) router.Resolver {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return &metricsResolver{next: next, m: m}
}

// Match implements router.Resolver.
func (r *metricsResolver) Match(path string) (*router.MatchResult, bool) {
	start := time.Now()
	result, ok := r.next.Match(path)
	r.m.matchDuration.Observe(time.Since(start).Seconds())

	if !ok {
		r.m.matchesTotal.WithLabelValues("no_match", "none").Inc()
		return nil, false
	}
	r.m.matchesTotal.WithLabelValues("match", result.Entry.Kind.String()).Inc()
	return result, true
}

// FindBoundary implements router.Resolver.
func (r *metricsResolver) FindBoundary(path string) (*router.ErrorBoundaryEntry, bool) {
	boundary, ok := r.next.FindBoundary(path)
	if ok {
		r.m.boundariesTotal.WithLabelValues("found").Inc()
	} else {
		r.m.boundariesTotal.WithLabelValues("none").Inc()
	}
	return boundary, ok
}
