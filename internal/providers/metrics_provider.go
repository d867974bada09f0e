package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rtsd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveUpstreamFetch(source string, duration time.Duration)
	IncUpstreamErrors(source string)
	ObserveSnapshotBuild(duration time.Duration)
	SetLastRefresh(ts time.Time)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	upstreamFetch   *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	snapshotBuild   prometheus.Histogram
	lastRefresh     prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveUpstreamFetch(source string, duration time.Duration) {
	m.upstreamFetch.WithLabelValues(source).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncUpstreamErrors(source string) {
	m.upstreamErrors.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) ObserveSnapshotBuild(duration time.Duration) {
	m.snapshotBuild.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetLastRefresh(ts time.Time) {
	m.lastRefresh.Set(float64(ts.Unix()))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rtsd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rtsd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rtsd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rtsd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		upstreamFetch: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rtsd_upstream_fetch_duration_seconds",
			Help:    "Upstream source fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),

		upstreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rtsd_upstream_errors_total",
			Help: "Total number of failed upstream fetches",
		}, []string{"source"}),

		snapshotBuild: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rtsd_snapshot_build_duration_seconds",
			Help:    "Status snapshot build duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		lastRefresh: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rtsd_last_refresh_timestamp_seconds",
			Help: "Unix time of the last successful snapshot refresh",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveUpstreamFetch(_ string, _ time.Duration)   {}
func (n *noopMetrics) IncUpstreamErrors(_ string)                       {}
func (n *noopMetrics) ObserveSnapshotBuild(_ time.Duration)             {}
func (n *noopMetrics) SetLastRefresh(_ time.Time)                       {}
