package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for FilesCheckedTotal.
const (
	ResultClean      = "clean"
	ResultIssues     = "issues"
	ResultParseError = "parse_error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	FilesCheckedTotal *prometheus.CounterVec
	DiagnosticsTotal  *prometheus.CounterVec
	CheckDuration     prometheus.Histogram
	FileSizeBytes     prometheus.Histogram
	CapReachedTotal   prometheus.Counter
	IgnoredFilesTotal prometheus.Counter

	ConfigCacheHitsTotal   *prometheus.CounterVec
	ConfigCacheMissesTotal *prometheus.CounterVec

	// HTTP metrics, recorded by the serve command
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics. A nil registry
// gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		FilesCheckedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csshint_files_checked_total",
				Help: "Total number of stylesheets checked",
			},
			[]string{"result"},
		),
		DiagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csshint_diagnostics_total",
				Help: "Total number of diagnostics reported",
			},
			[]string{"rule"},
		),
		CheckDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "csshint_check_duration_seconds",
				Help:    "Time spent checking one stylesheet",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		FileSizeBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "csshint_file_size_bytes",
				Help:    "Size of checked stylesheets in bytes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
		),
		CapReachedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "csshint_max_error_reached_total",
				Help: "Number of files whose diagnostics were cut off by max-error",
			},
		),
		IgnoredFilesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "csshint_files_ignored_total",
				Help: "Number of files skipped by ignore patterns",
			},
		),
		ConfigCacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csshint_cache_hits_total",
				Help: "Directory cache hits",
			},
			[]string{"cache"},
		),
		ConfigCacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csshint_cache_misses_total",
				Help: "Directory cache misses",
			},
			[]string{"cache"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csshint_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "csshint_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "csshint_http_request_size_bytes",
				Help:    "HTTP request body size",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"method", "route"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.FilesCheckedTotal,
		m.DiagnosticsTotal,
		m.CheckDuration,
		m.FileSizeBytes,
		m.CapReachedTotal,
		m.IgnoredFilesTotal,
		m.ConfigCacheHitsTotal,
		m.ConfigCacheMissesTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestSize,
	)

	return m
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCheck records one finished file check.
func (m *Metrics) RecordCheck(result string, size int, duration time.Duration, rules []string, capped bool) {
	if m == nil {
		return
	}
	m.FilesCheckedTotal.WithLabelValues(result).Inc()
	m.CheckDuration.Observe(duration.Seconds())
	m.FileSizeBytes.Observe(float64(size))
	for _, rule := range rules {
		if rule == "" {
			rule = "syntax"
		}
		m.DiagnosticsTotal.WithLabelValues(rule).Inc()
	}
	if capped {
		m.CapReachedTotal.Inc()
	}
}

// RecordIgnored counts a skipped file.
func (m *Metrics) RecordIgnored() {
	if m == nil {
		return
	}
	m.IgnoredFilesTotal.Inc()
}

// RecordCacheLookup counts a hit or miss on a named cache.
func (m *Metrics) RecordCacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.ConfigCacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.ConfigCacheMissesTotal.WithLabelValues(cache).Inc()
}

// WriteToFile writes every metric in the Prometheus text format, for the
// node exporter textfile collector.
func (m *Metrics) WriteToFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics.
// route labels a request; nil uses the URL path.
func HTTPMetricsMiddleware(metrics *Metrics, route func(*http.Request) string) func(http.Handler) http.Handler {
	if route == nil {
		route = func(r *http.Request) string { return r.URL.Path }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			label := route(r)
			if r.ContentLength > 0 {
				metrics.HTTPRequestSize.WithLabelValues(r.Method, label).Observe(float64(r.ContentLength))
			}
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, label, strconv.Itoa(rw.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, label).Observe(time.Since(start).Seconds())
		})
	}
}
