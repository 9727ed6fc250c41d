package observability

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	require.NotNil(t, metrics)
	assert.Same(t, registry, metrics.Registry())
	assert.NotNil(t, NewMetrics(nil).Registry())
}

func TestMetrics_RecordCheck(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordCheck(ResultIssues, 512, 2*time.Millisecond, []string{"ids", "ids", "zero-unit"}, false)
	metrics.RecordCheck(ResultParseError, 10, time.Millisecond, []string{""}, false)
	metrics.RecordCheck(ResultClean, 10, time.Millisecond, nil, true)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FilesCheckedTotal.WithLabelValues(ResultIssues)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FilesCheckedTotal.WithLabelValues(ResultParseError)))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("ids")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("syntax")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CapReachedTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.CheckDuration))
}

func TestMetrics_CacheAndIgnored(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordCacheLookup("config", true)
	metrics.RecordCacheLookup("config", false)
	metrics.RecordCacheLookup("config", false)
	metrics.RecordIgnored()

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ConfigCacheHitsTotal.WithLabelValues("config")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.ConfigCacheMissesTotal.WithLabelValues("config")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.IgnoredFilesTotal))
}

func TestMetrics_NilSafe(t *testing.T) {
	var metrics *Metrics
	assert.NotPanics(t, func() {
		metrics.RecordCheck(ResultClean, 0, 0, nil, false)
		metrics.RecordIgnored()
		metrics.RecordCacheLookup("config", true)
	})
}

func TestMetrics_WriteToFile(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.RecordCheck(ResultIssues, 100, time.Millisecond, []string{"ids"}, false)

	path := filepath.Join(t.TempDir(), "csshint.prom")
	require.NoError(t, metrics.WriteToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `csshint_diagnostics_total{rule="ids"} 1`), string(data))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	handler := HTTPMetricsMiddleware(metrics, func(*http.Request) string { return "/api/v1/rules/{name}" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rules/nope", strings.NewReader("body"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/rules/{name}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestSize))

	// Without a route function the path is the label
	plain := HTTPMetricsMiddleware(metrics, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	plain.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/health/live", "200")))
}

func TestMetricsHandler(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.RecordCheck(ResultClean, 10, time.Millisecond, nil, false)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `csshint_files_checked_total{result="clean"} 1`)
}
