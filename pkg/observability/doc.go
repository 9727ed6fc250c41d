// Package observability provides structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// # Overview
//
// Logs go to stderr through logrus. Lint counters can be dumped to a
// Prometheus textfile after a run or scraped from /metrics under serve. Each
// file check can be exported as an OTLP span.
//
// # Structured Logging
//
//	logger := observability.NewLoggerWithFormat(observability.InfoLevel, observability.FormatText, os.Stderr)
//	logger.WithField("file", path).Debug("checking")
//
// # Prometheus Metrics
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	metrics.RecordCheck(observability.ResultIssues, len(content), elapsed, rules, false)
//	_ = metrics.WriteToFile("/var/lib/node_exporter/csshint.prom")
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
//		Enabled:     true,
//		Endpoint:    "otel-collector:4317",
//		ServiceName: "csshint",
//		SampleRatio: 0.1,
//	}, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
//
// # Related Packages
//
//   - pkg/config: Observability configuration
//   - pkg/linter: Engine instrumentation
//   - pkg/server: HTTP metrics middleware and /metrics
package observability
