// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates process level settings from environment
// variables with sensible defaults. Rule configuration lives in .csshintrc
// files and is handled by pkg/linter.
//
// # Configuration Structure
//
// Run settings:
//
//	CSSHINT_MAX_WORKERS="0"        # 0 uses GOMAXPROCS
//	CSSHINT_CACHE_SIZE="256"       # directory config and ignore caches
//	CSSHINT_CACHE_TTL="0s"         # 0 keeps entries until evicted
//	CSSHINT_WATCH_DEBOUNCE="100ms"
//	CSSHINT_SHUTDOWN_TIMEOUT="10s"
//
// Lint service settings (csshint serve):
//
//	CSSHINT_SERVER_ADDR=":8080"
//	CSSHINT_MAX_BODY_BYTES="1048576"
//	CSSHINT_READ_TIMEOUT="10s"
//	CSSHINT_WRITE_TIMEOUT="30s"
//	CSSHINT_RATE_LIMIT="0"   # requests per minute per client, 0 disables
//	CSSHINT_RATE_BURST="10"
//
// Observability settings:
//
//	CSSHINT_LOG_LEVEL="warn"  # debug, info, warn, error
//	CSSHINT_LOG_FORMAT="text" # text, json
//	CSSHINT_METRICS_FILE="/var/lib/node_exporter/csshint.prom"
//	CSSHINT_OTEL_ENABLED="true"
//	CSSHINT_OTEL_ENDPOINT="otel-collector:4317"
//	CSSHINT_OTEL_SAMPLE_RATIO="1" # fraction of root spans kept
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	logger := observability.NewLoggerWithFormat(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stderr)
//	providers, err := observability.InitOTel(ctx, cfg.OTel(), logger)
//
// # Related Packages
//
//   - pkg/observability: Uses observability configuration
//   - pkg/cli: Loads configuration at startup
package config
