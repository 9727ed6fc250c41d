package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/csshint/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Check run configuration
	Run RunConfig

	// Lint service configuration
	Server ServerConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// RunConfig holds settings for checking files
type RunConfig struct {
	// MaxWorkers bounds concurrent file checks; zero means GOMAXPROCS.
	MaxWorkers int

	// Configuration and ignore file caches
	CacheSize int
	CacheTTL  time.Duration

	// Watch mode
	WatchDebounce   time.Duration
	ShutdownTimeout time.Duration
}

// ServerConfig holds settings for the serve command
type ServerConfig struct {
	Addr         string
	MaxBodyBytes int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RateLimit is requests per minute per client; zero disables limiting
	RateLimit int
	RateBurst int
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel  observability.LogLevel
	LogFormat observability.LogFormat

	// Metrics are written in the Prometheus text format when set
	MetricsFile string

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
	OTelSampleRatio    float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Run:           loadRunConfig(),
		Server:        loadServerConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadRunConfig loads run configuration from environment
func loadRunConfig() RunConfig {
	return RunConfig{
		MaxWorkers:      getEnvInt("CSSHINT_MAX_WORKERS", 0),
		CacheSize:       getEnvInt("CSSHINT_CACHE_SIZE", 256),
		CacheTTL:        getEnvDuration("CSSHINT_CACHE_TTL", 0),
		WatchDebounce:   getEnvDuration("CSSHINT_WATCH_DEBOUNCE", 100*time.Millisecond),
		ShutdownTimeout: getEnvDuration("CSSHINT_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// loadServerConfig loads lint service configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         getEnv("CSSHINT_SERVER_ADDR", ":8080"),
		MaxBodyBytes: getEnvInt("CSSHINT_MAX_BODY_BYTES", 1<<20),
		ReadTimeout:  getEnvDuration("CSSHINT_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("CSSHINT_WRITE_TIMEOUT", 30*time.Second),
		RateLimit:    getEnvInt("CSSHINT_RATE_LIMIT", 0),
		RateBurst:    getEnvInt("CSSHINT_RATE_BURST", 10),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           parseLogLevel(getEnv("CSSHINT_LOG_LEVEL", "warn")),
		LogFormat:          observability.LogFormat(strings.ToLower(getEnv("CSSHINT_LOG_FORMAT", "text"))),
		MetricsFile:        getEnv("CSSHINT_METRICS_FILE", ""),
		OTelEnabled:        getEnvBool("CSSHINT_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("CSSHINT_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("CSSHINT_OTEL_SERVICE_NAME", "csshint"),
		OTelServiceVersion: getEnv("CSSHINT_OTEL_SERVICE_VERSION", "dev"),
		OTelInsecure:       getEnvBool("CSSHINT_OTEL_INSECURE", true),
		OTelSampleRatio:    getEnvFloat("CSSHINT_OTEL_SAMPLE_RATIO", 1),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Run.MaxWorkers < 0 {
		return fmt.Errorf("max workers must not be negative, got %d", c.Run.MaxWorkers)
	}
	if c.Run.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Run.CacheSize)
	}
	if c.Run.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("rate limit and burst must not be negative")
	}

	switch c.Observability.LogFormat {
	case observability.FormatText, observability.FormatJSON:
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Observability.LogFormat)
	}

	// Validate OpenTelemetry config
	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
		if r := c.Observability.OTelSampleRatio; r < 0 || r > 1 {
			return fmt.Errorf("OpenTelemetry sample ratio must be between 0 and 1, got %g", r)
		}
	}

	return nil
}

// OTel returns the tracing settings in the form observability.InitOTel expects
func (c *Config) OTel() observability.OTelConfig {
	return observability.OTelConfig{
		Enabled:        c.Observability.OTelEnabled,
		Endpoint:       c.Observability.OTelEndpoint,
		ServiceName:    c.Observability.OTelServiceName,
		ServiceVersion: c.Observability.OTelServiceVersion,
		Insecure:       c.Observability.OTelInsecure,
		SampleRatio:    c.Observability.OTelSampleRatio,
	}
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.WarnLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns a float environment variable or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
