package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/csshint/pkg/httputil"
	"github.com/platinummonkey/csshint/pkg/linter"
	"github.com/platinummonkey/csshint/pkg/middleware"
	"github.com/platinummonkey/csshint/pkg/observability"
)

// Server represents the lint API server
type Server struct {
	engine  *linter.LintEngine
	base    linter.RuleConfig
	router  *mux.Router
	handler http.Handler
	ready   atomic.Bool

	logger         *observability.Logger
	metrics        *observability.Metrics
	tracerProvider trace.TracerProvider
	limiter        *middleware.RateLimiter

	maxBodyBytes    int64
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *observability.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records HTTP metrics and exposes them on /metrics.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// WithTracerProvider sets the provider for request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracerProvider = tp
	}
}

// WithRateLimiter limits requests per client address.
func WithRateLimiter(limiter *middleware.RateLimiter) Option {
	return func(s *Server) {
		s.limiter = limiter
	}
}

// WithBaseConfig sets the configuration requests are resolved against.
// Defaults to the registry defaults.
func WithBaseConfig(base linter.RuleConfig) Option {
	return func(s *Server) {
		s.base = base
	}
}

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithTimeouts sets the HTTP read and write timeouts and the time allowed for
// draining requests on shutdown. Zero values keep the defaults.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
	}
}

// NewServer creates a new API server around engine
func NewServer(engine *linter.LintEngine, opts ...Option) *Server {
	s := &Server{
		engine:          engine,
		router:          mux.NewRouter(),
		logger:          observability.NopLogger(),
		maxBodyBytes:    1 << 20,
		readTimeout:     10 * time.Second,
		writeTimeout:    30 * time.Second,
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.base == nil {
		s.base = engine.Registry().Defaults()
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics(nil)
	}
	if s.tracerProvider == nil {
		s.tracerProvider = otel.GetTracerProvider()
	}

	s.setupRoutes()

	middlewares := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
		httputil.LoggingMiddleware(s.logger),
	}
	if s.limiter != nil {
		middlewares = append(middlewares, middleware.RateLimitMiddleware(s.limiter))
	}
	middlewares = append(middlewares,
		httputil.ContentTypeMiddleware("application/json", "text/css", "text/plain"),
		httputil.MaxBytesMiddleware(s.maxBodyBytes),
	)
	chain := httputil.Chain(middlewares...)
	s.handler = otelhttp.NewHandler(chain(s.router), "csshint.http",
		otelhttp.WithTracerProvider(s.tracerProvider),
	)
	s.ready.Store(true)
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/v1/check", s.check).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v1/rules", s.listRules).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v1/rules/{name}", s.getRule).Methods(http.MethodGet)

	s.router.HandleFunc("/health", s.readiness).Methods(http.MethodGet)
	s.router.HandleFunc("/health/live", s.liveness).Methods(http.MethodGet)
	s.router.HandleFunc("/health/ready", s.readiness).Methods(http.MethodGet)

	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFoundError(w, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
	s.router.Use(observability.HTTPMetricsMiddleware(s.metrics, routeTemplate))
}

// routeTemplate labels a request by its matched route.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// SetReady toggles the readiness probe.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Serve accepts connections on ln until ctx is done, then stops accepting,
// reports not ready and drains in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.readTimeout,
		ReadTimeout:       s.readTimeout,
		WriteTimeout:      s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer observability.RecoverPanic(s.logger, "http server")
		errCh <- srv.Serve(ln)
	}()
	s.logger.WithField("addr", ln.Addr().String()).Info("lint service listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to drain requests: %w", err)
	}
	s.logger.Info("lint service stopped")
	return nil
}
