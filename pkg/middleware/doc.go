// Package middleware provides rate limiting for the lint service.
//
// # Overview
//
// Each client address gets a token bucket holding RequestsPerWindow plus
// BurstSize tokens, refilled at RequestsPerWindow per WindowDuration. Buckets
// live in an expiring LRU so idle clients are dropped without a cleanup loop.
//
// # Usage
//
//	limiter := middleware.NewRateLimiter(&middleware.RateLimitConfig{
//		RequestsPerWindow: 600,
//		WindowDuration:    time.Minute,
//		BurstSize:         20,
//	})
//	router.Use(middleware.RateLimitMiddleware(limiter))
//
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset headers. Rejected requests get 429 with Retry-After.
//
// # Related Packages
//
//   - pkg/server: Installs the middleware when CSSHINT_RATE_LIMIT is set
//   - pkg/httputil: Error responses
package middleware
