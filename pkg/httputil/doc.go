// Package httputil provides HTTP utilities for the csshint lint service.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, result)
//
// Error responses carry the request ID when RequestIDMiddleware ran:
//
//	httputil.WriteError(w, http.StatusBadRequest, err)
//	httputil.WriteBadRequest(w, "content is required")
//	httputil.WriteNotFoundError(w, "unknown rule")
//
// # Request Parsing
//
// JSON parsing:
//
//	var req CheckRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
// Path and query parameters:
//
//	name, ok := httputil.ParsePathStringOrError(w, r, "name")
//	maxError, err := httputil.ParseQueryInt(r, "max-error", -1)
//	format := httputil.ParseQueryString(r, "format", "json")
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.LoggingMiddleware(logger),
//		httputil.ContentTypeMiddleware("application/json", "text/css"),
//		httputil.MaxBytesMiddleware(1<<20),
//	)
package httputil
