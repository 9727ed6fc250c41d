// Package server exposes the lint engine over HTTP.
//
// # Endpoints
//
//	POST /api/v1/check          lint one stylesheet
//	GET  /api/v1/rules          list rules and their defaults
//	GET  /api/v1/rules/{name}   describe one rule
//	GET  /health/live           liveness probe
//	GET  /health/ready          readiness probe, 503 while draining
//	GET  /metrics               Prometheus metrics
//
// A check request is either JSON:
//
//	{"content": "a{color:red}", "path": "app.css", "config": {"ids": false}}
//
// or a text/css body with the path in the query string:
//
//	curl --data-binary @app.css -H 'Content-Type: text/css' \
//		'localhost:8080/api/v1/check?path=app.css&format=text'
//
// Request config is laid over the server's base configuration; inline
// directives in the content apply on top as they do on the command line.
// format selects json (the default), text, github or sarif. max-error
// overrides the diagnostic budget.
//
// Every request carries an X-Request-ID, gets an OpenTelemetry span and is
// counted in the csshint_http_* metrics. WithRateLimiter adds a per-client
// token bucket; rejected requests get 429.
package server
