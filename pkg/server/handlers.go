package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/platinummonkey/csshint/pkg/contextkeys"
	"github.com/platinummonkey/csshint/pkg/httputil"
	"github.com/platinummonkey/csshint/pkg/linter"
	"github.com/platinummonkey/csshint/pkg/observability"
)

// DefaultPath names request content that comes without a path.
const DefaultPath = "stdin.css"

// CheckRequest is the JSON body of POST /api/v1/check.
type CheckRequest struct {
	Content string            `json:"content"`
	Path    string            `json:"path,omitempty"`
	Config  linter.RuleConfig `json:"config,omitempty"`
}

// CheckResponse is the JSON result of a check.
type CheckResponse struct {
	RequestID string `json:"requestId,omitempty"`
	*linter.LintResult
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
	Rules     int       `json:"rules,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Version is reported by the readiness probe.
var Version = "dev"

// check lints one stylesheet. A JSON body carries content, path and config
// overrides; a text/css body is the stylesheet itself with the path taken
// from the path query parameter. The format query parameter selects the
// report layout and max-error overrides the budget.
func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	format, err := linter.ParseFormat(httputil.ParseQueryString(r, "format", "json"))
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	maxError, err := httputil.ParseQueryInt(r, "max-error", -1)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	var req CheckRequest
	switch httputil.MediaType(r) {
	case "text/css", "text/plain":
		body, err := httputil.ReadBody(r)
		if err != nil {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		req.Content = string(body)
		req.Path = httputil.ParseQueryString(r, "path", "")
	default:
		if !httputil.ParseJSONOrError(w, r, &req) {
			return
		}
	}
	if req.Path == "" {
		req.Path = DefaultPath
	}

	base := s.base
	if len(req.Config) > 0 {
		base = base.Merge(req.Config)
	}
	if maxError >= 0 {
		base = base.Merge(linter.RuleConfig{linter.MaxErrorKey: maxError})
	}

	result := s.engine.Lint(r.Context(), req.Content, req.Path, base)
	observability.GetLogger(r.Context()).WithFields(map[string]interface{}{
		"file":        result.FilePath,
		"diagnostics": len(result.Diagnostics),
	}).Debug("checked")

	if format == linter.FormatJSON {
		httputil.WriteSuccess(w, CheckResponse{
			RequestID:  contextkeys.GetRequestID(r.Context()),
			LintResult: result,
		})
		return
	}

	var buf bytes.Buffer
	if err := linter.NewReporter(&buf, format).Report([]*linter.LintResult{result}); err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	contentType := "text/plain; charset=utf-8"
	if format == linter.FormatSARIF {
		contentType = "application/sarif+json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// listRules lists every rule with its description and default value.
func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, s.engine.Registry().Summaries())
}

// getRule describes one rule.
func (s *Server) getRule(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}
	rule, found := s.engine.Registry().GetRule(name)
	if !found {
		httputil.WriteNotFoundError(w, fmt.Sprintf("unknown rule %q", name))
		return
	}
	httputil.WriteSuccess(w, rule.Summary())
}

// liveness returns a simple liveness probe (always returns 200 if server is running)
func (s *Server) liveness(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	})
}

// readiness reports 503 once the server started draining.
func (s *Server) readiness(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Version:   Version,
		Rules:     len(s.engine.Registry().Names()),
	}
	code := http.StatusOK
	if !s.ready.Load() {
		status.Status = StatusUnhealthy
		code = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, status)
}
