package linter

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platinummonkey/csshint/pkg/observability"
)

// IgnoreFileName is the per-directory file listing paths to skip.
const IgnoreFileName = ".csshintignore"

type ignorePattern struct {
	raw  string
	glob glob.Glob
}

// IgnoreMatcher decides which files are skipped. Patterns come from the
// command line and from .csshintignore files in the file's directory and
// its ancestors; the latter are cached per directory and match paths
// relative to the directory holding the ignore file.
type IgnoreMatcher struct {
	extra   []ignorePattern
	cache   *expirable.LRU[string, []ignorePattern]
	metrics *observability.Metrics
}

// NewIgnoreMatcher compiles the given patterns. An invalid pattern is an error.
// A size of zero keeps every directory and a ttl of zero never expires one, so
// the cache only grows for the matcher's lifetime.
func NewIgnoreMatcher(patterns []string, size int, ttl time.Duration) (*IgnoreMatcher, error) {
	if size < 0 {
		size = 0
	}
	m := &IgnoreMatcher{
		cache: expirable.NewLRU[string, []ignorePattern](size, nil, ttl),
	}
	for _, p := range patterns {
		compiled, err := compileIgnore(p)
		if err != nil {
			return nil, err
		}
		m.extra = append(m.extra, compiled...)
	}
	return m, nil
}

// WithMetrics counts cache hits and misses in metrics.
func (m *IgnoreMatcher) WithMetrics(metrics *observability.Metrics) *IgnoreMatcher {
	m.metrics = metrics
	return m
}

// Purge drops every cached ignore file.
func (m *IgnoreMatcher) Purge() {
	m.cache.Purge()
}

// Ignored reports whether path should be skipped.
func (m *IgnoreMatcher) Ignored(path string) bool {
	cleanPath := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)

	for _, p := range m.extra {
		if p.glob.Match(path) || p.glob.Match(cleanPath) || p.glob.Match(base) {
			return true
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	dir := filepath.Dir(abs)
	for {
		rel, err := filepath.Rel(dir, abs)
		if err == nil {
			rel = filepath.ToSlash(rel)
			for _, p := range m.patterns(dir) {
				if p.glob.Match(rel) {
					return true
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

func (m *IgnoreMatcher) patterns(dir string) []ignorePattern {
	if cached, ok := m.cache.Get(dir); ok {
		m.metrics.RecordCacheLookup("ignore", true)
		return cached
	}
	m.metrics.RecordCacheLookup("ignore", false)
	patterns, _ := loadIgnoreFile(filepath.Join(dir, IgnoreFileName))
	m.cache.Add(dir, patterns)
	return patterns
}

// loadIgnoreFile reads one pattern per line. Blank lines, comments and
// invalid patterns are skipped.
func loadIgnoreFile(path string) ([]ignorePattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var patterns []ignorePattern
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		compiled, err := compileIgnore(line)
		if err != nil {
			continue
		}
		patterns = append(patterns, compiled...)
	}
	return patterns, scanner.Err()
}

// compileIgnore expands a gitignore-like pattern into globs: a trailing
// slash matches everything beneath the directory and an unanchored pattern
// also matches at any depth.
func compileIgnore(pattern string) ([]ignorePattern, error) {
	raw := pattern
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	if strings.HasSuffix(pattern, "/") {
		pattern += "**"
	}

	exprs := []string{strings.TrimPrefix(pattern, "/")}
	if !strings.HasPrefix(pattern, "/") && !strings.HasPrefix(pattern, "**/") {
		exprs = append(exprs, "**/"+pattern)
	}

	out := make([]ignorePattern, 0, len(exprs))
	for _, expr := range exprs {
		g, err := glob.Compile(expr, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", raw, err)
		}
		out = append(out, ignorePattern{raw: raw, glob: g})
	}
	return out, nil
}
