package linter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/csshint/pkg/observability"
)

// DefaultExtensions are the file extensions collected from directories.
var DefaultExtensions = []string{".css"}

// Runner checks files on disk: it expands directories, drops ignored paths,
// resolves each file's base configuration and checks files concurrently.
type Runner struct {
	Engine  *LintEngine
	Configs *ConfigLoader
	Ignores *IgnoreMatcher
	Logger  *observability.Logger
	Metrics *observability.Metrics
	// MaxWorkers bounds concurrent checks; zero uses GOMAXPROCS.
	MaxWorkers int
	// Overrides are laid over each file's base configuration before inline
	// directives are applied.
	Overrides RuleConfig
	// Explain logs every inline directive at info level.
	Explain bool
}

func (r *Runner) logger() *observability.Logger {
	if r.Logger == nil {
		return observability.NopLogger()
	}
	return r.Logger
}

// Collect expands paths into the sorted list of files to check. Directories
// are walked for DefaultExtensions; explicitly named files are kept
// regardless of extension. Ignored files are dropped.
func (r *Runner) Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		if r.Ignores != nil && r.Ignores.Ignored(path) {
			r.logger().WithField("file", path).Debug("ignored")
			r.Metrics.RecordIgnored()
			return
		}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExtension(p, DefaultExtensions) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Run checks every file under paths and returns results sorted by path.
// Reading or configuration errors abort the run.
func (r *Runner) Run(ctx context.Context, paths []string) ([]*LintResult, error) {
	files, err := r.Collect(paths)
	if err != nil {
		return nil, err
	}

	results := make([]*LintResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	workers := r.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			result, err := r.Check(ctx, string(data), file)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Check checks content as if it were the file at path. The path selects the
// directory configuration and need not exist.
func (r *Runner) Check(ctx context.Context, content, path string) (*LintResult, error) {
	base, err := r.baseConfig(path)
	if err != nil {
		return nil, err
	}
	if r.Explain {
		r.explain(path, content)
	}
	return r.Engine.Lint(ctx, content, path, base), nil
}

func (r *Runner) baseConfig(path string) (RuleConfig, error) {
	var base RuleConfig
	if r.Configs != nil {
		config, err := r.Configs.ForFile(path)
		if err != nil {
			return nil, err
		}
		base = config
	} else {
		base = r.Engine.Registry().Defaults()
	}
	if len(r.Overrides) > 0 {
		base = base.Merge(r.Overrides)
	}
	return base, nil
}

func (r *Runner) explain(path, content string) {
	logger := r.logger().WithField("file", path)
	for _, d := range ParseDirectives(content) {
		entry := logger.WithField("directive", d.Kind.String()).WithField("offset", d.Offset)
		switch {
		case d.Kind == DirectiveDisable && len(d.Rules) == 0:
			entry.Info("disables all rules")
		case d.Kind == DirectiveDisable:
			entry.WithField("rules", strings.Join(d.Rules, ",")).Info("disables rules")
		case d.Valid():
			entry.WithField("values", d.Values).Info("overrides rules")
		default:
			entry.WithField("raw", d.Raw).Warn("ignored malformed directive")
		}
	}
}
