package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/platinummonkey/csshint/pkg/linter"
	"github.com/platinummonkey/csshint/pkg/observability"
)

// watcher re-checks stylesheets as they change.
type watcher struct {
	runner   *linter.Runner
	reporter *linter.Reporter
	logger   *observability.Logger
	debounce time.Duration
	// ready is closed once the initial check finished and directories are
	// watched.
	ready chan struct{}
}

// Watch checks paths once, then re-checks changed files until ctx is done.
// Changes to configuration or ignore files purge the caches and re-check
// everything.
func (w *watcher) Watch(ctx context.Context, paths []string) error {
	defer observability.RecoverPanic(w.logger, "watch loop")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	dirs, err := watchDirs(paths)
	if err != nil {
		return err
	}
	scope := newWatchScope(paths)
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.logger.WithField("dirs", len(dirs)).Info("watching for changes")

	if err := w.check(ctx, paths); err != nil {
		return err
	}
	if w.ready != nil {
		close(w.ready)
	}

	debounce := w.debounce
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	pending := make(map[string]bool)
	recheckAll := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("watch error")

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			switch {
			case isSettingsFile(event.Name):
				recheckAll = true
			case scope.includes(event.Name):
				pending[event.Name] = true
			case event.Has(fsnotify.Create):
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !hidden(event.Name) {
					if err := fsw.Add(event.Name); err != nil {
						w.logger.WithError(err).WithField("dir", event.Name).Warn("failed to watch directory")
					}
				}
				continue
			default:
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			targets := paths
			if recheckAll {
				if w.runner.Configs != nil {
					w.runner.Configs.Purge()
				}
				if w.runner.Ignores != nil {
					w.runner.Ignores.Purge()
				}
			} else {
				targets = existing(pending)
			}
			pending = make(map[string]bool)
			recheckAll = false
			if len(targets) == 0 {
				continue
			}
			if err := w.check(ctx, targets); err != nil {
				w.logger.WithError(err).Error("check failed")
			}
		}
	}
}

// check runs and reports one round.
func (w *watcher) check(ctx context.Context, paths []string) error {
	results, err := w.runner.Run(ctx, paths)
	if err != nil {
		return err
	}
	return w.reporter.Report(results)
}

// watchDirs returns every non-hidden directory under paths. Files
// contribute their parent directory. Ancestors holding a configuration or
// ignore file are included too, since those files apply below them.
func watchDirs(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		key := absPath(dir)
		if !seen[key] {
			seen[key] = true
			dirs = append(dirs, dir)
		}
	}

	var starts []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(path))
			starts = append(starts, filepath.Dir(path))
			continue
		}
		starts = append(starts, path)
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if p != path && hidden(p) {
				return filepath.SkipDir
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}
	for _, start := range starts {
		for _, dir := range settingsAncestors(start) {
			add(dir)
		}
	}
	slices.Sort(dirs)
	return dirs, nil
}

// settingsAncestors returns the directories above dir that hold a
// configuration or ignore file.
func settingsAncestors(dir string) []string {
	names := append([]string{linter.IgnoreFileName}, linter.ConfigFileNames...)
	var found []string
	current := absPath(dir)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return found
		}
		current = parent
		for _, name := range names {
			if info, err := os.Stat(filepath.Join(current, name)); err == nil && !info.IsDir() {
				found = append(found, current)
				break
			}
		}
	}
}

// watchScope decides which changed files are checked again: files named on
// the command line whatever their extension, and stylesheets under the
// named directories.
type watchScope struct {
	files map[string]bool
	roots []string
}

func newWatchScope(paths []string) watchScope {
	scope := watchScope{files: make(map[string]bool)}
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			scope.roots = append(scope.roots, absPath(path))
			continue
		}
		scope.files[absPath(path)] = true
	}
	return scope
}

func (s watchScope) includes(path string) bool {
	path = absPath(path)
	if s.files[path] {
		return true
	}
	if !linterExtension(path) {
		return false
	}
	for _, root := range s.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isSettingsFile(path string) bool {
	base := filepath.Base(path)
	return base == linter.IgnoreFileName || slices.Contains(linter.ConfigFileNames, base)
}

func linterExtension(path string) bool {
	return slices.Contains(linter.DefaultExtensions, strings.ToLower(filepath.Ext(path)))
}

// existing returns the sorted pending paths that still exist.
func existing(pending map[string]bool) []string {
	var paths []string
	for path := range pending {
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return paths
}
