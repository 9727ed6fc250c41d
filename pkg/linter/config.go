package linter

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/csshint/pkg/observability"
)

const (
	// MaxErrorKey is the configuration key of the per-file diagnostic budget.
	MaxErrorKey = "max-error"
	// DefaultMaxErrors is the budget used when no configuration sets one.
	DefaultMaxErrors = 100
)

// ConfigFileNames are the configuration file names searched for, in order of
// preference, in each directory.
var ConfigFileNames = []string{".csshintrc", ".csshintrc.yaml", ".csshintrc.yml", ".csshintrc.json"}

// RuleConfig maps rule names, and max-error, to their configured values.
// Values keep the shapes YAML and JSON decode to: bool, int, float64, string
// and []any.
type RuleConfig map[string]any

// Clone returns a deep copy of the configuration.
func (c RuleConfig) Clone() RuleConfig {
	out := make(RuleConfig, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge returns a new configuration with the keys of other laid over c.
func (c RuleConfig) Merge(other RuleConfig) RuleConfig {
	out := c.Clone()
	for k, v := range other {
		out[k] = cloneValue(v)
	}
	return out
}

// Keys returns the configuration keys in sorted order.
func (c RuleConfig) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MaxErrors returns the diagnostic budget. Anything but a positive number
// means unbounded, reported as zero.
func (c RuleConfig) MaxErrors() int {
	n, ok := ToInt(c[MaxErrorKey])
	if !ok || n <= 0 {
		return 0
	}
	return n
}

// Truthy reports whether a configuration value enables its rule.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	default:
		if n, ok := toFloat(v); ok {
			return n != 0 && !math.IsNaN(n)
		}
		return true
	}
}

// ToInt converts a numeric configuration value to an int. Fractions are
// truncated.
func ToInt(v any) (int, bool) {
	n, ok := toFloat(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return int(n), true
}

// ToStrings converts a list-valued configuration value to strings. A single
// string is treated as a one-element list; non-string elements are skipped.
func ToStrings(v any) ([]string, bool) {
	switch val := v.(type) {
	case string:
		return []string{val}, true
	case []string:
		return append([]string(nil), val...), true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// LoadConfig loads a configuration file. JSON files are read with the YAML
// decoder, which accepts them unchanged.
func LoadConfig(path string) (RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := RuleConfig{}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config RuleConfig, path string) error {
	data, err := yaml.Marshal(map[string]any(config))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FindConfigFile returns the nearest configuration file at or above dir.
func FindConfigFile(dir string) (string, bool) {
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ConfigLoader resolves the base configuration for files: the registry
// defaults overlaid with the nearest configuration file. Results are cached
// per directory. With a size and ttl of zero the cache is append-only: an
// rc file edited after its directory was first resolved is not reread.
type ConfigLoader struct {
	defaults RuleConfig
	explicit RuleConfig
	cache    *expirable.LRU[string, RuleConfig]
	metrics  *observability.Metrics
}

// NewConfigLoader creates a loader caching up to size directories for ttl. A
// size of zero is unbounded and a ttl of zero never expires entries.
func NewConfigLoader(defaults RuleConfig, size int, ttl time.Duration) *ConfigLoader {
	if size < 0 {
		size = 0
	}
	return &ConfigLoader{
		defaults: defaults.Clone(),
		cache:    expirable.NewLRU[string, RuleConfig](size, nil, ttl),
	}
}

// WithMetrics counts cache hits and misses in metrics.
func (l *ConfigLoader) WithMetrics(metrics *observability.Metrics) *ConfigLoader {
	l.metrics = metrics
	return l
}

// UseFile makes every file resolve against the configuration at path instead
// of searching directories.
func (l *ConfigLoader) UseFile(path string) error {
	config, err := LoadConfig(path)
	if err != nil {
		return err
	}
	l.explicit = l.defaults.Merge(config)
	l.cache.Purge()
	return nil
}

// Purge drops every cached directory configuration.
func (l *ConfigLoader) Purge() {
	l.cache.Purge()
}

// ForFile returns the base configuration for the file at path. The returned
// map is shared and must not be modified.
func (l *ConfigLoader) ForFile(path string) (RuleConfig, error) {
	if l.explicit != nil {
		return l.explicit, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return l.ForDir(filepath.Dir(abs))
}

// ForDir returns the base configuration for files in dir.
func (l *ConfigLoader) ForDir(dir string) (RuleConfig, error) {
	if config, ok := l.cache.Get(dir); ok {
		l.metrics.RecordCacheLookup("config", true)
		return config, nil
	}
	l.metrics.RecordCacheLookup("config", false)

	config := l.defaults
	if path, ok := FindConfigFile(dir); ok {
		loaded, err := LoadConfig(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		config = l.defaults.Merge(loaded)
	}

	l.cache.Add(dir, config)
	return config, nil
}
