package linter

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/csshint/pkg/observability"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0, false},
		{0.0, false},
		{3, true},
		{2.5, true},
		{"", false},
		{"x", true},
		{[]any{}, false},
		{[]any{"a"}, true},
		{[]string{"a"}, true},
		{map[string]any{}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Truthy(tt.value), "%#v", tt.value)
	}
}

func TestRuleConfig_MaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 5, 5},
		{"float from json", float64(7), 7},
		{"zero is unbounded", 0, 0},
		{"negative is unbounded", -3, 0},
		{"string is unbounded", "10", 0},
		{"false is unbounded", false, 0},
		{"absent is unbounded", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := RuleConfig{}
			if tt.value != nil {
				config[MaxErrorKey] = tt.value
			}
			assert.Equal(t, tt.want, config.MaxErrors())
		})
	}
}

func TestRuleConfig_CloneAndMerge(t *testing.T) {
	base := RuleConfig{"a": true, "list": []any{"x"}}

	clone := base.Clone()
	clone["list"].([]any)[0] = "changed"
	assert.Equal(t, "x", base["list"].([]any)[0])

	merged := base.Merge(RuleConfig{"a": false, "b": 2})
	assert.Equal(t, RuleConfig{"a": false, "b": 2, "list": []any{"x"}}, merged)
	assert.Equal(t, true, base["a"])
}

func TestToStrings(t *testing.T) {
	got, ok := ToStrings([]any{"a", 1, "b"})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	got, ok = ToStrings("single")
	require.True(t, ok)
	assert.Equal(t, []string{"single"}, got)

	_, ok = ToStrings(true)
	assert.False(t, ok)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "rc.yaml")
		writeFile(t, path, "max-error: 5\nids: false\nrequire-after-space:\n  - \":\"\n")

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 5, config[MaxErrorKey])
		assert.Equal(t, false, config["ids"])
		assert.Equal(t, []any{":"}, config["require-after-space"])
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "rc.json")
		writeFile(t, path, `{"max-length": 80, "ids": true}`)

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 80, config["max-length"])
		assert.Equal(t, true, config["ids"])
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "ids: [unclosed\n")

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".csshintrc.yaml")
	require.NoError(t, SaveConfig(RuleConfig{"ids": true, MaxErrorKey: 10}, path))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, RuleConfig{"ids": true, MaxErrorKey: 10}, config)
}

func TestConfigLoader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".csshintrc"), "every-rule: false\nmax-error: 3\n")
	writeFile(t, filepath.Join(root, "nested", ".csshintrc.yml"), "every-decl: false\n")
	writeFile(t, filepath.Join(root, "nested", "deep", "a.css"), "a{}")
	writeFile(t, filepath.Join(root, "b.css"), "a{}")

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	loader := NewConfigLoader(testRegistry().Defaults(), 8, 0).WithMetrics(metrics)

	t.Run("nearest file wins over defaults", func(t *testing.T) {
		config, err := loader.ForFile(filepath.Join(root, "b.css"))
		require.NoError(t, err)
		assert.Equal(t, false, config["every-rule"])
		assert.Equal(t, true, config["every-decl"])
		assert.Equal(t, 3, config.MaxErrors())
	})

	t.Run("nearest file is not merged with ancestors", func(t *testing.T) {
		config, err := loader.ForFile(filepath.Join(root, "nested", "deep", "a.css"))
		require.NoError(t, err)
		assert.Equal(t, true, config["every-rule"])
		assert.Equal(t, false, config["every-decl"])
		assert.Equal(t, DefaultMaxErrors, config.MaxErrors())
	})

	t.Run("directory results are cached", func(t *testing.T) {
		_, err := loader.ForFile(filepath.Join(root, "b.css"))
		require.NoError(t, err)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ConfigCacheHitsTotal.WithLabelValues("config")))
	})

	t.Run("explicit file replaces discovery", func(t *testing.T) {
		explicit := filepath.Join(root, "custom.yaml")
		writeFile(t, explicit, "quiet: true\n")
		other := NewConfigLoader(testRegistry().Defaults(), 8, 0)
		require.NoError(t, other.UseFile(explicit))

		config, err := other.ForFile(filepath.Join(root, "b.css"))
		require.NoError(t, err)
		assert.Equal(t, true, config["quiet"])
		assert.Equal(t, true, config["every-rule"])
	})

	t.Run("broken file is an error", func(t *testing.T) {
		writeFile(t, filepath.Join(root, "broken", ".csshintrc"), "every-rule: [\n")
		_, err := NewConfigLoader(RuleConfig{}, 8, 0).ForDir(filepath.Join(root, "broken"))
		assert.Error(t, err)
	})

	t.Run("unbounded cache keeps the first resolution", func(t *testing.T) {
		dir := filepath.Join(root, "stable")
		writeFile(t, filepath.Join(dir, ".csshintrc"), "ids: false\n")
		stable := NewConfigLoader(testRegistry().Defaults(), 0, 0)

		first, err := stable.ForDir(dir)
		require.NoError(t, err)
		assert.Equal(t, false, first["ids"])

		writeFile(t, filepath.Join(dir, ".csshintrc"), "ids: true\n")
		for i := 0; i < 300; i++ {
			_, err := stable.ForDir(filepath.Join(dir, fmt.Sprintf("d%d", i)))
			require.NoError(t, err)
		}

		again, err := stable.ForDir(dir)
		require.NoError(t, err)
		assert.Equal(t, false, again["ids"])
	})
}
