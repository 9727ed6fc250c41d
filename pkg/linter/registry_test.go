package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleRegistry(t *testing.T) {
	registry := testRegistry()

	t.Run("lookup", func(t *testing.T) {
		rule, ok := registry.GetRule("every-rule")
		require.True(t, ok)
		assert.Equal(t, "reports rules", rule.Description)

		_, ok = registry.GetRule("missing")
		assert.False(t, ok)
	})

	t.Run("sorted names", func(t *testing.T) {
		assert.Equal(t, []string{"every-decl", "every-rule", "quiet"}, registry.Names())
		all := registry.GetAllRules()
		require.Len(t, all, 3)
		assert.Equal(t, "every-decl", all[0].Name)
	})

	t.Run("defaults include max-error", func(t *testing.T) {
		defaults := registry.Defaults()
		assert.Equal(t, DefaultMaxErrors, defaults[MaxErrorKey])
		assert.Equal(t, true, defaults["every-rule"])
		assert.Equal(t, false, defaults["quiet"])
	})

	t.Run("enabled rules skip falsy and unknown keys", func(t *testing.T) {
		config := RuleConfig{
			"every-rule": true,
			"every-decl": 0,
			"quiet":      []any{"x"},
			"unknown":    true,
			MaxErrorKey:  10,
		}
		enabled := registry.GetEnabledRules(config)
		require.Len(t, enabled, 2)
		assert.Equal(t, "every-rule", enabled[0].Name)
		assert.Equal(t, "quiet", enabled[1].Name)
	})

	t.Run("summaries", func(t *testing.T) {
		summaries := registry.Summaries()
		require.Len(t, summaries, 3)
		assert.Equal(t, RuleSummary{Name: "every-rule", Description: "reports rules", Default: true}, summaries[1])
	})

	t.Run("register replaces", func(t *testing.T) {
		r := NewRuleRegistry()
		r.Register(RuleInfo{Name: "a", Description: "first"})
		r.Register(RuleInfo{Name: "a", Description: "second"})
		rule, _ := r.GetRule("a")
		assert.Equal(t, "second", rule.Description)
	})
}
