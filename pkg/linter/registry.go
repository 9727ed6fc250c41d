package linter

import (
	"sort"

	"github.com/platinummonkey/csshint/pkg/css"
)

// Options is what a rule receives when it is installed for one file.
type Options struct {
	// Value is the rule's resolved configuration value. It is never falsy;
	// rules whose value is falsy are not installed.
	Value any
	// Content is the file with line endings normalized and any byte order
	// mark kept.
	Content   string
	Path      string
	MaxErrors int
	Context   *CheckContext
}

// Visitor walks a parsed stylesheet and reports through the CheckContext it
// was installed with.
type Visitor func(root *css.Root)

// Installer prepares a rule for one file. Returning nil means the value is
// one the rule treats as disabled.
type Installer func(opts Options) Visitor

// RuleInfo describes one rule known to the registry.
type RuleInfo struct {
	Name        string
	Description string
	// Default is the value used when no configuration mentions the rule.
	Default any
	Install Installer
}

// RuleRegistry manages available lint rules
type RuleRegistry struct {
	rules map[string]RuleInfo
}

// NewRuleRegistry creates a registry holding the given rules.
func NewRuleRegistry(rules ...RuleInfo) *RuleRegistry {
	registry := &RuleRegistry{
		rules: make(map[string]RuleInfo, len(rules)),
	}
	for _, rule := range rules {
		registry.Register(rule)
	}
	return registry
}

// Register adds a rule to the registry, replacing any rule with the same name.
func (r *RuleRegistry) Register(rule RuleInfo) {
	r.rules[rule.Name] = rule
}

// GetRule retrieves a rule by name
func (r *RuleRegistry) GetRule(name string) (RuleInfo, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// GetAllRules returns all registered rules ordered by name.
func (r *RuleRegistry) GetAllRules() []RuleInfo {
	rules := make([]RuleInfo, 0, len(r.rules))
	for _, name := range r.Names() {
		rules = append(rules, r.rules[name])
	}
	return rules
}

// RuleSummary describes a rule for listings.
type RuleSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     any    `json:"default"`
}

// Summary describes the rule for listings.
func (r RuleInfo) Summary() RuleSummary {
	return RuleSummary{Name: r.Name, Description: r.Description, Default: r.Default}
}

// Summaries describes every registered rule, ordered by name.
func (r *RuleRegistry) Summaries() []RuleSummary {
	all := r.GetAllRules()
	summaries := make([]RuleSummary, 0, len(all))
	for _, rule := range all {
		summaries = append(summaries, rule.Summary())
	}
	return summaries
}

// Names returns the registered rule names in sorted order.
func (r *RuleRegistry) Names() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetEnabledRules returns the registered rules whose value in config is
// truthy, in the order they are installed.
func (r *RuleRegistry) GetEnabledRules(config RuleConfig) []RuleInfo {
	rules := make([]RuleInfo, 0)
	for _, name := range config.Keys() {
		rule, ok := r.rules[name]
		if !ok || !Truthy(config[name]) {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// Defaults returns the default configuration: every rule's default value
// plus the max-error budget.
func (r *RuleRegistry) Defaults() RuleConfig {
	config := RuleConfig{MaxErrorKey: DefaultMaxErrors}
	for name, rule := range r.rules {
		config[name] = cloneValue(rule.Default)
	}
	return config
}
