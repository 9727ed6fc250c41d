package rules

import (
	"github.com/platinummonkey/csshint/pkg/css"
	"github.com/platinummonkey/csshint/pkg/linter"
)

// Rule is implemented by every built-in rule
type Rule interface {
	Name() string
	Description() string
	Default() any
	Install(opts linter.Options) linter.Visitor
}

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName        string
	RuleDescription string
	RuleDefault     any
}

func (r *BaseRule) Name() string        { return r.RuleName }
func (r *BaseRule) Description() string { return r.RuleDescription }
func (r *BaseRule) Default() any        { return r.RuleDefault }

// reporter creates the per-file reporting helper for the rule.
func (r *BaseRule) reporter(opts linter.Options) *reporter {
	return &reporter{
		rule:  r.RuleName,
		ctx:   opts.Context,
		lines: make(map[int]bool),
	}
}

// Info converts a rule into its registry entry.
func Info(rule Rule) linter.RuleInfo {
	return linter.RuleInfo{
		Name:        rule.Name(),
		Description: rule.Description(),
		Default:     rule.Default(),
		Install:     rule.Install,
	}
}

// reporter records diagnostics for one rule in one file.
type reporter struct {
	rule  string
	ctx   *linter.CheckContext
	lines map[int]bool
}

// done reports whether the file's diagnostic budget is spent.
func (r *reporter) done() bool {
	return r.ctx.Exhausted()
}

// at reports a diagnostic at pos.
func (r *reporter) at(pos css.Position, errorChar, message string) bool {
	return r.ctx.Report(linter.Diagnostic{
		Rule:      r.rule,
		Line:      pos.Line,
		Column:    pos.Column,
		ErrorChar: errorChar,
		Message:   message,
	})
}

// oncePerLine reports at pos unless the rule already reported on that line.
func (r *reporter) oncePerLine(pos css.Position, errorChar, message string) bool {
	if r.lines[pos.Line] {
		return false
	}
	r.lines[pos.Line] = true
	return r.at(pos, errorChar, message)
}

// line reports a diagnostic that has a line but no column.
func (r *reporter) line(line int, errorChar, message string) bool {
	return r.ctx.Report(linter.Diagnostic{
		Rule:      r.rule,
		Line:      line,
		ErrorChar: errorChar,
		Message:   message,
	})
}

// global reports a diagnostic about the whole file.
func (r *reporter) global(message string) bool {
	return r.ctx.Report(linter.Diagnostic{Rule: r.rule, Message: message})
}

// positiveInt returns the configured limit, or false when the value is not
// a positive number.
func positiveInt(v any) (int, bool) {
	n, ok := linter.ToInt(v)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// stringSet returns the configured list as a set. A bare true selects all
// of defaults.
func stringSet(v any, defaults []string) map[string]bool {
	set := make(map[string]bool)
	items, ok := linter.ToStrings(v)
	if !ok {
		if b, isBool := v.(bool); isBool && b {
			items = defaults
		}
	}
	for _, item := range items {
		set[item] = true
	}
	return set
}
