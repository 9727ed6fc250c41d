package linter

import (
	"github.com/platinummonkey/csshint/pkg/css"
)

// perRuleInstaller reports one diagnostic for every rule set in the sheet.
func perRuleInstaller(name string) Installer {
	return func(opts Options) Visitor {
		return func(root *css.Root) {
			css.WalkRules(root, func(rule *css.Rule) {
				if opts.Context.Exhausted() {
					return
				}
				start := rule.Span().Start
				opts.Context.Report(Diagnostic{
					Rule:      name,
					Line:      start.Line,
					Column:    start.Column,
					ErrorChar: rule.Selector,
					Message:   "rule " + rule.Selector,
				})
			})
		}
	}
}

// perDeclInstaller reports every declaration, and is off for a value of "off".
func perDeclInstaller(name string) Installer {
	return func(opts Options) Visitor {
		if opts.Value == "off" {
			return nil
		}
		return func(root *css.Root) {
			css.WalkDecls(root, func(decl *css.Declaration) {
				if opts.Context.Exhausted() {
					return
				}
				start := decl.Span().Start
				opts.Context.Report(Diagnostic{
					Rule:    name,
					Line:    start.Line,
					Column:  start.Column,
					Message: "declaration " + decl.Property,
				})
			})
		}
	}
}

func testRegistry() *RuleRegistry {
	return NewRuleRegistry(
		RuleInfo{Name: "every-rule", Description: "reports rules", Default: true, Install: perRuleInstaller("every-rule")},
		RuleInfo{Name: "every-decl", Description: "reports declarations", Default: true, Install: perDeclInstaller("every-decl")},
		RuleInfo{Name: "quiet", Description: "never reports", Default: false, Install: func(Options) Visitor { return func(*css.Root) {} }},
	)
}
