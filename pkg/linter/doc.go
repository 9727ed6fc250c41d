// Package linter checks CSS stylesheets against a configurable set of rules.
//
// # Overview
//
// A check runs in four steps: the file's base configuration is resolved
// (registry defaults, then the nearest .csshintrc), inline directives are
// applied, every enabled rule is installed against a fresh CheckContext, and
// the parsed stylesheet is handed to each rule's visitor. Rules share a
// per-file diagnostic budget (max-error) through the CheckContext; once it
// is spent no further diagnostics are recorded.
//
// A file that fails to parse yields exactly one diagnostic with an empty
// rule name and the parser's position.
//
// # Inline Directives
//
//	/* csshint max-length: 80, adjoining-classes: false */
//	/* csshint-disable zero-unit, ids */
//	/* csshint-disable */
//
// Overrides replace only keys the configuration already has. Disables are
// applied after all overrides.
//
// # Usage Example
//
//	registry := linter.NewRuleRegistry(rules.Catalog()...)
//	engine := linter.NewLintEngine(registry)
//	result := engine.Lint(ctx, content, "a.css", registry.Defaults())
//	for _, d := range result.Diagnostics {
//		fmt.Println(d)
//	}
//
// # Related Packages
//
//   - pkg/linter/rules: The built-in rule catalog
//   - pkg/css: Stylesheet parser
//   - pkg/cli: The check command
package linter
