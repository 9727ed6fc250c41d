/*
Package rules contains the built-in csshint rules.

Every rule implements Rule and is turned into a linter.RuleInfo by Info.
Installing a rule with its configured value returns a visitor for one
file, or nil when the value disables the rule. Visitors report through the
file's linter.CheckContext, which enforces the max-error budget, so a rule
never needs to count diagnostics itself.

# Shared Parsing

Selectors and values are decomposed with ParseSelectors and ParseValue,
both built on the css package tokenizer. Offsets returned by these helpers
are relative to the selector or value text and are converted to file
positions with css.Rule.SelectorAt and css.Declaration.ValueAt.

# Usage Example

	registry := rules.NewRegistry()
	engine := linter.NewLintEngine(registry)
	result := engine.Lint(ctx, content, "main.css", registry.Defaults())
*/
package rules
