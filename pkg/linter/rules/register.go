package rules

import "github.com/platinummonkey/csshint/pkg/linter"

// Registry interface for registering rules
type Registry interface {
	Register(rule linter.RuleInfo)
}

// All returns a fresh instance of every built-in rule
func All() []Rule {
	return []Rule{
		// Selectors
		NewAdjoiningClassesRule(),
		NewIDsRule(),
		NewQualifiedHeadingsRule(),
		NewUniqueHeadingsRule(),
		NewUniversalSelectorRule(),
		NewUnqualifiedAttributesRule(),
		NewOverqualifiedElementsRule(),
		NewMaxSelectorNestingLevelRule(),
		NewSelectorMaxLengthRule(),

		// Formatting
		NewRequireAfterSpaceRule(),
		NewRequireAroundSpaceRule(),
		NewRequireBeforeSpaceRule(),
		NewRequireNewlineRule(),
		NewBlockIndentRule(),
		NewAlwaysSemicolonRule(),
		NewMaxLengthRule(),
		NewVendorPrefixesSortRule(),

		// Colors
		NewDisallowNamedColorRule(),
		NewHexColorRule(),
		NewUnifyingColorCaseRule(),
		NewFallbackColorsRule(),

		// Values
		NewZeroUnitRule(),
		NewLeadingZeroRule(),
		NewRequireNumberRule(),
		NewMinFontSizeRule(),
		NewTextIndentRule(),
		NewDisallowImportantRule(),
		NewDisallowExpressionRule(),
		NewDisallowQuotesInURLRule(),
		NewOmitProtocolInURLRule(),
		NewRequireDoubleQuotesRule(),
		NewRequireTransitionPropertyRule(),
		NewHorizontalVerticalPositionRule(),
		NewGradientsRule(),
		NewUnifyingFontFamilyCaseRule(),

		// Properties and blocks
		NewBoxModelRule(),
		NewBoxSizingRule(),
		NewCompatibleVendorPrefixesRule(),
		NewDisplayPropertyGroupingRule(),
		NewDuplicatePropertiesRule(),
		NewEmptyRulesRule(),
		NewOutlineNoneRule(),
		NewPropertyNotExistedRule(),
		NewShorthandRule(),
		NewStarPropertyHackRule(),
		NewUnderscorePropertyHackRule(),

		// Limits
		NewFloatsRule(),
		NewFontFaceRule(),
		NewFontSizesRule(),

		// File
		NewImportRule(),
		NewNoBOMRule(),
	}
}

// RegisterDefaultRules registers all built-in lint rules
func RegisterDefaultRules(registry Registry) {
	for _, rule := range All() {
		registry.Register(Info(rule))
	}
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *linter.RuleRegistry {
	registry := linter.NewRuleRegistry()
	RegisterDefaultRules(registry)
	return registry
}
