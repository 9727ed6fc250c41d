package rules

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/csshint/pkg/css"
	"github.com/platinummonkey/csshint/pkg/linter"
)

// eachSelectorList calls fn with the parsed selectors of every style rule.
// Keyframe selectors are skipped.
func eachSelectorList(root *css.Root, rep *reporter, fn func(rule *css.Rule, selectors []Selector)) {
	css.WalkRules(root, func(rule *css.Rule) {
		if rep.done() || inKeyframes(rule) {
			return
		}
		fn(rule, ParseSelectors(rule.Selector))
	})
}

func inKeyframes(n css.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if at, ok := p.(*css.AtRule); ok && strings.HasSuffix(at.Name, "keyframes") {
			return true
		}
	}
	return false
}

// AdjoiningClassesRule reports compound selectors with more than one class
type AdjoiningClassesRule struct {
	BaseRule
}

// NewAdjoiningClassesRule creates a new adjoining classes rule
func NewAdjoiningClassesRule() *AdjoiningClassesRule {
	return &AdjoiningClassesRule{BaseRule{
		RuleName:        "adjoining-classes",
		RuleDescription: "Disallow adjoining classes such as .foo.bar",
		RuleDefault:     true,
	}}
}

func (r *AdjoiningClassesRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				for _, c := range sel.Compounds {
					if len(c.Classes) > 1 {
						rep.at(rule.SelectorAt(sel.Offset+c.Offset), c.Text, "Don't use adjoining classes.")
					}
				}
			}
		})
	}
}

// IDsRule reports selectors containing IDs
type IDsRule struct {
	BaseRule
}

// NewIDsRule creates a new ids rule
func NewIDsRule() *IDsRule {
	return &IDsRule{BaseRule{
		RuleName:        "ids",
		RuleDescription: "Disallow IDs in selectors",
		RuleDefault:     true,
	}}
}

func (r *IDsRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				count := 0
				for _, c := range sel.Compounds {
					count += len(c.IDs)
				}
				switch {
				case count == 1:
					rep.at(rule.SelectorAt(sel.Offset), sel.Text, "Don't use IDs in selectors.")
				case count > 1:
					rep.at(rule.SelectorAt(sel.Offset), sel.Text, fmt.Sprintf("%d IDs in the selector, really?", count))
				}
			}
		})
	}
}

// QualifiedHeadingsRule reports headings that are not the first compound
type QualifiedHeadingsRule struct {
	BaseRule
}

// NewQualifiedHeadingsRule creates a new qualified headings rule
func NewQualifiedHeadingsRule() *QualifiedHeadingsRule {
	return &QualifiedHeadingsRule{BaseRule{
		RuleName:        "qualified-headings",
		RuleDescription: "Disallow qualified headings such as .foo h3",
		RuleDefault:     true,
	}}
}

func (r *QualifiedHeadingsRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				for i, c := range sel.Compounds {
					if i > 0 && isHeading(c.Element) {
						rep.at(rule.SelectorAt(sel.Offset+c.Offset), c.Text,
							fmt.Sprintf("Heading (%s) should not be qualified.", c.Element))
					}
				}
			}
		})
	}
}

// UniqueHeadingsRule reports headings styled by more than one rule
type UniqueHeadingsRule struct {
	BaseRule
}

// NewUniqueHeadingsRule creates a new unique headings rule
func NewUniqueHeadingsRule() *UniqueHeadingsRule {
	return &UniqueHeadingsRule{BaseRule{
		RuleName:        "unique-headings",
		RuleDescription: "Headings should be defined only once",
		RuleDefault:     true,
	}}
}

func (r *UniqueHeadingsRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	seen := make(map[string]bool)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				last := sel.Last()
				if last == nil || !isHeading(last.Element) || len(last.Pseudos) > 0 {
					continue
				}
				if seen[last.Element] {
					rep.at(rule.SelectorAt(sel.Offset+last.Offset), last.Text,
						fmt.Sprintf("Heading (%s) has already been defined.", last.Element))
					continue
				}
				seen[last.Element] = true
			}
		})
	}
}

// UniversalSelectorRule reports selectors whose key is *
type UniversalSelectorRule struct {
	BaseRule
}

// NewUniversalSelectorRule creates a new universal selector rule
func NewUniversalSelectorRule() *UniversalSelectorRule {
	return &UniversalSelectorRule{BaseRule{
		RuleName:        "universal-selector",
		RuleDescription: "Disallow the universal selector as the key selector",
		RuleDefault:     true,
	}}
}

func (r *UniversalSelectorRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				if last := sel.Last(); last != nil && last.Element == "*" {
					rep.at(rule.SelectorAt(sel.Offset+last.Offset), last.Text, "The universal selector (*) is known to be slow.")
				}
			}
		})
	}
}

// UnqualifiedAttributesRule reports attribute selectors used as the key
// without an element, class or id
type UnqualifiedAttributesRule struct {
	BaseRule
}

// NewUnqualifiedAttributesRule creates a new unqualified attributes rule
func NewUnqualifiedAttributesRule() *UnqualifiedAttributesRule {
	return &UnqualifiedAttributesRule{BaseRule{
		RuleName:        "unqualified-attributes",
		RuleDescription: "Disallow unqualified attribute selectors",
		RuleDefault:     true,
	}}
}

func (r *UnqualifiedAttributesRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				last := sel.Last()
				if last == nil || len(last.Attributes) == 0 || len(last.Classes) > 0 || len(last.IDs) > 0 {
					continue
				}
				if last.Element == "" || last.Element == "*" {
					rep.at(rule.SelectorAt(sel.Offset+last.Offset), last.Text, "Unqualified attribute selectors are known to be slow.")
				}
			}
		})
	}
}

// OverqualifiedElementsRule reports element names combined with a class or
// id. A class is exempt when it is combined with several different elements.
type OverqualifiedElementsRule struct {
	BaseRule
}

// NewOverqualifiedElementsRule creates a new overqualified elements rule
func NewOverqualifiedElementsRule() *OverqualifiedElementsRule {
	return &OverqualifiedElementsRule{BaseRule{
		RuleName:        "disallow-overqualified-elements",
		RuleDescription: "Disallow element names qualifying a class or id",
		RuleDefault:     true,
	}}
}

type qualifiedUse struct {
	element string
	text    string
	pos     css.Position
}

func (r *OverqualifiedElementsRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		var order []string
		uses := make(map[string][]qualifiedUse)

		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				for _, c := range sel.Compounds {
					if c.Element == "" || c.Element == "*" || c.Element == "&" {
						continue
					}
					pos := rule.SelectorAt(sel.Offset + c.Offset)
					if len(c.IDs) > 0 {
						rep.at(pos, c.Text, fmt.Sprintf("Element (%s) is overqualified, just use #%s without element name.", c.Text, c.IDs[0]))
						continue
					}
					for _, class := range c.Classes {
						if _, ok := uses[class]; !ok {
							order = append(order, class)
						}
						uses[class] = append(uses[class], qualifiedUse{element: c.Element, text: c.Text, pos: pos})
					}
				}
			}
		})

		for _, class := range order {
			list := uses[class]
			single := true
			for _, u := range list[1:] {
				if u.element != list[0].element {
					single = false
					break
				}
			}
			if !single {
				continue
			}
			for _, u := range list {
				rep.at(u.pos, u.text, fmt.Sprintf("Element (%s) is overqualified, just use .%s without element name.", u.text, class))
			}
		}
	}
}

// MaxSelectorNestingLevelRule limits the number of compounds in a selector
type MaxSelectorNestingLevelRule struct {
	BaseRule
}

// NewMaxSelectorNestingLevelRule creates a new selector nesting rule
func NewMaxSelectorNestingLevelRule() *MaxSelectorNestingLevelRule {
	return &MaxSelectorNestingLevelRule{BaseRule{
		RuleName:        "max-selector-nesting-level",
		RuleDescription: "Limit the nesting level of selectors",
		RuleDefault:     3,
	}}
}

func (r *MaxSelectorNestingLevelRule) Install(opts linter.Options) linter.Visitor {
	limit, ok := positiveInt(opts.Value)
	if !ok {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			for _, sel := range selectors {
				if n := len(sel.Compounds); n > limit {
					rep.at(rule.SelectorAt(sel.Offset), sel.Text,
						fmt.Sprintf("A nesting level greater than %d is not allowed, found %d.", limit, n))
				}
			}
		})
	}
}

// SelectorMaxLengthRule limits the number of selectors in one rule
type SelectorMaxLengthRule struct {
	BaseRule
}

// NewSelectorMaxLengthRule creates a new selector max length rule
func NewSelectorMaxLengthRule() *SelectorMaxLengthRule {
	return &SelectorMaxLengthRule{BaseRule{
		RuleName:        "selector-max-length",
		RuleDescription: "Limit the number of selectors in a rule",
		RuleDefault:     false,
	}}
}

func (r *SelectorMaxLengthRule) Install(opts linter.Options) linter.Visitor {
	limit, ok := positiveInt(opts.Value)
	if !ok {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachSelectorList(root, rep, func(rule *css.Rule, selectors []Selector) {
			if n := len(selectors); n > limit {
				rep.at(rule.Span().Start, rule.Selector,
					fmt.Sprintf("A rule must not contain more than %d selectors, found %d.", limit, n))
			}
		})
	}
}
