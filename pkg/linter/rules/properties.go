package rules

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/platinummonkey/csshint/pkg/css"
	"github.com/platinummonkey/csshint/pkg/linter"
	"github.com/platinummonkey/csshint/pkg/source"
)

// BoxModelRule reports width or height combined with padding or border on
// the same axis
type BoxModelRule struct {
	BaseRule
}

// NewBoxModelRule creates a new box model rule
func NewBoxModelRule() *BoxModelRule {
	return &BoxModelRule{BaseRule{
		RuleName:        "box-model",
		RuleDescription: "Beware of width or height combined with padding or border",
		RuleDefault:     true,
	}}
}

var boxSides = map[string][]string{
	"width":  {"padding", "padding-left", "padding-right", "border", "border-left", "border-right", "border-width"},
	"height": {"padding", "padding-top", "padding-bottom", "border", "border-top", "border-bottom", "border-width"},
}

func (r *BoxModelRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachBlock(root, rep, func(decls []*css.Declaration) {
			props := make(map[string]*css.Declaration)
			for _, decl := range decls {
				props[decl.Prop()] = decl
			}
			if _, ok := props["box-sizing"]; ok {
				return
			}
			for _, dimension := range []string{"width", "height"} {
				size, ok := props[dimension]
				if !ok || strings.EqualFold(size.Value, "auto") {
					continue
				}
				for _, side := range boxSides[dimension] {
					decl, ok := props[side]
					if !ok || isZeroValue(decl.Value) || strings.EqualFold(decl.Value, "none") {
						continue
					}
					rep.at(decl.Span().Start, decl.Property,
						fmt.Sprintf("Using %s with %s can sometimes make elements larger than you expect.", dimension, decl.Property))
					break
				}
			}
		})
	}
}

// BoxSizingRule reports any use of box-sizing
type BoxSizingRule struct {
	BaseRule
}

// NewBoxSizingRule creates a new box sizing rule
func NewBoxSizingRule() *BoxSizingRule {
	return &BoxSizingRule{BaseRule{
		RuleName:        "box-sizing",
		RuleDescription: "Disallow box-sizing",
		RuleDefault:     false,
	}}
}

func (r *BoxSizingRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			if unhack(decl.Prop()) == "box-sizing" {
				rep.at(decl.Span().Start, decl.Property,
					"The box-sizing property isn't supported in IE6 and IE7.")
			}
		})
	}
}

// DisplayPropertyGroupingRule reports properties that have no effect with
// the declared display value
type DisplayPropertyGroupingRule struct {
	BaseRule
}

// NewDisplayPropertyGroupingRule creates a new display grouping rule
func NewDisplayPropertyGroupingRule() *DisplayPropertyGroupingRule {
	return &DisplayPropertyGroupingRule{BaseRule{
		RuleName:        "display-property-grouping",
		RuleDescription: "Disallow properties ignored by the chosen display",
		RuleDefault:     true,
	}}
}

var ignoredByDisplay = map[string]map[string]bool{
	"inline":             setOf("height width margin margin-top margin-bottom float"),
	"inline-block":       setOf("float"),
	"block":              setOf("vertical-align"),
	"table-cell":         setOf("margin float"),
	"table-row":          setOf("margin float"),
	"table-row-group":    setOf("margin float"),
	"table-column":       setOf("margin float"),
	"table-column-group": setOf("margin float"),
	"table-header-group": setOf("margin float"),
	"table-footer-group": setOf("margin float"),
	"table-caption":      setOf("float"),
}

func (r *DisplayPropertyGroupingRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachBlock(root, rep, func(decls []*css.Declaration) {
			display := ""
			for _, decl := range decls {
				if decl.Prop() == "display" {
					display = strings.ToLower(decl.Value)
				}
			}
			ignored := ignoredByDisplay[display]
			for _, decl := range decls {
				if !ignored[decl.Prop()] {
					continue
				}
				if decl.Prop() == "float" && strings.EqualFold(decl.Value, "none") {
					continue
				}
				rep.at(decl.Span().Start, decl.Property,
					fmt.Sprintf("%s can't be used with display: %s.", decl.Property, display))
			}
		})
	}
}

// OutlineNoneRule reports outlines removed outside :focus rules, or
// removed under :focus without any replacement style
type OutlineNoneRule struct {
	BaseRule
}

// NewOutlineNoneRule creates a new outline none rule
func NewOutlineNoneRule() *OutlineNoneRule {
	return &OutlineNoneRule{BaseRule{
		RuleName:        "outline-none",
		RuleDescription: "Only remove outlines in :focus rules that restyle the element",
		RuleDefault:     true,
	}}
}

func (r *OutlineNoneRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkRules(root, func(rule *css.Rule) {
			focus := strings.Contains(strings.ToLower(rule.Selector), ":focus")
			decls := rule.Declarations()
			for _, decl := range decls {
				v := strings.ToLower(decl.Value)
				if decl.Prop() != "outline" || (v != "none" && v != "0") {
					continue
				}
				switch {
				case !focus:
					rep.at(decl.Span().Start, decl.Property, "Outlines should only be modified using :focus.")
				case len(decls) == 1:
					rep.at(decl.Span().Start, decl.Property,
						"Outlines shouldn't be hidden unless other visual changes are made.")
				}
			}
		})
	}
}

// CompatibleVendorPrefixesRule requires every prefixed variant of a property
// once one of them is used
type CompatibleVendorPrefixesRule struct {
	BaseRule
}

// NewCompatibleVendorPrefixesRule creates a new vendor prefixes rule
func NewCompatibleVendorPrefixesRule() *CompatibleVendorPrefixesRule {
	return &CompatibleVendorPrefixesRule{BaseRule{
		RuleName:        "compatible-vendor-prefixes",
		RuleDescription: "Require all vendor prefixed variants of a property",
		RuleDefault:     true,
	}}
}

func (r *CompatibleVendorPrefixesRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachBlock(root, rep, func(decls []*css.Declaration) {
			present := make(map[string]bool)
			first := make(map[string]*css.Declaration)
			var order []string
			for _, decl := range decls {
				prefix, base := vendorPrefix(decl.Prop())
				if prefix == "" {
					continue
				}
				if _, ok := vendorVariants[base]; !ok {
					continue
				}
				present[decl.Prop()] = true
				if first[base] == nil {
					first[base] = decl
					order = append(order, base)
				}
			}
			for _, base := range order {
				var missing []string
				for _, prefix := range vendorVariants[base] {
					if !present[prefix+base] {
						missing = append(missing, prefix+base)
					}
				}
				if len(missing) > 0 {
					decl := first[base]
					rep.at(decl.Span().Start, decl.Property,
						fmt.Sprintf("The property %q is compatible with %s and should be included as well.",
							base, strings.Join(missing, ", ")))
				}
			}
		})
	}
}

// VendorPrefixesSortRule requires prefixed variants to precede the standard
// property and their colons to line up
type VendorPrefixesSortRule struct {
	BaseRule
}

// NewVendorPrefixesSortRule creates a new vendor prefixes sort rule
func NewVendorPrefixesSortRule() *VendorPrefixesSortRule {
	return &VendorPrefixesSortRule{BaseRule{
		RuleName:        "vendor-prefixes-sort",
		RuleDescription: "Sort vendor prefixed properties before the standard one with aligned colons",
		RuleDefault:     true,
	}}
}

func (r *VendorPrefixesSortRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachBlock(root, rep, func(decls []*css.Declaration) {
			standard := make(map[string]*css.Declaration)
			colon := make(map[string]int)
			for _, decl := range decls {
				prefix, base := vendorPrefix(decl.Prop())
				if _, ok := vendorVariants[base]; !ok {
					continue
				}
				if prefix == "" {
					standard[base] = decl
				} else if std := standard[base]; std != nil {
					rep.at(decl.Span().Start, decl.Property,
						fmt.Sprintf("%q must be placed before %q.", decl.Property, std.Property))
				}

				// variants written one per line share the column of their colon
				col := decl.At(colonOffset(decl)).Column
				want, seen := colon[base]
				if !seen {
					colon[base] = col
					continue
				}
				if want != col && strings.Contains(decl.Before, "\n") {
					rep.at(decl.At(colonOffset(decl)), ":",
						fmt.Sprintf("The colon of %q must be aligned with the other variants of %q.", decl.Property, base))
				}
			}
		})
	}
}

// DuplicatePropertiesRule reports properties declared twice in a block,
// allowing consecutive fallbacks with different values
type DuplicatePropertiesRule struct {
	BaseRule
}

// NewDuplicatePropertiesRule creates a new duplicate properties rule
func NewDuplicatePropertiesRule() *DuplicatePropertiesRule {
	return &DuplicatePropertiesRule{BaseRule{
		RuleName:        "duplicate-properties",
		RuleDescription: "Disallow duplicate properties",
		RuleDefault:     true,
	}}
}

func (r *DuplicatePropertiesRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachBlock(root, rep, func(decls []*css.Declaration) {
			values := make(map[string]string)
			last := ""
			for _, decl := range decls {
				prop := decl.Prop()
				if strings.HasPrefix(prop, "--") {
					last = prop
					continue
				}
				prev, seen := values[prop]
				if seen && (last != prop || strings.EqualFold(prev, decl.Value)) {
					rep.at(decl.Span().Start, decl.Property,
						fmt.Sprintf("Duplicate property %q found.", decl.Property))
				}
				values[prop] = decl.Value
				last = prop
			}
		})
	}
}

// EmptyRulesRule reports rules without declarations
type EmptyRulesRule struct {
	BaseRule
}

// NewEmptyRulesRule creates a new empty rules rule
func NewEmptyRulesRule() *EmptyRulesRule {
	return &EmptyRulesRule{BaseRule{
		RuleName:        "empty-rules",
		RuleDescription: "Disallow empty rules",
		RuleDefault:     true,
	}}
}

func (r *EmptyRulesRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkRules(root, func(rule *css.Rule) {
			for _, child := range rule.Children() {
				if child.Type() != css.CommentNode {
					return
				}
			}
			rep.at(rule.Span().Start, rule.Selector, "Rules without any properties specified should be removed.")
		})
	}
}

// ImportRule reports @import
type ImportRule struct {
	BaseRule
}

// NewImportRule creates a new import rule
func NewImportRule() *ImportRule {
	return &ImportRule{BaseRule{
		RuleName:        "import",
		RuleDescription: "Disallow @import",
		RuleDefault:     true,
	}}
}

func (r *ImportRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkAtRules(root, func(at *css.AtRule) {
			if at.Name == "import" {
				rep.at(at.Span().Start, "@import", "@import prevents parallel downloads, and should not be used.")
			}
		})
	}
}

// NoBOMRule reports a byte order mark at the start of the file
type NoBOMRule struct {
	BaseRule
}

// NewNoBOMRule creates a new no BOM rule
func NewNoBOMRule() *NoBOMRule {
	return &NoBOMRule{BaseRule{
		RuleName:        "no-bom",
		RuleDescription: "Disallow a byte order mark",
		RuleDefault:     true,
	}}
}

func (r *NoBOMRule) Install(opts linter.Options) linter.Visitor {
	if !source.HasBOM(opts.Content) {
		return nil
	}
	rep := r.reporter(opts)
	return func(*css.Root) {
		rep.global("CSS file should not contain a BOM.")
	}
}

// PropertyNotExistedRule reports unknown property names
type PropertyNotExistedRule struct {
	BaseRule
}

// NewPropertyNotExistedRule creates a new unknown property rule
func NewPropertyNotExistedRule() *PropertyNotExistedRule {
	return &PropertyNotExistedRule{BaseRule{
		RuleName:        "property-not-existed",
		RuleDescription: "Disallow unknown properties",
		RuleDefault:     true,
	}}
}

func (r *PropertyNotExistedRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			prop := unhack(decl.Prop())
			if strings.HasPrefix(prop, "--") || knownProperties[prop] {
				return
			}
			if prefix, _ := vendorPrefix(prop); prefix != "" {
				return
			}
			rep.at(decl.Span().Start, decl.Property,
				fmt.Sprintf("Property %q is not a known CSS property.", decl.Property))
		})
	}
}

// ShorthandRule suggests the shorthand when all its longhands are declared
// in one block
type ShorthandRule struct {
	BaseRule
}

// NewShorthandRule creates a new shorthand rule
func NewShorthandRule() *ShorthandRule {
	return &ShorthandRule{BaseRule{
		RuleName:        "shorthand",
		RuleDescription: "Use shorthand properties where possible",
		RuleDefault:     []any{"margin", "padding", "font"},
	}}
}

func (r *ShorthandRule) Install(opts linter.Options) linter.Visitor {
	enabled := stringSet(opts.Value, []string{"margin", "padding", "font"})
	if len(enabled) == 0 {
		return nil
	}
	rep := r.reporter(opts)
	return func(root *css.Root) {
		eachBlock(root, rep, func(decls []*css.Declaration) {
			first := make(map[string]*css.Declaration)
			for _, decl := range decls {
				if first[decl.Prop()] == nil {
					first[decl.Prop()] = decl
				}
			}
			for _, name := range slices.Sorted(maps.Keys(enabled)) {
				longhands, ok := shorthands[name]
				if !ok || first[name] != nil {
					continue
				}
				var at *css.Declaration
				for _, long := range longhands {
					decl := first[long]
					if decl == nil {
						at = nil
						break
					}
					if at == nil || decl.Span().Start.Offset < at.Span().Start.Offset {
						at = decl
					}
				}
				if at != nil {
					rep.at(at.Span().Start, at.Property,
						fmt.Sprintf("%s can be replaced by the %q shorthand.", strings.Join(longhands, ", "), name))
				}
			}
		})
	}
}

// hackRule reports properties written with a legacy IE hack prefix
type hackRule struct {
	BaseRule
	prefix string
}

func (r *hackRule) Install(opts linter.Options) linter.Visitor {
	rep := r.reporter(opts)
	return func(root *css.Root) {
		css.WalkDecls(root, func(decl *css.Declaration) {
			if strings.HasPrefix(decl.Property, r.prefix) {
				rep.at(decl.Span().Start, r.prefix,
					fmt.Sprintf("Property %q uses the %q hack.", decl.Property, r.prefix))
			}
		})
	}
}

// NewStarPropertyHackRule reports properties prefixed with "*"
func NewStarPropertyHackRule() Rule {
	return &hackRule{
		BaseRule: BaseRule{
			RuleName:        "star-property-hack",
			RuleDescription: "Disallow the star property hack",
			RuleDefault:     true,
		},
		prefix: "*",
	}
}

// NewUnderscorePropertyHackRule reports properties prefixed with "_"
func NewUnderscorePropertyHackRule() Rule {
	return &hackRule{
		BaseRule: BaseRule{
			RuleName:        "underscore-property-hack",
			RuleDescription: "Disallow the underscore property hack",
			RuleDefault:     true,
		},
		prefix: "_",
	}
}
