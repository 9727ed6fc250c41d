package linter

import (
	"encoding/json"
	"regexp"
	"strings"
)

// DirectiveKind distinguishes the two inline comment forms.
type DirectiveKind int

const (
	// DirectiveOverride is /* csshint key: value, ... */.
	DirectiveOverride DirectiveKind = iota
	// DirectiveDisable is /* csshint-disable [rule ...] */.
	DirectiveDisable
)

func (k DirectiveKind) String() string {
	if k == DirectiveDisable {
		return "csshint-disable"
	}
	return "csshint"
}

// Directive is one inline configuration comment found in a file.
type Directive struct {
	Kind   DirectiveKind
	Offset int
	Raw    string
	// Values holds the decoded overrides. It is nil when the payload could
	// not be decoded, in which case the directive has no effect.
	Values map[string]any
	// Rules lists the rules a disable directive names; empty disables all.
	Rules []string
}

// Valid reports whether the directive takes effect.
func (d Directive) Valid() bool {
	return d.Kind == DirectiveDisable || d.Values != nil
}

var (
	overridePattern = regexp.MustCompile(`/\*\s*csshint\s+([\s\S]*?)\s*\*/`)
	disablePattern  = regexp.MustCompile(`/\*\s*csshint-disable(?:\s+([\s\S]*?))?\s*\*/`)
	bareKeyPattern  = regexp.MustCompile(`([{,]\s*)([A-Za-z][\w-]*)\s*:`)
	ruleSeparator   = regexp.MustCompile(`[^a-z-]+`)
)

// ParseDirectives returns every inline directive in content, overrides
// first and each kind in source order.
func ParseDirectives(content string) []Directive {
	var directives []Directive

	for _, m := range overridePattern.FindAllStringSubmatchIndex(content, -1) {
		payload := content[m[2]:m[3]]
		directives = append(directives, Directive{
			Kind:   DirectiveOverride,
			Offset: m[0],
			Raw:    content[m[0]:m[1]],
			Values: decodeOverrides(payload),
		})
	}

	for _, m := range disablePattern.FindAllStringSubmatchIndex(content, -1) {
		d := Directive{
			Kind:   DirectiveDisable,
			Offset: m[0],
			Raw:    content[m[0]:m[1]],
		}
		if m[2] >= 0 {
			for _, name := range ruleSeparator.Split(content[m[2]:m[3]], -1) {
				if name != "" {
					d.Rules = append(d.Rules, name)
				}
			}
		}
		directives = append(directives, d)
	}

	return directives
}

// decodeOverrides reads a relaxed object body such as
// `max-length: 80, adjoining-classes: false`. Bare keys are quoted before
// decoding as JSON; anything that still fails to decode yields nil.
func decodeOverrides(payload string) map[string]any {
	body := "{" + strings.TrimSpace(payload) + "}"
	body = bareKeyPattern.ReplaceAllString(body, `$1"$2":`)

	var values map[string]any
	if err := json.Unmarshal([]byte(body), &values); err != nil {
		return nil
	}
	if values == nil {
		values = map[string]any{}
	}
	return values
}

// Resolve computes the effective configuration for content. Overrides only
// replace keys already present in base; disables are applied last so they
// win over any override. base is not modified.
func Resolve(content string, base RuleConfig) RuleConfig {
	return ApplyDirectives(ParseDirectives(content), base)
}

// ApplyDirectives applies parsed directives to a copy of base.
func ApplyDirectives(directives []Directive, base RuleConfig) RuleConfig {
	config := base.Clone()

	for _, d := range directives {
		if d.Kind != DirectiveOverride {
			continue
		}
		for key, value := range d.Values {
			if _, ok := config[key]; ok {
				config[key] = value
			}
		}
	}

	for _, d := range directives {
		if d.Kind != DirectiveDisable {
			continue
		}
		if len(d.Rules) == 0 {
			for key := range config {
				config[key] = false
			}
			continue
		}
		for _, name := range d.Rules {
			if _, ok := config[name]; ok {
				config[name] = false
			}
		}
	}

	return config
}
