package linter

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format represents the output format for reporting results.
type Format int

const (
	// FormatText groups diagnostics under their file, one per line.
	FormatText Format = iota
	// FormatJSON emits an array of {file, messages} objects.
	FormatJSON
	// FormatGitHub emits GitHub Actions workflow commands.
	FormatGitHub
	// FormatSARIF emits a SARIF 2.1.0 log.
	FormatSARIF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatGitHub:
		return "github"
	case FormatSARIF:
		return "sarif"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "github":
		return FormatGitHub, nil
	case "sarif":
		return FormatSARIF, nil
	default:
		return FormatText, fmt.Errorf("unknown format %q (want text, json, github or sarif)", s)
	}
}

// SuccessMessage is printed by the text reporter when nothing was found.
const SuccessMessage = "csshint: Congratulations! Everything is O.K!"

// Reporter handles formatting and outputting lint results.
type Reporter struct {
	writer io.Writer
	format Format
	color  bool
}

// NewReporter creates a new Reporter with the specified output writer and format.
func NewReporter(writer io.Writer, format Format) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// WithColor makes the text reporter print highlighted messages.
func (r *Reporter) WithColor(color bool) *Reporter {
	r.color = color
	return r
}

// HasIssues reports whether any result carries a diagnostic.
func HasIssues(results []*LintResult) bool {
	for _, result := range results {
		if result.HasIssues() {
			return true
		}
	}
	return false
}

// Report writes results in the configured format. Results are written in
// the order given.
func (r *Reporter) Report(results []*LintResult) error {
	switch r.format {
	case FormatText:
		return r.reportText(results)
	case FormatJSON:
		return r.reportJSON(results)
	case FormatGitHub:
		return r.reportGitHub(results)
	case FormatSARIF:
		return r.reportSARIF(results)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) reportText(results []*LintResult) error {
	if !HasIssues(results) {
		_, err := fmt.Fprintln(r.writer, SuccessMessage)
		return err
	}

	for _, result := range results {
		if !result.HasIssues() {
			continue
		}
		if _, err := fmt.Fprintf(r.writer, "csshint: %s\n", result.FilePath); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
		for _, d := range result.Diagnostics {
			line := d.String()
			if r.color && d.ColorMessage != "" {
				line = d.ColorString()
			}
			if _, err := fmt.Fprintf(r.writer, "    %s\n", line); err != nil {
				return fmt.Errorf("failed to write text output: %w", err)
			}
		}
	}
	return nil
}

func (r *Reporter) reportJSON(results []*LintResult) error {
	output := make([]*LintResult, 0, len(results))
	for _, result := range results {
		if result.HasIssues() {
			output = append(output, result)
		}
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func (r *Reporter) reportGitHub(results []*LintResult) error {
	for _, result := range results {
		if !result.HasIssues() {
			continue
		}
		for _, d := range result.Diagnostics {
			props := "file=" + result.FilePath
			if d.HasPosition() {
				props += fmt.Sprintf(",line=%d", d.Line)
				if d.Column > 0 {
					props += fmt.Sprintf(",col=%d", d.Column)
				}
			}
			title := d.Rule
			if d.IsSyntaxError() {
				title = "syntax"
			}
			if _, err := fmt.Fprintf(r.writer, "::error %s,title=%s::%s\n", props, title, escapeWorkflowData(d.Message)); err != nil {
				return fmt.Errorf("failed to write github output: %w", err)
			}
		}
	}
	return nil
}

func escapeWorkflowData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

func (r *Reporter) reportSARIF(results []*LintResult) error {
	seen := make(map[string]bool)
	rules := make([]map[string]interface{}, 0)
	sarifResults := make([]map[string]interface{}, 0)

	for _, result := range results {
		if !result.HasIssues() {
			continue
		}
		for _, d := range result.Diagnostics {
			ruleID := d.Rule
			if d.IsSyntaxError() {
				ruleID = "syntax-error"
			}
			if !seen[ruleID] {
				seen[ruleID] = true
				rules = append(rules, map[string]interface{}{
					"id":   ruleID,
					"name": ruleID,
					"help": map[string]interface{}{"text": d.Message},
				})
			}

			location := map[string]interface{}{
				"artifactLocation": map[string]interface{}{
					"uri": filepath.ToSlash(result.FilePath),
				},
			}
			if d.HasPosition() {
				region := map[string]interface{}{"startLine": d.Line}
				if d.Column > 0 {
					region["startColumn"] = d.Column
				}
				location["region"] = region
			}

			sarifResults = append(sarifResults, map[string]interface{}{
				"ruleId":  ruleID,
				"level":   "error",
				"message": map[string]interface{}{"text": d.Message},
				"locations": []map[string]interface{}{
					{"physicalLocation": location},
				},
			})
		}
	}

	sarif := map[string]interface{}{
		"version": "2.1.0",
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"runs": []map[string]interface{}{
			{
				"tool": map[string]interface{}{
					"driver": map[string]interface{}{
						"name":           "csshint",
						"informationUri": "https://github.com/platinummonkey/csshint",
						"rules":          rules,
					},
				},
				"results": sarifResults,
			},
		},
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sarif); err != nil {
		return fmt.Errorf("failed to encode SARIF output: %w", err)
	}
	return nil
}
