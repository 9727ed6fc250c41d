package linter

import "fmt"

// Diagnostic is one reported violation. Line and Column are 1-based; zero
// means the diagnostic has no position (file-global checks such as a BOM).
// Rule is empty for parse failures.
type Diagnostic struct {
	Rule         string `json:"rule,omitempty"`
	Line         int    `json:"line,omitempty"`
	Column       int    `json:"col,omitempty"`
	ErrorChar    string `json:"errorChar,omitempty"`
	Message      string `json:"message"`
	ColorMessage string `json:"colorMessage"`
}

// HasPosition reports whether the diagnostic carries a line.
func (d Diagnostic) HasPosition() bool {
	return d.Line > 0
}

// IsSyntaxError reports whether the diagnostic describes a parse failure.
func (d Diagnostic) IsSyntaxError() bool {
	return d.Rule == ""
}

// String returns the plain one-line rendering used by the text reporter.
func (d Diagnostic) String() string {
	return d.format(d.Message)
}

// ColorString is String with the highlighted message.
func (d Diagnostic) ColorString() string {
	return d.format(d.ColorMessage)
}

func (d Diagnostic) format(message string) string {
	prefix := ""
	if d.Rule != "" {
		prefix = d.Rule + ": "
	}
	if !d.HasPosition() {
		return prefix + message
	}
	if d.Column > 0 {
		return fmt.Sprintf("%sline %d, col %d: %s", prefix, d.Line, d.Column, message)
	}
	return fmt.Sprintf("%sline %d: %s", prefix, d.Line, message)
}
