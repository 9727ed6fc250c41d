package css

import "fmt"

// SyntaxError reports malformed stylesheet text. Line and Column are filled
// in by Parse from Offset.
type SyntaxError struct {
	Reason string
	Offset int
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Reason)
}
