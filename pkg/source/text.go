package source

import "strings"

// BOM is the UTF-8 byte order mark.
const BOM = "\uFEFF"

// Normalize converts CRLF and lone CR line endings to LF.
func Normalize(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// HasBOM reports whether text starts with a UTF-8 byte order mark.
func HasBOM(text string) bool {
	return strings.HasPrefix(text, BOM)
}

// StripBOM removes a leading byte order mark, if any.
func StripBOM(text string) string {
	return strings.TrimPrefix(text, BOM)
}
