package lyric

import "strings"

// NormalizeWhitespace trims leading/trailing whitespace and collapses any
// run of interior whitespace to a single space. It is idempotent:
// NormalizeWhitespace(NormalizeWhitespace(x)) == NormalizeWhitespace(x).
func NormalizeWhitespace(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	fields := strings.Fields(trimmed)
	return strings.Join(fields, " ")
}

const (
	fullwidthLeftParen  = "（"
	fullwidthRightParen = "）"
)

// trimParens strips one layer of surrounding parentheses (ASCII or
// fullwidth) used by TTML authors to mark background-vocal text, e.g.
// "(echo)" -> "echo". It does not recurse, matching the source's behavior of
// stripping exactly one layer.
func trimParens(text string) string {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, fullwidthLeftParen):
		text = strings.TrimPrefix(text, fullwidthLeftParen)
	case strings.HasPrefix(text, "("):
		text = strings.TrimPrefix(text, "(")
	}
	switch {
	case strings.HasSuffix(text, fullwidthRightParen):
		text = strings.TrimSuffix(text, fullwidthRightParen)
	case strings.HasSuffix(text, ")"):
		text = strings.TrimSuffix(text, ")")
	}
	return strings.TrimSpace(text)
}
