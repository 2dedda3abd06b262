package pipeline

import "strings"

// Text and attribute escapers. strings.Replacer works in a single pass, so
// an already-escaped entity in the input is escaped again rather than kept.
var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

// EscapeText escapes &, < and > for insertion into HTML text content.
// Backticks and newlines pass through unchanged, which the inline
// description transform relies on.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes text for insertion into a double-quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
