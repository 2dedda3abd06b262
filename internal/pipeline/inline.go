package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Backtick-delimited inline code. Spans may hold newlines, which
	// become <br/> inside the <code> element.
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")

	// Two or more newlines start a new paragraph
	paragraphBreakPattern = regexp.MustCompile(`\n{2,}`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// FormatInline turns description text into paragraph markup.
//
// The text is escaped first and the markup is added afterwards:
//  1. &, <, > are replaced by entities
//  2. `code` spans become <code class="muted">code</code>
//  3. runs of two or more newlines become paragraph breaks
//  4. remaining newlines become <br/>
//
// Escaping never touches backticks or newlines, so detection on the escaped
// string sees exactly the delimiters the user typed.
func FormatInline(text string) string {
	s := EscapeText(NormalizeLineEndings(text))
	s = inlineCodePattern.ReplaceAllString(s, `<code class="muted">${1}</code>`)
	s = paragraphBreakPattern.ReplaceAllLiteralString(s, "</p><p>")
	s = strings.ReplaceAll(s, "\n", "<br/>")
	return "<p>" + s + "</p>"
}
