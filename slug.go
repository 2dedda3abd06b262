package howto

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackSlug names the file when the title yields no usable characters.
const fallbackSlug = "instruction"

// nonSlugRun matches runs of characters outside ASCII letters, digits and
// the Cyrillic block U+0400–U+04FF.
var nonSlugRun = regexp.MustCompile(`[^a-zA-Z0-9\x{0400}-\x{04FF}]+`)

// combiningMarks is the Combining Diacritical Marks block, U+0300–U+036F.
var combiningMarks = runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036F, Stride: 1}},
})

// Slugify turns s into a lowercase, hyphen-separated name.
//
// s is decomposed (NFKD) and combining marks are dropped, so "é" becomes
// "e" and "й" becomes "и". Every run of other characters outside
// [A-Za-z0-9] and Cyrillic becomes a single hyphen, and leading and trailing
// hyphens are trimmed. The result may be empty.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(combiningMarks))
	decomposed, _, err := transform.String(t, s)
	if err != nil {
		decomposed = s
	}

	slug := nonSlugRun.ReplaceAllString(decomposed, "-")
	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}

// Filename returns the download name for a page titled title:
// Slugify(title) + ".html", or "instruction.html" when the slug is empty.
func Filename(title string) string {
	return FilenameWithExt(title, ".html")
}

// FilenameWithExt is Filename with a caller-chosen extension, such as ".pdf".
func FilenameWithExt(title, ext string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = fallbackSlug
	}
	return slug + ext
}
