package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// Highlighter renders a code body as highlighted HTML.
// ok is false when the language is not supported, in which case the caller
// falls back to plain escaped text.
type Highlighter interface {
	Highlight(language, body string) (html string, ok bool)
}

// ChromaHighlighter highlights code with chroma using inline styles,
// so the exported page stays self-contained.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a ChromaHighlighter for the named style.
// Unknown style names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaHighlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),          // inline styles, no external stylesheet
			chromahtml.PreventSurroundingPre(true), // the page renderer owns the <pre><code> wrapper
		),
	}
}

// Highlight tokenises body with the lexer registered for language.
// Empty languages (plain text) and unknown languages are not highlighted.
func (h *ChromaHighlighter) Highlight(language, body string) (string, bool) {
	if language == "" {
		return "", false
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, body)
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// Compile-time interface check.
var _ Highlighter = (*ChromaHighlighter)(nil)
