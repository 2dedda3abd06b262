package pipeline

import "strings"

// CodeBlock is one code entry ready for rendering.
type CodeBlock struct {
	Language string
	Body     string
}

// Figure is one image entry ready for rendering.
type Figure struct {
	URL string
	Alt string
}

// PageData holds the normalized document content for a single page.
type PageData struct {
	Title       string
	Description string
	Code        []CodeBlock
	Figures     []Figure
}

// Labels holds the fixed strings of the page chrome.
type Labels struct {
	Lang          string // value of <html lang>
	DefaultTitle  string // used when the title is empty
	CodeHeading   string
	ImagesHeading string
}

// DefaultLabels returns the English page labels.
func DefaultLabels() Labels {
	return Labels{
		Lang:          "en",
		DefaultTitle:  "Instruction",
		CodeHeading:   "Code / Commands",
		ImagesHeading: "Illustrations",
	}
}

// withDefaults fills empty label fields from DefaultLabels.
func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	if l.Lang == "" {
		l.Lang = d.Lang
	}
	if l.DefaultTitle == "" {
		l.DefaultTitle = d.DefaultTitle
	}
	if l.CodeHeading == "" {
		l.CodeHeading = d.CodeHeading
	}
	if l.ImagesHeading == "" {
		l.ImagesHeading = d.ImagesHeading
	}
	return l
}

// PageRenderer assembles a standalone HTML5 page from PageData.
// A PageRenderer holds no mutable state and is safe for concurrent use
// as long as its Highlighter is.
type PageRenderer struct {
	CSS         string      // inline stylesheet, sanitized on output
	Labels      Labels      // empty fields fall back to DefaultLabels
	Highlighter Highlighter // nil renders every code body as plain text
}

// Render builds the page. Identical input always yields identical output.
// Optional sections (description, code, images) are omitted when empty.
func (r *PageRenderer) Render(data PageData) string {
	labels := r.Labels.withDefaults()

	title := data.Title
	if title == "" {
		title = labels.DefaultTitle
	}
	title = EscapeText(title)

	var b strings.Builder
	b.WriteString("<!doctype html>\n")
	b.WriteString(`<html lang="`)
	b.WriteString(EscapeAttr(labels.Lang))
	b.WriteString("\">\n")
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"utf-8\" />\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\" />\n")
	b.WriteString("  <title>")
	b.WriteString(title)
	b.WriteString("</title>\n")
	if css := strings.TrimSpace(r.CSS); css != "" {
		b.WriteString("  <style>\n")
		b.WriteString(sanitizeCSS(css))
		b.WriteString("\n  </style>\n")
	}
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("  <article class=\"gen\">\n")
	b.WriteString("    <h1>")
	b.WriteString(title)
	b.WriteString("</h1>\n")

	if data.Description != "" {
		b.WriteString("    <section class=\"section\">")
		b.WriteString(FormatInline(data.Description))
		b.WriteString("</section>\n")
	}

	if len(data.Code) > 0 {
		b.WriteString("    ")
		r.writeCodeSection(&b, labels, data.Code)
		b.WriteString("\n")
	}

	if len(data.Figures) > 0 {
		b.WriteString("    ")
		writeImageSection(&b, labels, data.Figures)
		b.WriteString("\n")
	}

	b.WriteString("  </article>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	return b.String()
}

// writeCodeSection emits one <pre> block per entry, in order.
func (r *PageRenderer) writeCodeSection(b *strings.Builder, labels Labels, blocks []CodeBlock) {
	b.WriteString(`<section class="section"><h2>`)
	b.WriteString(EscapeText(labels.CodeHeading))
	b.WriteString(`</h2>`)
	for _, c := range blocks {
		b.WriteString(`<pre class="code" data-lang="`)
		b.WriteString(EscapeAttr(c.Language))
		b.WriteString(`"><code>`)
		b.WriteString(r.codeBody(c))
		b.WriteString(`</code></pre>`)
	}
	b.WriteString(`</section>`)
}

// codeBody returns the highlighted body when possible, the escaped body otherwise.
func (r *PageRenderer) codeBody(c CodeBlock) string {
	if r.Highlighter != nil {
		if highlighted, ok := r.Highlighter.Highlight(c.Language, c.Body); ok {
			return highlighted
		}
	}
	return EscapeText(c.Body)
}

// writeImageSection emits one <figure> per entry. An empty caption still
// produces an empty <figcaption>.
func writeImageSection(b *strings.Builder, labels Labels, figures []Figure) {
	b.WriteString(`<section class="section"><h2>`)
	b.WriteString(EscapeText(labels.ImagesHeading))
	b.WriteString(`</h2><div class="img-wrap">`)
	for _, f := range figures {
		b.WriteString(`<figure><img src="`)
		b.WriteString(EscapeAttr(f.URL))
		b.WriteString(`" alt="`)
		b.WriteString(EscapeAttr(f.Alt))
		b.WriteString(`"><figcaption class="muted">`)
		b.WriteString(EscapeText(f.Alt))
		b.WriteString(`</figcaption></figure>`)
	}
	b.WriteString(`</div></section>`)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
