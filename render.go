package howto

import (
	"github.com/alnah/go-howto/internal/assets"
	"github.com/alnah/go-howto/internal/pipeline"
)

// RenderOptions configures a Renderer.
type RenderOptions struct {
	CSS            string // inline stylesheet; empty uses the built-in default style
	Labels         Labels // empty fields fall back to LabelsEN
	Highlight      bool   // color code entries with chroma
	HighlightStyle string // chroma style name (default "monokai")
}

// Renderer turns Documents into standalone HTML5 pages.
// A Renderer is immutable and safe for concurrent use.
type Renderer struct {
	page pipeline.PageRenderer
}

// NewRenderer creates a Renderer from opts.
func NewRenderer(opts RenderOptions) *Renderer {
	css := opts.CSS
	if css == "" {
		css = assets.DefaultStyle()
	}

	r := &Renderer{page: pipeline.PageRenderer{
		CSS:    css,
		Labels: toPipelineLabels(opts.Labels),
	}}
	if opts.Highlight {
		r.page.Highlighter = pipeline.NewChromaHighlighter(opts.HighlightStyle)
	}
	return r
}

// Render returns the page for doc. It never fails and performs no I/O.
func (r *Renderer) Render(doc Document) string {
	return r.page.Render(toPageData(doc))
}

// renderData renders already converted page data, used when the PDF copy
// needs rewritten image URLs.
func (r *Renderer) renderData(data pipeline.PageData) string {
	return r.page.Render(data)
}

var defaultRenderer = NewRenderer(RenderOptions{})

// Render returns the page for doc with the default style and English labels.
// Identical documents always produce identical pages.
func Render(doc Document) string {
	return defaultRenderer.Render(doc)
}

// toPageData converts the public Document type to internal pipeline.PageData.
func toPageData(doc Document) pipeline.PageData {
	data := pipeline.PageData{
		Title:       doc.Title,
		Description: doc.Description,
	}
	if len(doc.CodeEntries) > 0 {
		data.Code = make([]pipeline.CodeBlock, len(doc.CodeEntries))
		for i, c := range doc.CodeEntries {
			data.Code[i] = pipeline.CodeBlock(c)
		}
	}
	if len(doc.ImageEntries) > 0 {
		data.Figures = make([]pipeline.Figure, len(doc.ImageEntries))
		for i, img := range doc.ImageEntries {
			data.Figures[i] = pipeline.Figure(img)
		}
	}
	return data
}

// toPipelineLabels converts the public Labels type to internal pipeline.Labels.
func toPipelineLabels(l Labels) pipeline.Labels {
	return pipeline.Labels(l)
}
