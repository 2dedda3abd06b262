package howto

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/alnah/go-howto/internal/assets"
	"github.com/alnah/go-howto/internal/fileutil"
	"github.com/alnah/go-howto/internal/pipeline"
)

// Generator renders Documents and exports them as HTML and, on request, PDF.
// Create with NewGenerator and call Close when done. Rendering is safe for
// concurrent use; PDF exports on one Generator are serialized because they
// share one browser. Use GeneratorPool for parallel PDF exports.
type Generator struct {
	cfg         generatorConfig
	assetLoader assets.AssetLoader
	renderer    *Renderer

	mu     sync.Mutex // guards pdf and closed
	pdf    pdfConverter
	closed bool
}

// NewGenerator creates a Generator. Returns an error if the asset path is
// invalid or the style cannot be resolved.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:         generatorConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		g.assetLoader = resolver
	}

	css, err := g.resolveStyle()
	if err != nil {
		return nil, err
	}

	g.renderer = NewRenderer(RenderOptions{
		CSS:            css,
		Labels:         g.cfg.labels,
		Highlight:      g.cfg.highlight,
		HighlightStyle: g.cfg.highlightStyle,
	})
	return g, nil
}

// resolveStyle turns the style input (name, path or CSS content) into CSS.
func (g *Generator) resolveStyle() (string, error) {
	input := g.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	if fileutil.IsCSS(input) {
		return input, nil
	}

	css, err := g.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}

// Renderer returns the renderer configured for this generator.
func (g *Generator) Renderer() *Renderer {
	return g.renderer
}

// Preview collects state and renders it, the live preview of a form.
func (g *Generator) Preview(state FormState) string {
	return g.renderer.Render(Collect(state))
}

// Export renders the document and, when input.PDF is set, prints it to PDF.
// The HTML part never fails. Internal panics are recovered into errors.
func (g *Generator) Export(ctx context.Context, input ExportInput) (result *ExportResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	doc := input.Document
	res := &ExportResult{
		HTML:        []byte(g.renderer.Render(doc)),
		Filename:    Filename(doc.Title),
		PDFFilename: FilenameWithExt(doc.Title, ".pdf"),
	}

	if !input.PDF {
		return res, nil
	}

	pdfHTML := string(res.HTML)
	if input.SourceDir != "" && len(doc.ImageEntries) > 0 {
		data := toPageData(doc)
		data.Figures, err = pipeline.ResolveImagePaths(data.Figures, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving image paths: %w", err)
		}
		pdfHTML = g.renderer.renderData(data)
	}

	pdfBytes, err := g.toPDF(ctx, pdfHTML, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// toPDF runs one conversion on the lazily created backend.
func (g *Generator) toPDF(ctx context.Context, html string, opts *pdfOptions) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, ErrGeneratorClosed
	}
	if g.pdf == nil {
		g.pdf = newRodConverter(g.cfg.timeout)
	}
	return g.pdf.ToPDF(ctx, html, opts)
}

// Close releases the headless browser, if one was started. Further PDF
// exports fail with ErrGeneratorClosed; HTML exports keep working.
func (g *Generator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true
	if g.pdf != nil {
		return g.pdf.Close()
	}
	return nil
}
