package howto

import "time"

// defaultTimeout bounds one PDF export when the context has no deadline.
const defaultTimeout = 30 * time.Second

// generatorConfig holds the settings applied by options.
type generatorConfig struct {
	timeout        time.Duration
	styleInput     string // name, file path or raw CSS
	assetPath      string
	labels         Labels
	highlight      bool
	highlightStyle string
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout sets the PDF export timeout used when the context has no deadline.
// Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.cfg.timeout = d
		}
	}
}

// WithStyle selects the page stylesheet. The value may be a style name
// ("default", "print" or one from the asset path), a path to a CSS file, or
// raw CSS content.
func WithStyle(style string) Option {
	return func(g *Generator) {
		g.cfg.styleInput = style
	}
}

// WithAssetPath adds a directory of custom styles and templates. Assets found
// there take precedence over the built-in ones.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithLabels sets the page chrome strings, such as LabelsRU.
func WithLabels(labels Labels) Option {
	return func(g *Generator) {
		g.cfg.labels = labels
	}
}

// WithHighlighting colors code entries with the named chroma style.
// An empty name selects "monokai".
func WithHighlighting(style string) Option {
	return func(g *Generator) {
		g.cfg.highlight = true
		g.cfg.highlightStyle = style
	}
}

// withPDFConverter injects a PDF backend. Used by tests.
func withPDFConverter(c pdfConverter) Option {
	return func(g *Generator) {
		g.pdf = c
	}
}
