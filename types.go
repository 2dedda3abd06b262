package howto

import (
	"fmt"
	"strings"
)

// Document is the normalized content of one instruction page.
// Build it with Collect; Render accepts any Document.
type Document struct {
	Title        string       // trimmed; empty falls back to the default title
	Description  string       // trimmed; empty omits the description block
	CodeEntries  []CodeEntry  // in row order, empty bodies dropped
	ImageEntries []ImageEntry // in row order, empty URLs dropped
}

// CodeEntry is one retained code snippet.
type CodeEntry struct {
	Language string // trimmed tag, stored verbatim
	Body     string // untouched, including leading and trailing whitespace
}

// ImageEntry is one retained illustration.
type ImageEntry struct {
	URL string // trimmed, never empty
	Alt string // trimmed caption, may be empty
}

// CodeRow is one raw code row as entered in a form.
type CodeRow struct {
	Language string
	Body     string
}

// ImageRow is one raw image row as entered in a form.
type ImageRow struct {
	URL string
	Alt string
}

// FormState exposes the raw values a Collector reads.
// Implementations must not change while Collect runs.
type FormState interface {
	Title() string
	Description() string
	CodeRows() []CodeRow
	ImageRows() []ImageRow
}

// Languages is the fixed set of language tags offered for code rows.
// The empty tag means plain text. Tags are never validated against this list.
var Languages = []string{"", "bash", "sh", "yaml", "json", "ini", "sql", "python", "javascript"}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures the PDF page. It has no effect on HTML output.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Comparison is case-insensitive and p is not mutated.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// ExportInput holds the parameters of one export.
type ExportInput struct {
	Document  Document
	PDF       bool          // also print the page to PDF
	Page      *PageSettings // PDF page settings (nil = defaults)
	SourceDir string        // base for relative image URLs in the PDF (optional)
}

// ExportResult holds the exported page and its suggested file names.
type ExportResult struct {
	HTML        []byte
	PDF         []byte // nil unless ExportInput.PDF was set
	Filename    string // "<slug>.html"
	PDFFilename string // "<slug>.pdf"
}
