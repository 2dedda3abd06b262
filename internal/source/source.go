package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-howto"
)

// MaxSourceSize caps how much of a source file is read (1MB).
const MaxSourceSize = 1 << 20

// Format identifies a source file format.
type Format string

// Supported formats.
const (
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
)

var formatsByExt = map[string]Format{
	".yaml":     FormatYAML,
	".yml":      FormatYAML,
	".toml":     FormatTOML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

// Extensions lists the accepted file extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(formatsByExt))
	for ext := range formatsByExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// FormatFor picks the format from the file extension (case-insensitive).
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formatsByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// IsSource reports whether path has an accepted extension.
func IsSource(path string) bool {
	_, err := FormatFor(path)
	return err == nil
}

// File is a decoded source. It implements howto.FormState.
type File struct {
	Path        string // empty when decoded from a reader
	title       string
	description string
	code        []howto.CodeRow
	images      []howto.ImageRow
}

// Compile-time interface check.
var _ howto.FormState = (*File)(nil)

// Title returns the raw title.
func (f *File) Title() string { return f.title }

// Description returns the raw description.
func (f *File) Description() string { return f.description }

// CodeRows returns a copy of the code rows.
func (f *File) CodeRows() []howto.CodeRow { return append([]howto.CodeRow(nil), f.code...) }

// ImageRows returns a copy of the image rows.
func (f *File) ImageRows() []howto.ImageRow { return append([]howto.ImageRow(nil), f.images...) }

// Dir returns the directory holding the file, the base for relative image
// URLs. Empty when the file was not loaded from disk.
func (f *File) Dir() string {
	if f.Path == "" {
		return ""
	}
	return filepath.Dir(f.Path)
}

// Form copies the file into an editable form. Empty row lists get one blank
// row, like a fresh form.
func (f *File) Form() *howto.Form {
	form := howto.NewForm()
	form.SetTitle(f.title)
	form.SetDescription(f.description)
	for i, row := range f.code {
		if i == 0 {
			form.UpdateCodeRow(0, row)
			continue
		}
		form.AddCodeRow(row)
	}
	for i, row := range f.images {
		if i == 0 {
			form.UpdateImageRow(0, row)
			continue
		}
		form.AddImageRow(row)
	}
	return form
}

// Load reads and decodes the source file at path.
func Load(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	fh, err := os.Open(path) // #nosec G304 -- user-provided source path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer fh.Close()

	f, err := Decode(fh, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Decode reads at most MaxSourceSize bytes from r and decodes them as format.
func Decode(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSourceSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if len(data) > MaxSourceSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxSourceSize)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")) // UTF-8 BOM

	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	case FormatMarkdown:
		return decodeMarkdown(data), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
