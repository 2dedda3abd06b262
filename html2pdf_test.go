package howto

// Notes:
// - rodRenderer itself needs Chrome and is not unit tested; rodConverter is
//   tested with a mock renderer that reads the temp file it is given.

import (
	"context"
	"errors"
	"os"
	"testing"
)

// fileReadingRenderer records the content of the file it is asked to render.
type fileReadingRenderer struct {
	path    string
	content string
	err     error
	closed  bool
}

func (r *fileReadingRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	r.path = filePath
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	r.content = string(data)
	if r.err != nil {
		return nil, r.err
	}
	return []byte("pdf"), nil
}

func (r *fileReadingRenderer) Close() error {
	r.closed = true
	return nil
}

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	renderer := &fileReadingRenderer{}
	conv := &rodConverter{renderer: renderer}

	got, err := conv.ToPDF(context.Background(), "<h1>x</h1>", nil)
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(got) != "pdf" {
		t.Errorf("ToPDF() = %q, want pdf", got)
	}
	if renderer.content != "<h1>x</h1>" {
		t.Errorf("renderer read %q, want the HTML passed in", renderer.content)
	}
	if _, err := os.Stat(renderer.path); !os.IsNotExist(err) {
		t.Errorf("temp file %s should be removed after ToPDF", renderer.path)
	}

	if err := conv.Close(); err != nil || !renderer.closed {
		t.Errorf("Close() error = %v, closed = %v", err, renderer.closed)
	}
}

func TestRodConverter_ToPDF_Error(t *testing.T) {
	t.Parallel()

	conv := &rodConverter{renderer: &fileReadingRenderer{err: ErrPageLoad}}
	if _, err := conv.ToPDF(context.Background(), "x", nil); !errors.Is(err, ErrPageLoad) {
		t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
	}
}

func TestRodRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(defaultTimeout)
	if _, err := r.RenderFromFile(ctx, "/tmp/none.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("a canceled context should not start a browser")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unused renderer error = %v", err)
	}
}

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       *pdfOptions
		wantW      float64
		wantH      float64
		wantMargin float64
	}{
		{name: "nil options use letter defaults", opts: nil, wantW: 8.5, wantH: 11, wantMargin: DefaultMargin},
		{name: "nil page uses defaults", opts: &pdfOptions{}, wantW: 8.5, wantH: 11, wantMargin: DefaultMargin},
		{name: "letter landscape swaps", opts: &pdfOptions{Page: &PageSettings{Size: "letter", Orientation: "landscape", Margin: 0.5}}, wantW: 11, wantH: 8.5, wantMargin: 0.5},
		{name: "a4 portrait", opts: &pdfOptions{Page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 1}}, wantW: 8.27, wantH: 11.69, wantMargin: 1},
		{name: "legal landscape", opts: &pdfOptions{Page: &PageSettings{Size: "legal", Orientation: "landscape", Margin: 0.5}}, wantW: 14, wantH: 8.5, wantMargin: 0.5},
		{name: "case insensitive", opts: &pdfOptions{Page: &PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 0.5}}, wantW: 11.69, wantH: 8.27, wantMargin: 0.5},
		{name: "unknown size falls back to letter", opts: &pdfOptions{Page: &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5}}, wantW: 8.5, wantH: 11, wantMargin: 0.5},
		{name: "zero margin uses default", opts: &pdfOptions{Page: &PageSettings{Size: "a4", Orientation: "portrait"}}, wantW: 8.27, wantH: 11.69, wantMargin: DefaultMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPDFOptions(tt.opts)
			if *got.PaperWidth != tt.wantW || *got.PaperHeight != tt.wantH {
				t.Errorf("paper = %vx%v, want %vx%v", *got.PaperWidth, *got.PaperHeight, tt.wantW, tt.wantH)
			}
			for name, m := range map[string]*float64{
				"top": got.MarginTop, "bottom": got.MarginBottom, "left": got.MarginLeft, "right": got.MarginRight,
			} {
				if *m != tt.wantMargin {
					t.Errorf("margin %s = %v, want %v", name, *m, tt.wantMargin)
				}
			}
			if !got.PrintBackground {
				t.Error("PrintBackground should be set")
			}
		})
	}
}

func TestFileURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/tmp/howto-1.html", want: "file:///tmp/howto-1.html"},
		{path: `C:\Temp\howto-1.html`, want: "file:///C:/Temp/howto-1.html"},
	}

	for _, tt := range tests {
		if got := fileURL(tt.path); got != tt.want {
			t.Errorf("fileURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
