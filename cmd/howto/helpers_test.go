package main

// Notes:
// - Shared test infrastructure: environments with captured output, a mock
//   exporter and a mock pool for batch tests, and a source-file writer.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/config"
)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Stdout: stdout,
		Stderr: stderr,
		Config: config.DefaultConfig(),
	}, stdout, stderr
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockExporter renders through the real Renderer and fakes the PDF.
type mockExporter struct {
	mu     sync.Mutex
	calls  []howto.ExportInput
	err    error
	pdfErr error
}

func (m *mockExporter) Export(_ context.Context, in howto.ExportInput) (*howto.ExportResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, in)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	res := &howto.ExportResult{
		HTML:        []byte(howto.Render(in.Document)),
		Filename:    howto.Filename(in.Document.Title),
		PDFFilename: howto.FilenameWithExt(in.Document.Title, ".pdf"),
	}
	if in.PDF {
		if m.pdfErr != nil {
			return nil, m.pdfErr
		}
		res.PDF = []byte("%PDF-1.4 mock")
	}
	return res, nil
}

// mockPool hands out one shared mockExporter.
type mockPool struct {
	exp        *mockExporter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
}

func (p *mockPool) Acquire() (Exporter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.exp, nil
}

func (p *mockPool) Release(Exporter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
