package pipeline

// Notes:
// - ResolveImagePaths is tested through its public API; helpers have their own
//   tables because the traversal rules are security relevant.
// - Unix-style expectations are skipped on Windows.

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveImagePaths - Main Function Tests
// ---------------------------------------------------------------------------

func TestResolveImagePaths(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("Unix path expectations")
	}

	tests := []struct {
		name      string
		url       string
		sourceDir string
		want      string
	}{
		{
			name:      "relative image with dot slash",
			url:       "./images/logo.png",
			sourceDir: "/docs",
			want:      "file:///docs/images/logo.png",
		},
		{
			name:      "relative image without dot slash",
			url:       "images/logo.png",
			sourceDir: "/docs",
			want:      "file:///docs/images/logo.png",
		},
		{
			name:      "absolute path unchanged",
			url:       "/abs/logo.png",
			sourceDir: "/docs",
			want:      "/abs/logo.png",
		},
		{
			name:      "https URL unchanged",
			url:       "https://example.com/logo.png",
			sourceDir: "/docs",
			want:      "https://example.com/logo.png",
		},
		{
			name:      "data URI unchanged",
			url:       "data:image/png;base64,AAAA",
			sourceDir: "/docs",
			want:      "data:image/png;base64,AAAA",
		},
		{
			name:      "empty sourceDir returns unchanged",
			url:       "images/logo.png",
			sourceDir: "",
			want:      "images/logo.png",
		},
		{
			name:      "parent directory traversal left untouched",
			url:       "../../../etc/passwd",
			sourceDir: "/docs",
			want:      "../../../etc/passwd",
		},
		{
			name:      "double dot in middle left untouched",
			url:       "images/../../../etc/passwd",
			sourceDir: "/docs",
			want:      "images/../../../etc/passwd",
		},
		{
			name:      "path with spaces encoded",
			url:       "my images/logo.png",
			sourceDir: "/docs",
			want:      "file:///docs/my%20images/logo.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := []Figure{{URL: tt.url, Alt: "caption"}}
			got, err := ResolveImagePaths(in, tt.sourceDir)
			if err != nil {
				t.Fatalf("ResolveImagePaths() unexpected error: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("ResolveImagePaths() returned %d figures, want 1", len(got))
			}
			if got[0].URL != tt.want {
				t.Errorf("URL = %q, want %q", got[0].URL, tt.want)
			}
			if got[0].Alt != "caption" {
				t.Errorf("Alt = %q, want caption unchanged", got[0].Alt)
			}
		})
	}
}

func TestResolveImagePaths_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("Unix path expectations")
	}

	in := []Figure{{URL: "a.png"}, {URL: "https://example.com/b.png"}}
	got, err := ResolveImagePaths(in, "/docs")
	if err != nil {
		t.Fatalf("ResolveImagePaths() unexpected error: %v", err)
	}

	if in[0].URL != "a.png" {
		t.Errorf("input mutated: %q", in[0].URL)
	}
	if !strings.HasPrefix(got[0].URL, "file://") {
		t.Errorf("got[0].URL = %q, want file:// URL", got[0].URL)
	}
	if got[1].URL != in[1].URL {
		t.Errorf("got[1].URL = %q, want %q", got[1].URL, in[1].URL)
	}
}

func TestResolveImagePaths_Empty(t *testing.T) {
	t.Parallel()

	got, err := ResolveImagePaths(nil, "/docs")
	if err != nil {
		t.Fatalf("ResolveImagePaths() unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("ResolveImagePaths(nil) = %v, want nil", got)
	}
}

// ---------------------------------------------------------------------------
// TestIsRelativePath - Helper Function Tests
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		// Relative paths (should return true)
		{"./image.png", true},
		{"images/logo.png", true},
		{"../parent.png", true},
		{"file.png", true},
		{"sub/dir/file.png", true},

		// Non-relative paths (should return false)
		{"", false},
		{"http://example.com/img.png", false},
		{"https://example.com/img.png", false},
		{"file:///abs/path.png", false},
		{"data:image/png;base64,ABC", false},
		{"//cdn.example.com/img.png", false},
		{"#anchor", false},
		{"/absolute/path.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsPathUnderDir - Security Helper Tests
// ---------------------------------------------------------------------------

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		absPath string
		dir     string
		want    bool
	}{
		{
			name:    "direct child",
			absPath: "/docs/image.png",
			dir:     "/docs",
			want:    true,
		},
		{
			name:    "nested child",
			absPath: "/docs/images/logo.png",
			dir:     "/docs",
			want:    true,
		},
		{
			name:    "parent directory",
			absPath: "/etc/passwd",
			dir:     "/docs",
			want:    false,
		},
		{
			name:    "sibling directory",
			absPath: "/other/file.png",
			dir:     "/docs",
			want:    false,
		},
		{
			name:    "dir with trailing slash",
			absPath: "/docs/image.png",
			dir:     "/docs/",
			want:    true,
		},
		{
			name:    "similar prefix but different dir",
			absPath: "/docs-other/image.png",
			dir:     "/docs",
			want:    false,
		},
		{
			name:    "exact match",
			absPath: "/docs",
			dir:     "/docs",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Normalize paths for the current OS
			absPath := filepath.FromSlash(tt.absPath)
			dir := filepath.FromSlash(tt.dir)

			if got := isPathUnderDir(absPath, dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", absPath, dir, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPathToFileURL - URL Generation Tests
// ---------------------------------------------------------------------------

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		absPath string
		want    string
	}{
		{
			name:    "unix path",
			absPath: "/docs/images/logo.png",
			want:    "file:///docs/images/logo.png",
		},
		{
			name:    "path with spaces",
			absPath: "/docs/my images/logo.png",
			want:    "file:///docs/my%20images/logo.png",
		},
		{
			name:    "path with unicode",
			absPath: "/docs/日本語/logo.png",
			want:    "file:///docs/%E6%97%A5%E6%9C%AC%E8%AA%9E/logo.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Skip Windows-specific path tests on Unix
			if runtime.GOOS == "windows" && !strings.Contains(tt.absPath, ":") {
				// On Windows, we need drive letters, skip Unix-style tests
				t.Skip("Unix path test skipped on Windows")
			}

			got := pathToFileURL(tt.absPath)
			if got != tt.want {
				t.Errorf("pathToFileURL(%q) = %q, want %q", tt.absPath, got, tt.want)
			}
		})
	}
}
