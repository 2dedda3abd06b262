package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ResolveImagePaths converts relative image URLs to absolute file:// URLs.
// If sourceDir is empty, returns the figures unchanged.
//
// Headless Chrome loads the page from a temporary file, so relative paths
// written next to a source document would not resolve during PDF rendering.
// The exported HTML keeps the URLs exactly as entered; only the copy handed
// to the PDF backend is rewritten.
//
// Does NOT rewrite:
//   - URLs (http, https, file, data, protocol-relative)
//   - Anchors and absolute paths
//   - Paths escaping sourceDir
func ResolveImagePaths(figures []Figure, sourceDir string) ([]Figure, error) {
	if sourceDir == "" || len(figures) == 0 {
		return figures, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}

	resolved := make([]Figure, len(figures))
	for i, f := range figures {
		resolved[i] = f
		if !isRelativePath(f.URL) {
			continue
		}

		absPath := filepath.Join(absSourceDir, f.URL)
		if !isPathUnderDir(absPath, absSourceDir) {
			continue // leave traversal attempts untouched
		}
		resolved[i].URL = pathToFileURL(absPath)
	}
	return resolved, nil
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "file://") ||
		strings.HasPrefix(path, "data:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	if strings.HasPrefix(path, "#") {
		return false
	}

	if filepath.IsAbs(path) {
		return false
	}

	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths correctly.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
