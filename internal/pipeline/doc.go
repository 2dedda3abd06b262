// Package pipeline implements the page-assembly stages behind the howto
// renderer.
//
// This package handles:
//   - HTML text and attribute escaping
//   - The inline description transform (backtick code spans, paragraphs, line breaks)
//   - Optional syntax highlighting of code entries via chroma
//   - Assembly of the standalone HTML5 page
//   - Resolution of relative image paths for PDF rendering
//
// The package knows nothing about form state or collection. The root howto
// package converts its public Document type into PageData before rendering,
// which keeps this package free of import cycles and easy to test in isolation.
package pipeline
