package howto

import "strings"

// Collect reads state and returns a normalized Document.
//
// Title, description, language, URL and caption are trimmed. A code row is
// kept only when its body contains non-whitespace, and the body itself is
// kept exactly as entered. An image row is kept only when its trimmed URL is
// non-empty. Row order is preserved. A nil state yields an empty Document.
// Collect never modifies state.
func Collect(state FormState) Document {
	if state == nil {
		return Document{}
	}

	doc := Document{
		Title:       strings.TrimSpace(state.Title()),
		Description: strings.TrimSpace(state.Description()),
	}

	for _, row := range state.CodeRows() {
		if strings.TrimSpace(row.Body) == "" {
			continue
		}
		doc.CodeEntries = append(doc.CodeEntries, CodeEntry{
			Language: strings.TrimSpace(row.Language),
			Body:     row.Body,
		})
	}

	for _, row := range state.ImageRows() {
		url := strings.TrimSpace(row.URL)
		if url == "" {
			continue
		}
		doc.ImageEntries = append(doc.ImageEntries, ImageEntry{
			URL: url,
			Alt: strings.TrimSpace(row.Alt),
		})
	}

	return doc
}
