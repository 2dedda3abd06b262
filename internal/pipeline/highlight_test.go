package pipeline

import (
	"strings"
	"testing"
)

func TestNewChromaHighlighter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		styleName string
	}{
		{name: "empty name uses default style", styleName: ""},
		{name: "known style", styleName: "github"},
		{name: "unknown style falls back", styleName: "no-such-style-xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewChromaHighlighter(tt.styleName)
			if h == nil || h.style == nil || h.formatter == nil {
				t.Fatal("NewChromaHighlighter() returned incomplete highlighter")
			}
		})
	}
}

func TestChromaHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	h := NewChromaHighlighter("")

	tests := []struct {
		name     string
		language string
		body     string
		wantOK   bool
		wantText string
	}{
		{name: "bash", language: "bash", body: "echo hi", wantOK: true, wantText: "echo"},
		{name: "sh alias", language: "sh", body: "ls -la", wantOK: true, wantText: "ls"},
		{name: "json", language: "json", body: `{"a": 1}`, wantOK: true, wantText: "&#34;a&#34;"},
		{name: "python", language: "python", body: "print(1)", wantOK: true, wantText: "print"},
		{name: "plain text is not highlighted", language: "", body: "echo hi", wantOK: false},
		{name: "unknown language is not highlighted", language: "no-such-lang-xyz", body: "x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := h.Highlight(tt.language, tt.body)
			if ok != tt.wantOK {
				t.Fatalf("Highlight(%q) ok = %v, want %v", tt.language, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !strings.Contains(got, tt.wantText) {
				t.Errorf("Highlight(%q) = %q, should contain %q", tt.language, got, tt.wantText)
			}
			if strings.Contains(got, "<pre") {
				t.Errorf("Highlight(%q) should not emit its own <pre> wrapper: %q", tt.language, got)
			}
		})
	}
}

func TestChromaHighlighter_Highlight_EscapesMarkup(t *testing.T) {
	t.Parallel()

	h := NewChromaHighlighter("")
	got, ok := h.Highlight("bash", `echo "</code><script>alert(1)</script>"`)
	if !ok {
		t.Fatal("Highlight(bash) ok = false, want true")
	}
	if strings.Contains(got, "<script>") || strings.Contains(got, "</code>") {
		t.Errorf("highlighted output contains raw markup from input: %q", got)
	}
}
