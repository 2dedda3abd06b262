package pipeline

// Notes:
// - Structural assertions parse the output with golang.org/x/net/html so
//   injected markup shows up as extra elements or attributes.
// - Highlighting is tested with a stub; chroma itself is covered in highlight_test.go.

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// parsePage parses rendered output and fails the test on error.
func parsePage(t *testing.T, page string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("html.Parse() error: %v", err)
	}
	return doc
}

// findAll returns every element with the given tag name, in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// attr returns the value of the named attribute, or "" if absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// stubHighlighter highlights only the "go" language.
type stubHighlighter struct{}

func (stubHighlighter) Highlight(language, body string) (string, bool) {
	if language != "go" {
		return "", false
	}
	return `<span class="hl">` + EscapeText(body) + `</span>`, true
}

// ---------------------------------------------------------------------------
// TestPageRenderer_Render - Document Structure
// ---------------------------------------------------------------------------

func TestPageRenderer_Render_EndToEnd(t *testing.T) {
	t.Parallel()

	r := &PageRenderer{}
	page := r.Render(PageData{
		Title: "Setup",
		Code:  []CodeBlock{{Language: "bash", Body: "echo hi"}},
	})

	for _, want := range []string{
		"<!doctype html>",
		`<meta charset="utf-8" />`,
		`<meta name="viewport" content="width=device-width, initial-scale=1" />`,
		"<title>Setup</title>",
		"<h1>Setup</h1>",
		`<pre class="code" data-lang="bash"><code>echo hi</code></pre>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("output should contain %q\n%s", want, page)
		}
	}

	doc := parsePage(t, page)
	if got := len(findAll(doc, "pre")); got != 1 {
		t.Errorf("pre blocks = %d, want 1", got)
	}
	if got := len(findAll(doc, "figure")); got != 0 {
		t.Errorf("figures = %d, want 0", got)
	}
	if got := len(findAll(doc, "section")); got != 1 {
		t.Errorf("sections = %d, want 1 (code only)", got)
	}
}

func TestPageRenderer_Render_Sections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		data         PageData
		wantSections int
		wantPre      int
		wantFigures  int
	}{
		{
			name:         "empty document has no sections",
			data:         PageData{},
			wantSections: 0,
		},
		{
			name:         "description only",
			data:         PageData{Description: "hello"},
			wantSections: 1,
		},
		{
			name:         "images only",
			data:         PageData{Figures: []Figure{{URL: "a.png"}, {URL: "b.png", Alt: "B"}}},
			wantSections: 1,
			wantFigures:  2,
		},
		{
			name: "all sections",
			data: PageData{
				Description: "hello",
				Code:        []CodeBlock{{Body: "a"}, {Language: "sql", Body: "b"}},
				Figures:     []Figure{{URL: "a.png"}},
			},
			wantSections: 3,
			wantPre:      2,
			wantFigures:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parsePage(t, (&PageRenderer{}).Render(tt.data))

			if got := len(findAll(doc, "section")); got != tt.wantSections {
				t.Errorf("sections = %d, want %d", got, tt.wantSections)
			}
			if got := len(findAll(doc, "pre")); got != tt.wantPre {
				t.Errorf("pre blocks = %d, want %d", got, tt.wantPre)
			}
			if got := len(findAll(doc, "figure")); got != tt.wantFigures {
				t.Errorf("figures = %d, want %d", got, tt.wantFigures)
			}
		})
	}
}

func TestPageRenderer_Render_TitleFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		labels Labels
		want   string
	}{
		{name: "default label", labels: Labels{}, want: "<title>Instruction</title>"},
		{name: "custom label", labels: Labels{DefaultTitle: "Инструкция"}, want: "<title>Инструкция</title>"},
		{name: "label is escaped", labels: Labels{DefaultTitle: "A & B"}, want: "<title>A &amp; B</title>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := (&PageRenderer{Labels: tt.labels}).Render(PageData{})
			if !strings.Contains(page, tt.want) {
				t.Errorf("output should contain %q\n%s", tt.want, page)
			}
		})
	}
}

func TestPageRenderer_Render_Labels(t *testing.T) {
	t.Parallel()

	r := &PageRenderer{Labels: Labels{
		Lang:          "ru",
		CodeHeading:   "Код / Команды",
		ImagesHeading: "Иллюстрации",
	}}
	page := r.Render(PageData{
		Code:    []CodeBlock{{Body: "ls"}},
		Figures: []Figure{{URL: "a.png"}},
	})

	for _, want := range []string{`<html lang="ru">`, "<h2>Код / Команды</h2>", "<h2>Иллюстрации</h2>"} {
		if !strings.Contains(page, want) {
			t.Errorf("output should contain %q", want)
		}
	}
}

func TestPageRenderer_Render_Deterministic(t *testing.T) {
	t.Parallel()

	r := &PageRenderer{CSS: "body{margin:0}", Highlighter: stubHighlighter{}}
	data := PageData{
		Title:       "T",
		Description: "d `x`",
		Code:        []CodeBlock{{Language: "go", Body: "x := 1"}},
		Figures:     []Figure{{URL: "u", Alt: "a"}},
	}

	first := r.Render(data)
	for i := 0; i < 5; i++ {
		if got := r.Render(data); got != first {
			t.Fatalf("render %d differs from first render", i)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPageRenderer_Render_Escaping - Injection Resistance
// ---------------------------------------------------------------------------

func TestPageRenderer_Render_Escaping(t *testing.T) {
	t.Parallel()

	payload := `"><script>alert(1)</script><b x="`
	r := &PageRenderer{}
	page := r.Render(PageData{
		Title:       payload,
		Description: payload,
		Code:        []CodeBlock{{Language: payload, Body: payload}},
		Figures:     []Figure{{URL: payload, Alt: payload}},
	})

	doc := parsePage(t, page)

	if got := len(findAll(doc, "script")); got != 0 {
		t.Errorf("script elements = %d, want 0", got)
	}
	if got := len(findAll(doc, "b")); got != 0 {
		t.Errorf("injected <b> elements = %d, want 0", got)
	}

	imgs := findAll(doc, "img")
	if len(imgs) != 1 {
		t.Fatalf("img elements = %d, want 1", len(imgs))
	}
	if len(imgs[0].Attr) != 2 {
		t.Errorf("img attributes = %v, want only src and alt", imgs[0].Attr)
	}
	if got := attr(imgs[0], "src"); got != payload {
		t.Errorf("img src = %q, want %q", got, payload)
	}
	if got := attr(imgs[0], "alt"); got != payload {
		t.Errorf("img alt = %q, want %q", got, payload)
	}

	pres := findAll(doc, "pre")
	if len(pres) != 1 {
		t.Fatalf("pre elements = %d, want 1", len(pres))
	}
	if got := attr(pres[0], "data-lang"); got != payload {
		t.Errorf("data-lang = %q, want %q", got, payload)
	}
	if got := textContent(pres[0]); got != payload {
		t.Errorf("code text = %q, want literal %q", got, payload)
	}

	titles := findAll(doc, "title")
	if len(titles) != 1 || textContent(titles[0]) != payload {
		t.Errorf("title text should be the literal payload")
	}

	captions := findAll(doc, "figcaption")
	if len(captions) != 1 || textContent(captions[0]) != payload {
		t.Errorf("figcaption text should be the literal payload")
	}
}

func TestPageRenderer_Render_EmptyCaption(t *testing.T) {
	t.Parallel()

	page := (&PageRenderer{}).Render(PageData{Figures: []Figure{{URL: "https://e.com/a.png"}}})

	want := `<figure><img src="https://e.com/a.png" alt=""><figcaption class="muted"></figcaption></figure>`
	if !strings.Contains(page, want) {
		t.Errorf("output should contain %q\n%s", want, page)
	}
}

func TestPageRenderer_Render_CodeBodyKeptVerbatim(t *testing.T) {
	t.Parallel()

	body := "  indented\n\ttab\n\nblank line above\n"
	doc := parsePage(t, (&PageRenderer{}).Render(PageData{Code: []CodeBlock{{Body: body}}}))

	codes := findAll(doc, "code")
	if len(codes) != 1 {
		t.Fatalf("code elements = %d, want 1", len(codes))
	}
	if got := textContent(codes[0]); got != body {
		t.Errorf("code text = %q, want %q", got, body)
	}
}

func TestPageRenderer_Render_CSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		css         string
		wantContain string
		wantExclude string
	}{
		{
			name:        "css inlined",
			css:         ".gen h1{margin:0}",
			wantContain: "<style>\n.gen h1{margin:0}\n  </style>",
		},
		{
			name:        "style close sequence neutralized",
			css:         "a{}</style><script>x</script>",
			wantContain: `a{}<\/style><script>x<\/script>`,
			wantExclude: "</style><script>",
		},
		{
			name:        "empty css omits style block",
			css:         "   ",
			wantExclude: "<style>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := (&PageRenderer{CSS: tt.css}).Render(PageData{})
			if tt.wantContain != "" && !strings.Contains(page, tt.wantContain) {
				t.Errorf("output should contain %q\n%s", tt.wantContain, page)
			}
			if tt.wantExclude != "" && strings.Contains(page, tt.wantExclude) {
				t.Errorf("output should not contain %q", tt.wantExclude)
			}
		})
	}
}

func TestPageRenderer_Render_Highlighter(t *testing.T) {
	t.Parallel()

	r := &PageRenderer{Highlighter: stubHighlighter{}}
	page := r.Render(PageData{Code: []CodeBlock{
		{Language: "go", Body: "a < b"},
		{Language: "bash", Body: "a < b"},
	}})

	if !strings.Contains(page, `data-lang="go"><code><span class="hl">a &lt; b</span></code>`) {
		t.Errorf("supported language should be highlighted\n%s", page)
	}
	if !strings.Contains(page, `data-lang="bash"><code>a &lt; b</code>`) {
		t.Errorf("unsupported language should fall back to plain text\n%s", page)
	}
}
