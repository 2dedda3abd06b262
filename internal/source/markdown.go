package source

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/pipeline"
)

var markdownParser = goldmark.New().Parser()

// decodeMarkdown maps top-level Markdown blocks onto form fields.
// Blocks that are neither the title, code nor images keep their source text
// and are joined into the description with blank lines.
func decodeMarkdown(data []byte) *File {
	src := []byte(pipeline.NormalizeLineEndings(string(data)))
	root := markdownParser.Parse(text.NewReader(src))

	f := &File{}
	var description []string
	titled := false

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && !titled {
				f.title = strings.TrimSpace(string(node.Lines().Value(src)))
				titled = true
				continue
			}
		case *ast.FencedCodeBlock:
			f.code = append(f.code, howto.CodeRow{
				Language: string(node.Language(src)),
				Body:     string(node.Lines().Value(src)),
			})
			continue
		case *ast.CodeBlock:
			f.code = append(f.code, howto.CodeRow{Body: string(node.Lines().Value(src))})
			continue
		case *ast.Paragraph:
			if images, ok := imageOnly(node, src); ok {
				f.images = append(f.images, images...)
				continue
			}
		}

		if raw := strings.TrimSpace(blockSource(n, src)); raw != "" {
			description = append(description, raw)
		}
	}

	f.description = strings.Join(description, "\n\n")
	return f
}

// imageOnly returns the images of a paragraph holding nothing but images
// and whitespace.
func imageOnly(p *ast.Paragraph, src []byte) ([]howto.ImageRow, bool) {
	var rows []howto.ImageRow
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Image:
			rows = append(rows, howto.ImageRow{
				URL: string(node.Destination),
				Alt: inlineText(node, src),
			})
		case *ast.Text:
			if strings.TrimSpace(string(node.Segment.Value(src))) != "" {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return rows, len(rows) > 0
}

// inlineText concatenates the text below an inline node.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		default:
			b.WriteString(inlineText(c, src))
		}
	}
	return b.String()
}

// blockSource returns the source text spanned by a block, markers included
// for container blocks such as lists and quotes.
func blockSource(n ast.Node, src []byte) string {
	start, stop, ok := blockSpan(n)
	if !ok {
		return ""
	}
	// Extend to the start of the line so list and quote markers survive.
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	return string(src[start:stop])
}

func blockSpan(n ast.Node) (start, stop int, ok bool) {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			start = lines.At(0).Start
			stop = lines.At(lines.Len() - 1).Stop
			ok = true
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		s, e, found := blockSpan(c)
		if !found {
			continue
		}
		if !ok || s < start {
			start = s
		}
		if !ok || e > stop {
			stop = e
		}
		ok = true
	}
	return start, stop, ok
}
