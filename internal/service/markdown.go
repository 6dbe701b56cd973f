package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdownImporter renders markdown into editor markup.
type markdownImporter struct {
	md goldmark.Markdown
}

// importedDoc is rendered markup plus the text of the first top-level heading.
type importedDoc struct {
	HTML  string
	Title string
}

func newMarkdownImporter() *markdownImporter {
	// Raw HTML in the source is not passed through to the editor.
	return &markdownImporter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.TaskList,
				extension.Strikethrough,
				extension.Linkify,
			),
		),
	}
}

func (m *markdownImporter) Convert(source []byte) (importedDoc, error) {
	doc := m.md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, source, doc); err != nil {
		return importedDoc{}, fmt.Errorf("convert markdown: %w", err)
	}

	return importedDoc{
		HTML:  buf.String(),
		Title: firstHeading(doc, source),
	}, nil
}

// firstHeading returns the text of the first level 1 heading at document level.
func firstHeading(doc ast.Node, source []byte) string {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			continue
		}

		var b strings.Builder
		_ = ast.Walk(h, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(source))
				if t.SoftLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(t.Value)
			}
			return ast.WalkContinue, nil
		})
		return strings.TrimSpace(b.String())
	}
	return ""
}
