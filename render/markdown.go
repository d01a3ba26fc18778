// Package render converts markdown post bodies to the HTML that gets
// sent to Blogger.  Code blocks are highlighted with inline styles
// because Blogger templates don't carry a highlighting stylesheet.
package render

import (
	"bytes"
	"fmt"

	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const DefaultHighlightStyle = "friendly"

type Converter struct {
	md goldmark.Markdown
}

func NewConverter(highlightStyle string) *Converter {
	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				highlighting.NewHighlighting(
					highlighting.WithStyle(highlightStyle),
				),
			),
			goldmark.WithRendererOptions(
				// posts are authored locally, raw HTML is trusted
				html.WithUnsafe(),
			),
		),
	}
}

func (c *Converter) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render: converting markdown: %w", err)
	}
	return buf.String(), nil
}
