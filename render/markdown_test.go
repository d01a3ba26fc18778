package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasics(t *testing.T) {
	c := NewConverter("")

	html, err := c.Render("# Heading\n\nSome *emphasis* and a [link](https://example.com).\n")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Heading")
	assert.Contains(t, html, "<em>emphasis</em>")
	assert.Contains(t, html, `<a href="https://example.com"`)
}

func TestRenderGFMTable(t *testing.T) {
	c := NewConverter("")

	html, err := c.Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}

func TestRenderCodeBlockInlineStyles(t *testing.T) {
	c := NewConverter("monokai")

	html, err := c.Render("```go\nfunc main() {}\n```\n")
	require.NoError(t, err)

	// Blogger pages carry no highlighting stylesheet, so the styles must
	// be inlined into the markup itself
	assert.Contains(t, html, "<pre")
	assert.Contains(t, html, "style=")
}

func TestRenderKeepsRawHTML(t *testing.T) {
	c := NewConverter("")

	html, err := c.Render(`before <img src="https://cdn.example/p.png" alt="x"> after`)
	require.NoError(t, err)
	assert.Contains(t, html, `<img src="https://cdn.example/p.png"`)
}
