package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeParserDropsRawHTML(t *testing.T) {
	p := NewRecipeParser()

	out, err := p.Parse([]byte("Stir <script>alert(1)</script> **well**\n\n<iframe src=\"https://evil.example\"></iframe>"))
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<iframe")
	assert.Contains(t, html, "<strong>well</strong>")
}

func TestRecipeParserSanitizesLinks(t *testing.T) {
	p := NewRecipeParser()

	out, err := p.Parse([]byte("[click](javascript:alert(1)) and [stock](https://example.com/stock) or https://example.com/video"))
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, `<a href="https://example.com/stock" rel="nofollow ugc noopener" target="_blank">stock</a>`)
	assert.Contains(t, html, `href="https://example.com/video"`)
}

func TestRecipeParserDemotesHeadings(t *testing.T) {
	out, err := NewRecipeParser().Parse([]byte("# Tips\n\nLine one\nline two"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h3>Tips</h3>")
	assert.NotContains(t, html, "<h1>")
	assert.Contains(t, html, "Line one<br />")
}

func TestPageParserReadsFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: About\nlastUpdated: 2024-03-01\n---\n\n## Our kitchen\n\n<div class=\"note\">Hi</div>\n")

	out, meta, err := NewPageParser().ParseWithFrontmatter(source)
	require.NoError(t, err)

	assert.Equal(t, "About", meta["title"])
	html := string(out)
	assert.Contains(t, html, `<h2 id="our-kitchen">Our kitchen</h2>`)
	assert.Contains(t, html, `<div class="note">Hi</div>`)
}

func TestPageParserBadFrontmatter(t *testing.T) {
	_, meta, err := NewPageParser().ParseWithFrontmatter([]byte("---\ntitle: [unclosed\n---\nBody"))
	require.NoError(t, err)
	assert.Empty(t, meta)
}
