package about

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntro(t *testing.T) {
	page, err := Intro()
	require.NoError(t, err)

	assert.Equal(t, "Food Hub", page.Title)
	assert.Contains(t, page.HTML, "<h1>Food Hub</h1>")
	assert.Contains(t, page.HTML, "<h2>What you can explore</h2>")
	require.Len(t, page.Links, 1)
	assert.Contains(t, page.Links[0], "kaggle.com")
}

func TestRender(t *testing.T) {
	page, err := Render([]byte("Intro\n\n# Title\n\n# Second\n\nSee <https://example.com> and [docs](docs.md).\n"))
	require.NoError(t, err)

	assert.Equal(t, "Title", page.Title)
	assert.Equal(t, []string{"https://example.com", "docs.md"}, page.Links)
	assert.Contains(t, page.HTML, "<p>Intro</p>")
}

func TestRender_Empty(t *testing.T) {
	page, err := Render(nil)
	require.NoError(t, err)
	assert.Empty(t, page.Title)
	assert.Empty(t, page.HTML)
	assert.Empty(t, page.Links)
}

func TestMarkdownReturnsCopy(t *testing.T) {
	md := Markdown()
	require.NotEmpty(t, md)
	md[0] = 'X'
	assert.NotEqual(t, md[0], Markdown()[0])
}
