package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

func writePage(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", name), []byte(content), 0644))
}

func TestPageServiceLoadsMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about.md", "---\ntitle: About us\nlastUpdated: 2024-05-01\n---\n# Hello\n\nWe cook.")
	writePage(t, dir, "house-rules.md", "Be kind.")

	pages := NewPageService(dir, false)
	require.NoError(t, pages.LoadPages())

	about, err := pages.Page("about")
	require.NoError(t, err)
	assert.Equal(t, "About us", about.Title)
	assert.Equal(t, "May 1, 2024", about.LastUpdated)
	assert.Contains(t, about.Content, "<h1")

	rules, err := pages.Page("house-rules")
	require.NoError(t, err)
	assert.Equal(t, "House Rules", rules.Title)

	_, err = pages.Page("../secret")
	assert.ErrorIs(t, err, ErrPageNotFound)
	_, err = pages.Page("missing")
	assert.ErrorIs(t, err, ErrPageNotFound)

	assert.Equal(t, []string{"about", "house-rules"}, pages.Slugs())
}

func TestPageServiceMissingDirectory(t *testing.T) {
	pages := NewPageService(filepath.Join(t.TempDir(), "nope"), true)
	require.NoError(t, pages.LoadPages())
	_, err := pages.Page("about")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestSitemapListsRecipesAndPages(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.UserLevelUser)
	recipe := env.createRecipe(t, alice, "Risotto")

	dir := t.TempDir()
	writePage(t, dir, "about.md", "About")
	pages := NewPageService(dir, false)
	require.NoError(t, pages.LoadPages())

	out, err := NewSitemapService(env.recipes, pages, "https://flavor.example/").GenerateSitemap()
	require.NoError(t, err)

	xml := string(out)
	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, "<loc>https://flavor.example/recipes/"+recipe.ID+"</loc>")
	assert.Contains(t, xml, "<loc>https://flavor.example/pages/about</loc>")
	assert.Contains(t, xml, "<loc>https://flavor.example/</loc>")
}
