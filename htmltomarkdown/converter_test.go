package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements harvest.Converter at compile time.
var _ harvest.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraphs", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Premier paragraphe.</p><p>Second paragraphe.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Premier paragraphe.\n\nSecond paragraphe.")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h2>Ce qui change</h2><h3>En détail</h3>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## Ce qui change")
		assert.Contains(t, md, "### En détail")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<ul><li>iOS</li><li>Android</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- iOS")
		assert.Contains(t, md, "- Android")
	})

	t.Run("converts emphasis and quotes", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><strong>Important</strong> et <em>nuancé</em></p><blockquote><p>Citation</p></blockquote>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**Important**")
		assert.Contains(t, md, "*nuancé*")
		assert.Contains(t, md, "> Citation")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<table><thead><tr><th>Réseau</th><th>Utilisateurs</th></tr></thead><tbody><tr><td>Instagram</td><td>2 Md</td></tr></tbody></table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Réseau")
		assert.Contains(t, md, "Instagram")
		assert.Contains(t, md, "|")
	})

	t.Run("keeps relative links without a domain", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><a href="/guide/">notre guide</a></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[notre guide](/guide/)")
	})

	t.Run("resolves relative links with a domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://www.blogdumoderateur.com"))
		md, err := conv.Convert(`<p><a href="/guide/">notre guide</a></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[notre guide](https://www.blogdumoderateur.com/guide/)")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  ")

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
