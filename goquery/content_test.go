package goquery_test

import (
	"testing"

	"github.com/fwojciec/harvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocument(html)
	require.NoError(t, err)
	return doc
}

func TestExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("renders blocks in document order", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body>
<div class="entry-content">
	<p>First paragraph here.</p>
	<h2>Section title</h2>
	<ul><li>Short</li><li>Long enough item</li></ul>
	<blockquote>Quoted words</blockquote>
	<script>var x = 1;</script>
	<aside><p>Related stuff</p></aside>
	<a class="btn" href="/formation">Formation</a>
	<p>First paragraph here.</p>
</div>
</body></html>`)

		content := goquery.ExtractContent(doc)

		assert.Equal(t, "First paragraph here.\n\n## Section title\n\n• Long enough item\n\n\"Quoted words\"", content)
	})

	t.Run("removes noise before walking blocks", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body>
<div class="entry-content">
	<p>Keep this text</p>
	<div class="social-share"><p>Share on X now</p></div>
	<div id="section-meta"><p>Tags and metadata</p></div>
	<p>Read <a class="featured-link" href="/x">this offer</a> later</p>
</div>
</body></html>`)

		content := goquery.ExtractContent(doc)

		assert.Equal(t, "Keep this text\n\nRead later", content)
	})

	t.Run("does not modify the parsed document", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body>
<div class="entry-content">
	<p>Body text here</p>
	<div class="social-share"><p>Share on X now</p></div>
</div>
</body></html>`)

		_ = goquery.ExtractContent(doc)

		assert.Equal(t, 1, doc.Find(".social-share").Length())
	})

	t.Run("prefers entry-content over post-content", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body>
<div class="post-content"><p>From post content</p></div>
<div class="entry-content"><p>From entry content</p></div>
</body></html>`)

		assert.Equal(t, "From entry content", goquery.ExtractContent(doc))
	})

	t.Run("falls through regions without blocks", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body>
<div class="entry-content"><p>ab</p></div>
<div class="post-content"><p>Second region text</p></div>
</body></html>`)

		assert.Equal(t, "Second region text", goquery.ExtractContent(doc))
	})

	t.Run("keeps only leaf divs with enough text", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body>
<div class="entry-content">
	<div>Short</div>
	<div>This is a long leaf div</div>
	<div><p>Nested para</p></div>
</div>
</body></html>`)

		assert.Equal(t, "This is a long leaf div\n\nNested para", goquery.ExtractContent(doc))
	})

	t.Run("prefixes orphan list items", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body>
<div class="entry-content"><li>Orphan item</li></div>
</body></html>`)

		assert.Equal(t, "• Orphan item", goquery.ExtractContent(doc))
	})

	t.Run("collapses whitespace and decodes leftover entities", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body>
<div class="entry-content"><p>Fish   &amp;amp;
	chips&amp;nbsp;today</p></div>
</body></html>`)

		assert.Equal(t, "Fish & chips today", goquery.ExtractContent(doc))
	})

	t.Run("returns empty string without content region", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body><p>Loose paragraph</p></body></html>`)

		assert.Empty(t, goquery.ExtractContent(doc))
	})
}

func TestCascade(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `<html><body></body></html>`)

	t.Run("returns first successful strategy", func(t *testing.T) {
		t.Parallel()

		calls := 0
		strategies := []goquery.Strategy[string]{
			func(*goquery.Document) (string, bool) { calls++; return "", false },
			func(*goquery.Document) (string, bool) { calls++; return "second", true },
			func(*goquery.Document) (string, bool) { calls++; return "third", true },
		}

		assert.Equal(t, "second", goquery.Cascade(doc, strategies))
		assert.Equal(t, 2, calls)
	})

	t.Run("returns zero value when nothing succeeds", func(t *testing.T) {
		t.Parallel()

		strategies := []goquery.Strategy[int]{
			func(*goquery.Document) (int, bool) { return 7, false },
		}

		assert.Equal(t, 0, goquery.Cascade(doc, strategies))
	})
}
