package goquery_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("normalizes protocol and root relative sources", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body><div class="entry-content">
<img src="//cdn.example/a.jpg" alt="A">
<img src="/img/a.jpg" title="T" width="250" height="120">
</div></body></html>`)
		ext := &goquery.ImageExtractor{BaseURL: "https://site.example"}

		images := ext.Extract(doc)

		require.Len(t, images, 2)
		assert.Equal(t, harvest.Image{URL: "https://cdn.example/a.jpg", Description: "A", Alt: "A"}, images["image_1"])
		assert.Equal(t, harvest.Image{
			URL:         "https://site.example/img/a.jpg",
			Description: "T",
			Width:       "250",
			Height:      "120",
		}, images["image_2"])
	})

	t.Run("reads lazy loading attributes", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body><div class="entry-content">
<img data-src="https://site.example/lazy.jpg">
<img data-lazy-src="https://site.example/lazier.jpg">
</div></body></html>`)
		ext := &goquery.ImageExtractor{BaseURL: "https://site.example"}

		images := ext.Extract(doc)

		assert.Equal(t, "https://site.example/lazy.jpg", images["image_1"].URL)
		assert.Equal(t, "https://site.example/lazier.jpg", images["image_2"].URL)
	})

	t.Run("uses figure caption when attributes are empty", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body><div class="entry-content">
<figure><img src="/a.jpg" alt=""><figcaption> Caption  here </figcaption></figure>
</div></body></html>`)
		ext := &goquery.ImageExtractor{BaseURL: "https://site.example"}

		images := ext.Extract(doc)

		assert.Equal(t, "Caption here", images["image_1"].Description)
		assert.Empty(t, images["image_1"].Alt)
	})

	t.Run("skips images inside noise", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body><div class="entry-content">
<aside><img src="/ad.jpg"></aside>
<div class="expert"><img src="/expert.jpg"></div>
<div class="guest-data"><img src="/guest.jpg"></div>
<img src="/kept.jpg">
</div></body></html>`)
		ext := &goquery.ImageExtractor{BaseURL: "https://site.example"}

		images := ext.Extract(doc)

		require.Len(t, images, 1)
		assert.Equal(t, "https://site.example/kept.jpg", images["image_1"].URL)
		assert.Equal(t, 1, doc.Find("aside").Length())
	})

	t.Run("excludes small images with dense keys", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body><div class="entry-content">
<img src="/small.jpg" width="150">
<img src="/big.jpg" width="250">
<img src="/unsized.jpg">
<img src="/percent.jpg" width="100%">
</div></body></html>`)
		ext := &goquery.ImageExtractor{BaseURL: "https://site.example"}

		images := ext.Extract(doc)

		require.Len(t, images, 3)
		assert.Equal(t, "https://site.example/big.jpg", images["image_1"].URL)
		assert.Equal(t, "https://site.example/unsized.jpg", images["image_2"].URL)
		assert.Equal(t, "https://site.example/percent.jpg", images["image_3"].URL)
	})

	t.Run("positional keys leave gaps for small images only", func(t *testing.T) {
		t.Parallel()

		doc := mustDocument(t, `<html><body><div class="entry-content">
<img src="/small.jpg" width="150">
<img alt="no source">
<img src="/big.jpg" width="250">
<img data-src="/lazy.jpg">
</div></body></html>`)
		ext := &goquery.ImageExtractor{BaseURL: "https://site.example", Indexing: goquery.IndexPositional}

		images := ext.Extract(doc)

		require.Len(t, images, 2)
		assert.Equal(t, "https://site.example/big.jpg", images["image_2"].URL)
		assert.Equal(t, "https://site.example/lazy.jpg", images["image_3"].URL)
		assert.NotContains(t, images, "image_1")
	})

	t.Run("warns and returns empty map without content region", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		doc := mustDocument(t, `<html><body><img src="/a.jpg"></body></html>`)
		ext := &goquery.ImageExtractor{BaseURL: "https://site.example", Logger: logger}

		images := ext.Extract(doc)

		assert.NotNil(t, images)
		assert.Empty(t, images)
		assert.Contains(t, buf.String(), "no content region")
		assert.Contains(t, buf.String(), "level=WARN")
	})
}
