package goquery

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// minImageWidth is the smallest declared width kept. Narrower images are
// icons and decorations.
const minImageWidth = 200

const imageNoise = "aside, .related-posts, .social-share, .social-catchphrase, .expert, .guest-data"

// ImageIndexing selects how image keys are numbered.
type ImageIndexing int

const (
	// IndexDense numbers kept images 1..n with no gaps.
	IndexDense ImageIndexing = iota

	// IndexPositional numbers images by their position among the images
	// of the content region that have a source, so small images leave
	// gaps.
	IndexPositional
)

// ImageExtractor collects the content images of an article.
type ImageExtractor struct {
	// BaseURL completes root-relative image sources.
	BaseURL string

	Indexing ImageIndexing

	// Logger receives a warning when the page has no content region.
	// Optional.
	Logger *slog.Logger
}

// Extract returns the article's content images keyed "image_1", "image_2"...
// The result is never nil.
func (e *ImageExtractor) Extract(doc *Document) map[string]harvest.Image {
	images := make(map[string]harvest.Image)

	var region *goquery.Selection
	for _, sel := range contentRegions {
		if r := doc.Find(sel).First(); r.Length() > 0 {
			region = r
			break
		}
	}
	if region == nil {
		if e.Logger != nil {
			e.Logger.Warn("no content region for image extraction")
		}
		return images
	}

	body := region.Clone()
	body.Find(imageNoise).Remove()

	kept, sourced := 0, 0
	body.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imageSource(img)
		if src == "" {
			return
		}
		sourced++
		width, hasWidth := img.Attr("width")
		if hasWidth && isSmall(width) {
			return
		}

		kept++
		key := kept
		if e.Indexing == IndexPositional {
			key = sourced
		}

		images[fmt.Sprintf("image_%d", key)] = harvest.Image{
			URL:         absoluteURL(e.BaseURL, src),
			Description: imageDescription(img),
			Alt:         img.AttrOr("alt", ""),
			Width:       width,
			Height:      img.AttrOr("height", ""),
		}
	})
	return images
}

// imageSource returns the first non-empty of the eager and lazy-loading
// source attributes.
func imageSource(img *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

func imageDescription(img *goquery.Selection) string {
	for _, attr := range []string{"alt", "title", "data-caption"} {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	caption := img.Closest("figure").Find("figcaption").First()
	return normalizeText(caption.Text())
}

// isSmall reports whether width is an integer below minImageWidth.
// Values such as "100%" are not integers and never count as small.
func isSmall(width string) bool {
	if width == "" {
		return false
	}
	for _, r := range width {
		if r < '0' || r > '9' {
			return false
		}
	}
	w, err := strconv.Atoi(width)
	return err == nil && w < minImageWidth
}
