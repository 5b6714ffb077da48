// Package etree renders stored articles as an RSS 2.0 feed.
package etree

import (
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/harvest"
)

const dublinCoreNS = "http://purl.org/dc/elements/1.1/"

// FeedWriter writes articles as an RSS 2.0 channel.
type FeedWriter struct {
	Title       string
	Link        string
	Description string

	// Now stamps lastBuildDate. Defaults to time.Now.
	Now func() time.Time
}

// NewFeedWriter returns a FeedWriter for the site at link.
func NewFeedWriter(title, link string) *FeedWriter {
	return &FeedWriter{
		Title:       title,
		Link:        link,
		Description: "Articles collected from " + link,
		Now:         time.Now,
	}
}

// WriteFeed writes one item per article, in the given order.
func (w *FeedWriter) WriteFeed(out io.Writer, articles []*harvest.Article) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:dc", dublinCoreNS)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(w.Title)
	channel.CreateElement("link").SetText(w.Link)
	channel.CreateElement("description").SetText(w.Description)
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	channel.CreateElement("lastBuildDate").SetText(now().UTC().Format(time.RFC1123Z))

	for _, a := range articles {
		writeItem(channel, a)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(out)
	return err
}

func writeItem(channel *etree.Element, a *harvest.Article) {
	item := channel.CreateElement("item")
	item.CreateElement("title").SetText(a.Title)
	item.CreateElement("link").SetText(a.URL)

	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "true")
	guid.SetText(a.URL)

	if a.Summary != "" {
		item.CreateElement("description").SetText(a.Summary)
	}
	if a.Author != "" {
		item.CreateElement("dc:creator").SetText(a.Author)
	}
	if a.Category != "" {
		item.CreateElement("category").SetText(a.Category)
	}
	for _, sub := range a.Subcategories {
		item.CreateElement("category").SetText(sub)
	}
	if pub, ok := pubDate(a); ok {
		item.CreateElement("pubDate").SetText(pub.Format(time.RFC1123Z))
	}
	if a.Thumbnail != "" {
		enc := item.CreateElement("enclosure")
		enc.CreateAttr("url", a.Thumbnail)
		enc.CreateAttr("length", "0")
		enc.CreateAttr("type", "image/jpeg")
	}
}

// pubDate prefers the normalized publication date and falls back to the
// time the article was scraped.
func pubDate(a *harvest.Article) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, a.PublicationDate); err == nil {
		return t, true
	}
	if !a.ScrapedAt.IsZero() {
		return a.ScrapedAt.UTC(), true
	}
	return time.Time{}, false
}
