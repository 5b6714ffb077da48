package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

// contentRegions lists the selectors tried, in order, to locate the article
// body. Images use the same list.
var contentRegions = []string{
	".entry-content",
	".post-content",
	"article .content",
	"main article",
	".article-content",
}

const (
	contentNoise   = "script, style, noscript, aside, .related-posts, .social-share, .social-catchphrase, .sharing-button, .comments-section, #section-meta"
	contentButtons = "a.btn, a.featured-link, a.external"
	contentBlocks  = "p, h1, h2, h3, h4, h5, h6, ul, ol, li, blockquote, div"
	blockChildren  = "p, h1, h2, h3, h4, h5, h6, ul, ol, div"
)

var contentStrategies = func() []Strategy[string] {
	s := make([]Strategy[string], 0, len(contentRegions))
	for _, region := range contentRegions {
		s = append(s, contentFrom(region))
	}
	return s
}()

// ExtractContent returns the article body as plain text blocks separated by
// blank lines. Headings are rendered as "## title" and list items are
// prefixed with a bullet. Returns "" when no content region yields a block.
func ExtractContent(doc *Document) string {
	return Cascade(doc, contentStrategies)
}

func contentFrom(region string) Strategy[string] {
	return func(doc *Document) (string, bool) {
		sel := doc.Find(region).First()
		if sel.Length() == 0 {
			return "", false
		}
		blocks := contentBlocksOf(sel)
		if len(blocks) == 0 {
			return "", false
		}
		return tidyBody(strings.Join(blocks, "\n\n")), true
	}
}

// contentBlocksOf walks a copy of the region so the caller's document keeps
// its noise elements for other extractors.
func contentBlocksOf(region *goquery.Selection) []string {
	body := region.Clone()
	body.Find(contentNoise).Remove()
	body.Find(contentButtons).Remove()

	var blocks []string
	seen := make(map[string]bool)
	body.Find(contentBlocks).Each(func(_ int, el *goquery.Selection) {
		text := renderBlock(el)
		if utf8.RuneCountInString(strings.TrimSpace(text)) <= 3 {
			return
		}
		text = normalizeText(text)
		if seen[text] {
			return
		}
		seen[text] = true
		blocks = append(blocks, text)
	})
	return blocks
}

func renderBlock(el *goquery.Selection) string {
	n := el.Get(0)
	text := strings.TrimSpace(el.Text())

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return "\n## " + text + "\n"
	case atom.P:
		return text
	case atom.Ul, atom.Ol:
		var items []string
		el.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			t := strings.TrimSpace(li.Text())
			if utf8.RuneCountInString(t) > 5 {
				items = append(items, "• "+t)
			}
		})
		return strings.Join(items, "\n")
	case atom.Li:
		if isList(el.Parent()) || text == "" {
			return ""
		}
		return "• " + text
	case atom.Blockquote:
		if text == "" {
			return ""
		}
		return `"` + text + `"`
	case atom.Div:
		if el.Find(blockChildren).Length() > 0 {
			return ""
		}
		if utf8.RuneCountInString(text) > 10 {
			return text
		}
	}
	return ""
}

func isList(sel *goquery.Selection) bool {
	if sel.Length() == 0 {
		return false
	}
	a := sel.Get(0).DataAtom
	return a == atom.Ul || a == atom.Ol
}
