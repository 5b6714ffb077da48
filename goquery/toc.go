package goquery

import "github.com/PuerkitoBio/goquery"

var tocStrategies = []Strategy[[]string]{
	summaryBlockTOC,
	linksTOC(".table-of-contents ol li a, .table-of-contents ul li a"),
	linksTOC(".toc ol li a, .toc ul li a"),
	linksTOC(".wp-block-table-of-contents ol li a, .wp-block-table-of-contents ul li a"),
}

// ExtractTableOfContents returns the section titles listed in the article's
// table of contents. The result is never nil.
func ExtractTableOfContents(doc *Document) []string {
	if toc := Cascade(doc, tocStrategies); toc != nil {
		return toc
	}
	return []string{}
}

// summaryBlockTOC reads the site's own "summary" widget: one entry per list
// item, taken from the item's first link.
func summaryBlockTOC(doc *Document) ([]string, bool) {
	inner := doc.Find(".summary-section").First().Find(".summary-inner").First()
	var titles []string
	inner.Find("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a").First()
		if a.Length() == 0 {
			return
		}
		if t := normalizeText(a.Text()); t != "" {
			titles = append(titles, t)
		}
	})
	return titles, len(titles) > 0
}

func linksTOC(selector string) Strategy[[]string] {
	return func(doc *Document) ([]string, bool) {
		var titles []string
		doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
			if t := normalizeText(a.Text()); t != "" {
				titles = append(titles, t)
			}
		})
		return titles, len(titles) > 0
	}
}
