package goquery

// summaryLimit is the rune length of a summary taken from body text.
const summaryLimit = 300

var summaryStrategies = []Strategy[string]{
	textOf(".entry-excerpt"),
	textOf(".post-excerpt"),
	textOf(".article-excerpt"),
	textOf(".summary"),
	attrOf(`meta[name="description"]`, "content"),
	attrOf(`meta[property="og:description"]`, "content"),
	firstParagraph,
}

// ExtractSummary returns the article excerpt, falling back to page metadata
// and finally to the opening paragraph of the body.
func ExtractSummary(doc *Document) string {
	return Cascade(doc, summaryStrategies)
}

func firstParagraph(doc *Document) (string, bool) {
	text, ok := textOf(".entry-content p, .post-content p, article p")(doc)
	if !ok {
		return "", false
	}
	return truncateRunes(text, summaryLimit), true
}
