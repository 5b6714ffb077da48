package harvest

// Category is a listing discovered on the category index page.
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CrawlState counts what a single crawl run has done so far.
type CrawlState struct {
	Categories int `json:"categories"`
	Articles   int `json:"articles"`
}
