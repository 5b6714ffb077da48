package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/goquery"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	fetcher := deps.NewFetcher(deps.Config)
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:  fetcher,
		Listings: goquery.NewListingParser(),
		Config:   deps.Config,
	}
	categories, err := crawler.ListCategories(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Category", "URL"})
	for i, cat := range categories {
		// Mark the ones a crawl with the current limits would visit.
		n := fmt.Sprint(i + 1)
		if i < deps.Config.MaxCategories {
			n += "*"
		}
		t.AppendRow(table.Row{n, cat.Name, cat.URL})
	}
	t.Render()

	fmt.Fprintf(deps.Stdout, "%d categories, * = crawled with max %d\n", len(categories), deps.Config.MaxCategories)
	return nil
}
