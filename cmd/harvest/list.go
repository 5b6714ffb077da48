package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/harvest"
	"github.com/jedib0t/go-pretty/v6/table"
)

const maxTitleWidth = 60

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	articles, err := deps.Articles.FindArticles(deps.Ctx, c.filter())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'harvest crawl' to collect some.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: maxTitleWidth},
	})
	t.AppendHeader(table.Row{"Date", "Title", "Category", "Subcategories", "Author"})
	for _, a := range articles {
		t.AppendRow(table.Row{
			a.PublicationDate,
			a.Title,
			a.Category,
			strings.Join(a.Subcategories, ", "),
			a.Author,
		})
	}
	t.Render()

	fmt.Fprintf(deps.Stdout, "%d articles\n", len(articles))

	return nil
}

func (c *ListCmd) filter() harvest.ArticleFilter {
	filter := harvest.ArticleFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Category != "" {
		filter.Category = &c.Category
	}
	if c.Subcategory != "" {
		filter.Subcategory = &c.Subcategory
	}
	return filter
}
