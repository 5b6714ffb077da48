package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/etree"
)

// Run executes the feed command.
func (c *FeedCmd) Run(deps *Dependencies) error {
	filter := harvest.ArticleFilter{Limit: c.Limit}
	if c.Category != "" {
		filter.Category = &c.Category
	}
	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	var out io.Writer = deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		out = f
	}

	title := "harvest"
	if c.Category != "" {
		title += ": " + c.Category
	}
	if err := etree.NewFeedWriter(title, deps.Config.BaseURL).WriteFeed(out, articles); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Output != "" {
		fmt.Fprintf(deps.Stdout, "Wrote %d items to %s\n", len(articles), c.Output)
	}
	return nil
}
