package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := harvest.ArticleFilter{}
	if c.Category != "" {
		filter.Category = &c.Category
	}
	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	exporter := fs.NewExporter(c.Dir)
	for _, a := range articles {
		if err := exporter.Save(deps.Ctx, a); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error: exporting %q: %v\n", a.Title, err)
			return err
		}
	}
	if err := exporter.Commit(); err != nil {
		_ = exporter.Abort()
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d articles to %s\n", len(articles), c.Dir)
	return nil
}
