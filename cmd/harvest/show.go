package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/harvest"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByTitle(deps.Ctx, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(article)
	}

	w := deps.Stdout
	fmt.Fprintf(w, "%s\n%s\n\n", article.Title, article.URL)
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-14s %s\n", name+":", value)
		}
	}
	field("Author", article.Author)
	field("Date", article.PublicationDate)
	field("Category", article.Category)
	field("Subcategories", strings.Join(article.Subcategories, ", "))
	field("Thumbnail", article.Thumbnail)
	field("Scraped", article.ScrapedAt.Format("2006-01-02 15:04"))

	if article.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", article.Summary)
	}
	if len(article.TableOfContents) > 0 {
		fmt.Fprintln(w, "\nContents:")
		for _, entry := range article.TableOfContents {
			fmt.Fprintf(w, "  - %s\n", entry)
		}
	}
	if article.Content != "" {
		fmt.Fprintf(w, "\n%s\n", article.Content)
	}
	if len(article.Images) > 0 {
		fmt.Fprintln(w, "\nImages:")
		keys := make([]string, 0, len(article.Images))
		for k := range article.Images {
			keys = append(keys, k)
		}
		// image_2 before image_10
		slices.SortFunc(keys, func(a, b string) int {
			if n := cmp.Compare(len(a), len(b)); n != 0 {
				return n
			}
			return strings.Compare(a, b)
		})
		for _, k := range keys {
			fmt.Fprintf(w, "  %s  %s\n", k, article.Images[k].URL)
		}
	}
	return nil
}
