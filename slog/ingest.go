package slog

import (
	"log/slog"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
)

// IngestLogger returns a crawl.IngestFunc that logs articles whose title
// is already stored. Inserts and store failures are logged by
// LoggingArticleService.
func IngestLogger(logger *slog.Logger) crawl.IngestFunc {
	return func(article *harvest.Article, err error) {
		if harvest.ErrorCode(err) == harvest.ECONFLICT {
			logger.Info("article already stored", "title", article.Title, "url", article.URL)
		}
	}
}
