package slog

import (
	"log/slog"

	"github.com/fwojciec/harvest/crawl"
)

// ProgressLogger returns a crawl.ProgressFunc that writes each event to
// logger. Skipped pages log at warn level, retries and duplicates at debug.
func ProgressLogger(logger *slog.Logger) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			logger.Info("crawl started", "categories", e.Total)
		case crawl.ProgressCategoryStarted:
			logger.Info("category started", "category", e.Category, "url", e.URL)
		case crawl.ProgressListed:
			logger.Info("articles listed", "category", e.Category, "count", e.Total)
		case crawl.ProgressRetrying:
			logger.Debug("retrying", "url", e.URL, "attempt", e.Attempt, "err", e.Error)
		case crawl.ProgressCompleted:
			logger.Info("article extracted",
				"category", e.Category,
				"url", e.URL,
				"progress", e.Completed,
				"total", e.Total,
			)
		case crawl.ProgressSkipped:
			logger.Debug("article already seen", "category", e.Category, "url", e.URL)
		case crawl.ProgressFailed:
			logger.Warn("page skipped", "category", e.Category, "url", e.URL, "err", e.Error)
		case crawl.ProgressCategoryFinished:
			logger.Info("category finished", "category", e.Category, "articles", e.Completed)
		case crawl.ProgressFinished:
			logger.Info("crawl finished",
				"categories", e.State.Categories,
				"articles", e.State.Articles,
			)
		}
	}
}
