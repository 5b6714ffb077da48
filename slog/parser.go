package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

var _ harvest.ArticleParser = (*LoggingArticleParser)(nil)

// LoggingArticleParser wraps an ArticleParser with debug logging of what
// was extracted from each page.
type LoggingArticleParser struct {
	next   harvest.ArticleParser
	logger *slog.Logger
}

// NewLoggingArticleParser creates a new LoggingArticleParser.
func NewLoggingArticleParser(next harvest.ArticleParser, logger *slog.Logger) *LoggingArticleParser {
	return &LoggingArticleParser{next: next, logger: logger}
}

// ParseArticle delegates to the wrapped parser.
func (p *LoggingArticleParser) ParseArticle(pageURL, html string) (article *harvest.Article, err error) {
	defer func(begin time.Time) {
		if err != nil {
			p.logger.Debug("parse", "url", pageURL, "duration", time.Since(begin), "err", err)
			return
		}
		p.logger.Debug("parse",
			"url", pageURL,
			"title", article.Title,
			"date", article.PublicationDate,
			"images", len(article.Images),
			"content_chars", len(article.Content),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.ParseArticle(pageURL, html)
}
