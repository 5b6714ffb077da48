package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

var _ harvest.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService and logs writes.
// Reads are delegated without logging.
type LoggingArticleService struct {
	next   harvest.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next harvest.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// CreateArticle logs the outcome. Known titles log at debug level, since
// IngestLogger reports duplicates for the whole run.
func (s *LoggingArticleService) CreateArticle(ctx context.Context, article *harvest.Article) (err error) {
	defer func(begin time.Time) {
		switch harvest.ErrorCode(err) {
		case "":
			s.logger.Info("article saved",
				"title", article.Title,
				"id", article.ID,
				"duration", time.Since(begin),
			)
		case harvest.ECONFLICT:
			s.logger.Debug("article exists", "title", article.Title)
		default:
			s.logger.Error("article save failed",
				"title", article.Title,
				"err", err,
			)
		}
	}(time.Now())
	return s.next.CreateArticle(ctx, article)
}

// FindArticleByTitle delegates to the wrapped service.
func (s *LoggingArticleService) FindArticleByTitle(ctx context.Context, title string) (*harvest.Article, error) {
	return s.next.FindArticleByTitle(ctx, title)
}

// FindArticles delegates to the wrapped service.
func (s *LoggingArticleService) FindArticles(ctx context.Context, filter harvest.ArticleFilter) ([]*harvest.Article, error) {
	return s.next.FindArticles(ctx, filter)
}

// CountArticles delegates to the wrapped service.
func (s *LoggingArticleService) CountArticles(ctx context.Context) (int, error) {
	return s.next.CountArticles(ctx)
}
