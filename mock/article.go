package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of harvest.ArticleService.
type ArticleService struct {
	FindArticleByTitleFn func(ctx context.Context, title string) (*harvest.Article, error)
	FindArticlesFn       func(ctx context.Context, filter harvest.ArticleFilter) ([]*harvest.Article, error)
	CountArticlesFn      func(ctx context.Context) (int, error)
	CreateArticleFn      func(ctx context.Context, article *harvest.Article) error
}

func (s *ArticleService) FindArticleByTitle(ctx context.Context, title string) (*harvest.Article, error) {
	return s.FindArticleByTitleFn(ctx, title)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter harvest.ArticleFilter) ([]*harvest.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) CountArticles(ctx context.Context) (int, error) {
	return s.CountArticlesFn(ctx)
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *harvest.Article) error {
	return s.CreateArticleFn(ctx, article)
}
