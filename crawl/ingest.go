package crawl

import (
	"context"
	"iter"

	"github.com/fwojciec/harvest"
)

// IngestResult counts the outcome of storing a crawl's articles.
type IngestResult struct {
	Inserted   int
	Duplicates int
	Failed     int
}

// IngestFunc is called after each article has been handled. err is nil
// for inserted articles, ECONFLICT for duplicates and the store's error
// for failures.
type IngestFunc func(article *harvest.Article, err error)

// Ingest stores every article of seq whose title is not yet known to the
// store. Re-ingesting the same articles inserts nothing. Store failures are
// counted and skipped; the first error yielded by seq ends ingestion and is
// returned along with the counts so far.
func Ingest(ctx context.Context, seq iter.Seq2[*harvest.Article, error], store harvest.ArticleService, onArticle IngestFunc) (*IngestResult, error) {
	result := &IngestResult{}
	for article, err := range seq {
		if err != nil {
			return result, err
		}

		storeErr := insertIfNew(ctx, store, article)
		switch {
		case storeErr == nil:
			result.Inserted++
		case harvest.ErrorCode(storeErr) == harvest.ECONFLICT:
			result.Duplicates++
		default:
			result.Failed++
		}
		if onArticle != nil {
			onArticle(article, storeErr)
		}
	}
	return result, nil
}

func insertIfNew(ctx context.Context, store harvest.ArticleService, article *harvest.Article) error {
	_, err := store.FindArticleByTitle(ctx, article.Title)
	switch {
	case err == nil:
		return harvest.Errorf(harvest.ECONFLICT, "article %q already stored", article.Title)
	case harvest.ErrorCode(err) != harvest.ENOTFOUND:
		return err
	}
	return store.CreateArticle(ctx, article)
}
