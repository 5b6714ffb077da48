package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ harvest.ArticleService = (*ArticleService)(nil)

const articleColumns = `id, url, title, thumbnail, category, subcategories, table_of_contents,
	summary, publication_date, author, content, content_hash, images, source_category, scraped_at`

// ArticleService implements harvest.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// CreateArticle inserts an article unless one with the same title exists.
// The title check and the insert happen in a single statement.
func (s *ArticleService) CreateArticle(ctx context.Context, article *harvest.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	subcategories, err := marshalColumn(nonNilStrings(article.Subcategories))
	if err != nil {
		return err
	}
	toc, err := marshalColumn(nonNilStrings(article.TableOfContents))
	if err != nil {
		return err
	}
	images := article.Images
	if images == nil {
		images = map[string]harvest.Image{}
	}
	imagesJSON, err := marshalColumn(images)
	if err != nil {
		return err
	}

	scrapedAt := article.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now()
	}
	scrapedAt = scrapedAt.UTC().Truncate(time.Second)

	id := uuid.New().String()
	hash := hashContent(article.Content)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO NOTHING
	`, id, article.URL, article.Title, article.Thumbnail, article.Category, subcategories, toc,
		article.Summary, article.PublicationDate, article.Author, article.Content, hash, imagesJSON,
		article.SourceCategory, scrapedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return harvest.Errorf(harvest.ECONFLICT, "article already exists: %s", article.Title)
	}

	article.ID = id
	article.ContentHash = hash
	article.ScrapedAt = scrapedAt
	return nil
}

// FindArticleByTitle retrieves an article by its exact title.
func (s *ArticleService) FindArticleByTitle(ctx context.Context, title string) (*harvest.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE title = ?", title)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter harvest.ArticleFilter) ([]*harvest.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.Category != nil {
		query.WriteString(" AND category = ? COLLATE NOCASE")
		args = append(args, *filter.Category)
	}
	if filter.Subcategory != nil {
		query.WriteString(" AND EXISTS (SELECT 1 FROM json_each(articles.subcategories) WHERE value = ? COLLATE NOCASE)")
		args = append(args, *filter.Subcategory)
	}

	query.WriteString(" ORDER BY scraped_at DESC, title ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*harvest.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// CountArticles returns the number of stored articles.
func (s *ArticleService) CountArticles(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*harvest.Article, error) {
	var article harvest.Article
	var subcategories, toc, images, scrapedAt string

	if err := row.Scan(&article.ID, &article.URL, &article.Title, &article.Thumbnail, &article.Category,
		&subcategories, &toc, &article.Summary, &article.PublicationDate, &article.Author,
		&article.Content, &article.ContentHash, &images, &article.SourceCategory, &scrapedAt); err != nil {
		return nil, err
	}

	if err := unmarshalColumn(subcategories, "subcategories", &article.Subcategories); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(toc, "table_of_contents", &article.TableOfContents); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(images, "images", &article.Images); err != nil {
		return nil, err
	}

	var err error
	article.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
	if err != nil {
		return nil, err
	}

	return &article, nil
}
