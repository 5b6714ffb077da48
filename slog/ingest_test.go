package slog_test

import (
	"bytes"
	"context"
	"iter"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	hslog "github.com/fwojciec/harvest/slog"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestLogger(t *testing.T) {
	t.Parallel()

	t.Run("logs duplicates at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := hslog.IngestLogger(newTestLogger(&buf))

		log(&harvest.Article{Title: "Hello", URL: "https://x/hello"}, harvest.Errorf(harvest.ECONFLICT, "exists"))

		assert.Contains(t, buf.String(), `level=INFO msg="article already stored" title=Hello url=https://x/hello`)
	})

	t.Run("ignores inserts and failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := hslog.IngestLogger(newTestLogger(&buf))

		log(&harvest.Article{Title: "Hello"}, nil)
		log(&harvest.Article{Title: "Hello"}, harvest.Errorf(harvest.EINTERNAL, "disk full"))

		assert.Empty(t, buf.String())
	})

	t.Run("reports titles found in the store on re-ingestion", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		t.Cleanup(func() { db.Close() })

		var buf bytes.Buffer
		logger := newTestLogger(&buf)
		store := hslog.NewLoggingArticleService(sqlite.NewArticleService(db), logger)
		seq := func() iter.Seq2[*harvest.Article, error] {
			return func(yield func(*harvest.Article, error) bool) {
				yield(&harvest.Article{Title: "Hello", URL: "https://x/hello"}, nil)
			}
		}
		ctx := context.Background()

		_, err := crawl.Ingest(ctx, seq(), store, hslog.IngestLogger(logger))
		require.NoError(t, err)
		buf.Reset()

		result, err := crawl.Ingest(ctx, seq(), store, hslog.IngestLogger(logger))

		require.NoError(t, err)
		assert.Equal(t, 1, result.Duplicates)
		assert.Contains(t, buf.String(), `msg="article already stored" title=Hello`)
	})
}
