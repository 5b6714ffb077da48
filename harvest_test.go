package harvest_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := harvest.Errorf(harvest.ENOTFOUND, "article %q not found", "test")

	assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
	assert.Equal(t, "article \"test\" not found", harvest.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, harvest.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, harvest.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("store: %w", harvest.Errorf(harvest.ECONFLICT, "duplicate"))

	assert.Equal(t, harvest.ECONFLICT, harvest.ErrorCode(err))
	assert.Equal(t, "duplicate", harvest.ErrorMessage(err))
}

func TestErrorCode_PlainErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, harvest.EINTERNAL, harvest.ErrorCode(err))
	assert.Equal(t, "Internal error.", harvest.ErrorMessage(err))
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	t.Run("formats status failures", func(t *testing.T) {
		t.Parallel()

		err := &harvest.FetchError{URL: "https://example.com/a", StatusCode: 404}

		assert.Equal(t, "fetch https://example.com/a: HTTP 404", err.Error())
	})

	t.Run("unwraps transport failures", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		var err error = &harvest.FetchError{URL: "https://example.com/a", Err: cause}

		assert.ErrorIs(t, err, cause)
		var fe *harvest.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "https://example.com/a", fe.URL)
	})
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires title", func(t *testing.T) {
		t.Parallel()

		a := &harvest.Article{URL: "https://example.com/a"}

		err := a.Validate()
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		a := &harvest.Article{Title: "Hello"}

		err := a.Validate()
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("accepts titled article", func(t *testing.T) {
		t.Parallel()

		a := &harvest.Article{Title: "Hello", URL: "https://example.com/a"}

		assert.NoError(t, a.Validate())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, harvest.DefaultConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*harvest.Config)
	}{
		{"relative base URL", func(c *harvest.Config) { c.BaseURL = "/blog" }},
		{"empty base URL", func(c *harvest.Config) { c.BaseURL = "" }},
		{"zero categories", func(c *harvest.Config) { c.MaxCategories = 0 }},
		{"zero pages", func(c *harvest.Config) { c.MaxPagesPerCategory = 0 }},
		{"zero articles", func(c *harvest.Config) { c.MaxArticlesPerCategory = 0 }},
		{"zero timeout", func(c *harvest.Config) { c.Timeout = 0 }},
		{"negative delay", func(c *harvest.Config) { c.ArticleDelay = -time.Second }},
		{"negative retry delay", func(c *harvest.Config) { c.RetryDelays = []time.Duration{-1} }},
		{"negative rate", func(c *harvest.Config) { c.RequestsPerSecond = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := harvest.DefaultConfig()
			tt.mutate(&cfg)

			assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(cfg.Validate()))
		})
	}
}

func TestConfig_CategoryIndexURL(t *testing.T) {
	t.Parallel()

	cfg := harvest.DefaultConfig()
	cfg.BaseURL = "https://site.example"

	assert.Equal(t, "https://site.example/liste-des-dossiers/", cfg.CategoryIndexURL())
}
