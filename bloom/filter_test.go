package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/harvest/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewURLSet(1000)

	assert.False(t, f.Test("https://site.example/article-1/"))

	f.Add("https://site.example/article-1/")

	assert.True(t, f.Test("https://site.example/article-1/"))
	assert.False(t, f.Test("https://site.example/article-2/"))
}

func TestFilter_DistinguishesTrailingSlash(t *testing.T) {
	t.Parallel()

	f := bloom.NewURLSet(1000)
	f.Add("https://site.example/article-1/")

	assert.False(t, f.Test("https://site.example/article-1"))
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	url := "https://site.example/article-1/"

	f.Add(url)
	f.Add(url)
	f.Add(url)

	assert.True(t, f.Test(url))
	assert.False(t, f.Test("https://site.example/article-2/"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 5000
		testProbes = 10000
	)

	f := bloom.NewURLSet(numItems)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://site.example/seen/%d/", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://site.example/unseen/%d/", i)) {
			falsePositives++
		}
	}

	// Expected rate is 0.01%; allow generous variance.
	assert.LessOrEqual(t, falsePositives, 10)
}
