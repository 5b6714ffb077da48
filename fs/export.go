// Package fs exports stored articles as markdown files.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/harvest"
	"gopkg.in/yaml.v3"
)

// ArticlePath converts an article URL to a relative markdown file path.
// Example: https://www.blogdumoderateur.com/social/hello/ → social/hello.md
func ArticlePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", harvest.Errorf(harvest.EINVALID, "invalid article URL: %s", rawURL)
	}

	p := strings.Trim(path.Clean("/"+u.Path), "/")
	if p == "" {
		return "index.md", nil
	}
	return p + ".md", nil
}

type frontMatter struct {
	Title         string                   `yaml:"title"`
	URL           string                   `yaml:"url"`
	Category      string                   `yaml:"category,omitempty"`
	Subcategories []string                 `yaml:"subcategories,omitempty"`
	Author        string                   `yaml:"author,omitempty"`
	Date          string                   `yaml:"date,omitempty"`
	Summary       string                   `yaml:"summary,omitempty"`
	Thumbnail     string                   `yaml:"thumbnail,omitempty"`
	Contents      []string                 `yaml:"contents,omitempty"`
	Images        map[string]harvest.Image `yaml:"images,omitempty"`
	ContentHash   string                   `yaml:"content_hash,omitempty"`
	Scraped       time.Time                `yaml:"scraped"`
}

// FormatArticle renders an article as markdown with YAML front matter.
func FormatArticle(a *harvest.Article) (string, error) {
	fm, err := yaml.Marshal(frontMatter{
		Title:         a.Title,
		URL:           a.URL,
		Category:      a.Category,
		Subcategories: a.Subcategories,
		Author:        a.Author,
		Date:          a.PublicationDate,
		Summary:       a.Summary,
		Thumbnail:     a.Thumbnail,
		Contents:      a.TableOfContents,
		Images:        a.Images,
		ContentHash:   a.ContentHash,
		Scraped:       a.ScrapedAt.UTC(),
	})
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(a.Content)
	return b.String(), nil
}

// Exporter writes articles into a directory. Files are staged in a sibling
// "<name>.tmp" directory and replace the target only on Commit.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates an Exporter targeting dir.
func NewExporter(dir string) *Exporter {
	dir = filepath.Clean(dir)
	return &Exporter{
		baseDir: filepath.Dir(dir),
		name:    filepath.Base(dir),
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save writes a single article into the staging directory.
func (e *Exporter) Save(ctx context.Context, a *harvest.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := ArticlePath(a.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(e.tempDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatArticle(a)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the target directory with the staged files.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort discards the staged files.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}
