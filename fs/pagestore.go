// Package fs writes analysis artifacts to the local filesystem.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/cannibal"
)

// URLToPath converts a page URL to a relative file path under its host.
// Example: https://example.com/blog/post → example.com/blog/post.txt
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", cannibal.Errorf(cannibal.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", cannibal.Errorf(cannibal.EINVALID, "page URL %q has no host", rawURL)
	}
	host := strings.ReplaceAll(u.Host, ":", "_")

	path := u.Path
	if path == "" || path == "/" {
		return filepath.Join(host, "index.txt"), nil
	}
	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		path += "index"
	}

	rel := filepath.Join(host, filepath.FromSlash(path)+".txt")
	if !filepath.IsLocal(rel) || !strings.HasPrefix(rel, host+string(filepath.Separator)) {
		return "", cannibal.Errorf(cannibal.EINVALID, "path traversal in page URL %q", rawURL)
	}
	return rel, nil
}

// FormatPage formats a page's extracted text with a YAML frontmatter.
func FormatPage(page *cannibal.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\nwords: ")
	b.WriteString(strconv.Itoa(page.WordCount))
	if page.ContentHash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(page.ContentHash)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(page.Text)
	b.WriteString("\n")
	return b.String()
}

// Ensure FileStore implements cannibal.PageStore at compile time.
var _ cannibal.PageStore = (*FileStore)(nil)

// FileStore implements cannibal.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes one page below the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *cannibal.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(FormatPage(page)), 0644)
}

// Commit replaces the output directory with the saved pages.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved pages.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
