package store

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"entryhunt/internal/domain"
	"entryhunt/internal/scrape/util"
)

// URLCache is the on-disk record of the last crawl's locators for one site:
// one absolute http(s) URL per line, in listing order.
type URLCache struct {
	path string
}

func NewURLCache(path string) *URLCache {
	return &URLCache{path: path}
}

func (c *URLCache) Path() string { return c.path }

// Read returns the cached locators. A missing, unreadable or malformed file
// yields an error of kind domain.ErrCacheReadFailure and no locators; the
// cache is never partially trusted.
func (c *URLCache) Read() ([]string, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return nil, domain.Fail(domain.ErrCacheReadFailure, "cache read", "", err)
	}
	urls, err := parseCache(b)
	if err != nil {
		return nil, domain.Fail(domain.ErrCacheReadFailure, "cache read", "", fmt.Errorf("%s: %w", c.path, err))
	}
	return urls, nil
}

// Write replaces the cache with urls. The file is swapped in atomically
// while holding the cache lock.
func (c *URLCache) Write(ctx context.Context, urls []string) error {
	for i, u := range urls {
		if err := checkLine(u); err != nil {
			return fmt.Errorf("cache write: entry %d: %w", i+1, err)
		}
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fl, err := acquire(ctx, c.path)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := bufio.NewWriter(tmp)
	for _, u := range urls {
		_, _ = w.WriteString(u)
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.path)
}

func parseCache(b []byte) ([]string, error) {
	if len(b) == 0 {
		return []string{}, nil
	}
	if !bytes.HasSuffix(b, []byte("\n")) {
		return nil, errors.New("truncated: missing final newline")
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if err := checkLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, line)
	}
	return out, nil
}

func checkLine(s string) error {
	if s == "" {
		return errors.New("empty entry")
	}
	if strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return fmt.Errorf("whitespace or control character in %q", s)
	}
	if !util.IsHTTP(s) {
		return fmt.Errorf("not an absolute http(s) URL: %q", s)
	}
	return nil
}
