package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entryhunt/internal/domain"
)

func TestURLCache_RoundTrip(t *testing.T) {
	c := NewURLCache(filepath.Join(t.TempDir(), "nested", "acme-urls.cache"))
	urls := []string{
		"https://jobs.acme.test/view/3",
		"https://jobs.acme.test/view/1",
		"https://jobs.acme.test/view/2?team=eng",
	}

	require.NoError(t, c.Write(context.Background(), urls))
	got, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, urls, got)

	// full overwrite, never appended
	require.NoError(t, c.Write(context.Background(), urls[:1]))
	got, err = c.Read()
	require.NoError(t, err)
	assert.Equal(t, urls[:1], got)
}

func TestURLCache_Empty(t *testing.T) {
	c := NewURLCache(filepath.Join(t.TempDir(), "acme-urls.cache"))
	require.NoError(t, c.Write(context.Background(), nil))
	got, err := c.Read()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestURLCache_Missing(t *testing.T) {
	_, err := NewURLCache(filepath.Join(t.TempDir(), "none.cache")).Read()
	assert.ErrorIs(t, err, domain.ErrCacheReadFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestURLCache_RejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"list literal":  "['https://a.test/1', 'https://a.test/2']\n",
		"blank line":    "https://a.test/1\n\nhttps://a.test/2\n",
		"inner space":   "https://a.test/1 https://a.test/2\n",
		"relative":      "/view/1\n",
		"no final \\n":  "https://a.test/1\nhttps://a.test/2",
		"carriage ret.": "https://a.test/1\r\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "x.cache")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			got, err := NewURLCache(path).Read()
			assert.ErrorIs(t, err, domain.ErrCacheReadFailure)
			assert.Nil(t, got)
		})
	}
}

func TestURLCache_WriteRejectsBadEntry(t *testing.T) {
	c := NewURLCache(filepath.Join(t.TempDir(), "x.cache"))
	err := c.Write(context.Background(), []string{"https://a.test/1", "not a url"})
	require.Error(t, err)
	_, statErr := os.Stat(c.Path())
	assert.True(t, os.IsNotExist(statErr), "nothing written on rejection")
}

func TestOutputLog_AppendsDatedSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EntryLevelPositions.txt")
	ctx := context.Background()
	first := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	l, err := OpenLog(ctx, path, first)
	require.NoError(t, err)
	require.NoError(t, l.Append("https://a.test/1"))
	require.NoError(t, l.Append("https://a.test/2"))
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	l, err = OpenLog(ctx, path, first.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, l.Append("https://a.test/3"))
	require.NoError(t, l.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Date: 2024-03-01 09:30:00\nhttps://a.test/1\nhttps://a.test/2\n"+
			"\nDate: 2024-03-01 10:30:00\nhttps://a.test/3\n",
		string(b))
}

func TestOutputLog_AppendIsImmediate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	l, err := OpenLog(context.Background(), path, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Append("https://a.test/1"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date: 2024-01-02 03:04:05\nhttps://a.test/1\n", string(b))
}

func TestOutputLog_LockedWhileOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	l, err := OpenLog(context.Background(), path, time.Now())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_, err = OpenLog(ctx, path, time.Now())
	assert.Error(t, err)

	require.NoError(t, l.Close())
	l2, err := OpenLog(context.Background(), path, time.Now())
	require.NoError(t, err)
	require.NoError(t, l2.Close())
}
