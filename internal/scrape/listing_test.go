package scrape

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entryhunt/internal/domain"
	"entryhunt/internal/scrape/types"
)

// fakeFetcher serves canned listing pages and records what was requested.
type fakeFetcher struct {
	pages     map[string]string
	requested []string
}

func (f *fakeFetcher) Document(_ context.Context, url string) (*goquery.Document, error) {
	f.requested = append(f.requested, url)
	html, ok := f.pages[url]
	if !ok {
		return nil, domain.Fail(domain.ErrFetchFailure, "fetch", url, errors.New("no such page"))
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

const listing = "https://jobs.acme.test/search?page={page}"

func page(pager string, ids ...int) string {
	var b strings.Builder
	b.WriteString(`<div class="pager">` + pager + `</div>`)
	for _, id := range ids {
		fmt.Fprintf(&b, `<a class="result" href="/view/%d">Job %d</a>`, id, id)
	}
	return b.String()
}

func link(id int) string { return fmt.Sprintf("https://jobs.acme.test/view/%d", id) }

func pageURL(n int) string { return strings.ReplaceAll(listing, "{page}", fmt.Sprint(n)) }

func newProvider(t *testing.T, lastPageSel string) types.Provider {
	t.Helper()
	p, err := ProviderFor(domain.Site{
		Name:       "acme",
		Provider:   "selector",
		ListingURL: listing,
		Selectors:  domain.Selectors{JobLinks: ".result", LastPage: lastPageSel, Title: "h1", Qualifications: "li"},
	})
	require.NoError(t, err)
	return p
}

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestListJobLinks_Exhaustive(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		pageURL(2): page("1 2 3", 4, 5, 6),
		pageURL(3): page("1 2 3", 7),
	}}
	p := newProvider(t, ".pager")

	got, err := ListJobLinks(context.Background(), f, p, doc(t, page("1 2 3", 1, 2, 3, 2)), types.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{link(1), link(2), link(3), link(4), link(5), link(6), link(7)}, got)
	assert.Equal(t, []string{pageURL(2), pageURL(3)}, f.requested)
}

func TestListJobLinks_UnknownLastPageStopsOnEmptyPage(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		pageURL(2): page("", 3),
		pageURL(3): page(""),
	}}
	got, err := ListJobLinks(context.Background(), f, newProvider(t, ""), doc(t, page("", 1, 2)), types.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{link(1), link(2), link(3)}, got)
	assert.Len(t, f.requested, 2)
}

func TestListJobLinks_RepeatedPageStops(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{pageURL(2): page("", 1, 2)}}
	got, err := ListJobLinks(context.Background(), f, newProvider(t, ""), doc(t, page("", 1, 2)), types.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{link(1), link(2)}, got)
}

func TestListJobLinks_MaxPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{pageURL(2): page("", 3)}}
	got, err := ListJobLinks(context.Background(), f, newProvider(t, ".pager"), doc(t, page("1 2 3 4", 1, 2)), types.ListOptions{MaxPages: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{link(1), link(2), link(3)}, got)
	assert.Equal(t, []string{pageURL(2)}, f.requested)
}

func TestListJobLinks_OnlyNewStopsAtKnown(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		pageURL(2): page("1 2 3", 23, 22, 21, 20),
		pageURL(3): page("1 2 3", 19, 18),
	}}
	opts := types.ListOptions{
		OnlyNew:     true,
		RecentKnown: []string{link(21), link(20), link(19), link(18), link(17)},
	}

	got, err := ListJobLinks(context.Background(), f, newProvider(t, ".pager"), doc(t, page("1 2 3", 26, 25, 24)), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{link(26), link(25), link(24), link(23), link(22)}, got)
	assert.Equal(t, []string{pageURL(2)}, f.requested, "walk must stop on the page holding a known link")
}

func TestListJobLinks_OnlyNewNothingNew(t *testing.T) {
	opts := types.ListOptions{OnlyNew: true, RecentKnown: []string{link(9)}}
	got, err := ListJobLinks(context.Background(), &fakeFetcher{}, newProvider(t, ".pager"), doc(t, page("1 2", 9, 8)), opts)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListJobLinks_OnlyNewWithoutHistoryIsExhaustive(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{pageURL(2): page("1 2", 3)}}
	got, err := ListJobLinks(context.Background(), f, newProvider(t, ".pager"), doc(t, page("1 2", 1, 2)), types.ListOptions{OnlyNew: true})
	require.NoError(t, err)
	assert.Equal(t, []string{link(1), link(2), link(3)}, got)
}

func TestListJobLinks_LaterPageFailureKeepsPartial(t *testing.T) {
	got, err := ListJobLinks(context.Background(), &fakeFetcher{}, newProvider(t, ".pager"), doc(t, page("1 2", 1, 2)), types.ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
	assert.Contains(t, err.Error(), "listing page 2")
	assert.Equal(t, []string{link(1), link(2)}, got)
}

func TestProviderFor(t *testing.T) {
	for _, name := range []string{"greenhouse", "lever", "selector"} {
		p, err := ProviderFor(domain.Site{Name: "x", Provider: name, Slug: "acme", ListingURL: "https://x.test"})
		require.NoError(t, err)
		assert.NotNil(t, p)
	}

	_, err := ProviderFor(domain.Site{Name: "x", Provider: "workday"})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
