package scrape

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"entryhunt/internal/scrape/types"
)

// DocumentFetcher is the part of fetch.Fetcher the listing walk needs.
type DocumentFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// ListJobLinks walks the listing pages starting from the already fetched
// first page and returns posting locators in listing order, deduplicated.
//
// With opts.OnlyNew the walk stops at the first locator contained in
// opts.RecentKnown and returns only what came before it. Otherwise it runs
// until the provider's last page, opts.MaxPages, or a page that adds nothing.
//
// If a later page cannot be fetched, the locators gathered so far are
// returned together with the error.
func ListJobLinks(ctx context.Context, f DocumentFetcher, p types.Provider, first *goquery.Document, opts types.ListOptions) ([]string, error) {
	known := make(map[string]bool, len(opts.RecentKnown))
	for _, u := range opts.RecentKnown {
		known[u] = true
	}
	stopOnKnown := opts.OnlyNew && len(known) > 0

	last := p.LastPage(first)
	seen := map[string]bool{}
	var out []string

	doc := first
	for page := 1; ; page++ {
		if page > 1 {
			if (last > 0 && page > last) || (opts.MaxPages > 0 && page > opts.MaxPages) {
				break
			}
			next := p.ListingURL(page)
			if next == "" {
				break
			}
			var err error
			doc, err = f.Document(ctx, next)
			if err != nil {
				return out, fmt.Errorf("listing page %d: %w", page, err)
			}
		}

		added := 0
		for _, link := range p.JobLinks(doc) {
			if stopOnKnown && known[link] {
				return out, nil
			}
			if seen[link] {
				continue
			}
			seen[link] = true
			out = append(out, link)
			added++
		}
		if added == 0 {
			break
		}
	}
	return out, nil
}
