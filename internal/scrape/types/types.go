package types

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Provider is the site-specific extraction contract. Implementations only
// read documents they are handed; fetching belongs to the caller.
type Provider interface {
	Name() string

	// ListingURL returns the absolute URL of listing page n (1-based).
	ListingURL(page int) string
	// LastPage reads the page count from the first listing page.
	// 0 means unknown: keep paging until a page yields no links.
	LastPage(doc *goquery.Document) int
	// JobLinks returns the posting locators on one listing page, newest first.
	JobLinks(doc *goquery.Document) []string
	// JobPageURL resolves a locator from JobLinks into a fetchable URL.
	JobPageURL(link string) string

	// Title and Qualifications return domain.ErrExtractionFailure step
	// errors when the page does not have the expected shape.
	Title(doc *goquery.Document) (string, error)
	Qualifications(doc *goquery.Document) ([]string, error)
}

// ListOptions controls the listing walk.
type ListOptions struct {
	OnlyNew bool
	// RecentKnown holds the most recent locators from the previous run.
	// With OnlyNew set, the walk stops at the first of these it meets.
	RecentKnown []string
	MaxPages    int
}

// RunStatus summarises one crawl run of one site.
type RunStatus struct {
	Site       string        `json:"site"`
	RunID      string        `json:"run_id"`
	URLs       int           `json:"urls"`
	Processed  int           `json:"processed"`
	EntryLevel int           `json:"entry_level"`
	Failed     int           `json:"failed"`
	Elapsed    time.Duration `json:"elapsed"`
	Output     string        `json:"output"`
	NoNewJobs  bool          `json:"no_new_jobs"`
	Err        string        `json:"error,omitempty"`
}
