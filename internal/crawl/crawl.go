// Package crawl drives one crawl run of one site: resolve the set of posting
// locators, then fetch, extract, classify and record each posting in order.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"entryhunt/internal/classify"
	"entryhunt/internal/domain"
	"entryhunt/internal/scrape"
	"entryhunt/internal/scrape/types"
	"entryhunt/internal/store"
)

// recentWindow is how many of the previous run's newest locators the
// only-new walk compares against.
const recentWindow = 5

const defaultProgressEvery = 20

type Crawler struct {
	site     domain.Site
	provider types.Provider
	fetcher  scrape.DocumentFetcher
	cache    *store.URLCache
	log      *zap.Logger

	now           func() time.Time
	progressEvery int
}

type Option func(*Crawler)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Crawler) { c.now = now }
}

// WithProgressEvery sets how many processed jobs pass between progress reports.
func WithProgressEvery(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.progressEvery = n
		}
	}
}

func New(site domain.Site, p types.Provider, f scrape.DocumentFetcher, log *zap.Logger, opts ...Option) *Crawler {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Crawler{
		site:          site,
		provider:      p,
		fetcher:       f,
		cache:         store.NewURLCache(site.CacheFile),
		log:           log.With(zap.String("site", site.Name)),
		now:           time.Now,
		progressEvery: defaultProgressEvery,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Resolution is the outcome of ResolveURLSet.
type Resolution struct {
	URLs []string
	// NoNewJobs is set when an only-new walk found nothing; the run stops there.
	NoNewJobs bool
	// FromCache is set when URLs came from the cache file unchanged.
	FromCache bool
}

// ResolveURLSet decides which posting locators this run scans.
//
// onlyNew and cached are mutually exclusive. With cached, a readable cache
// is used as is and the listing is not fetched at all, so an unreachable
// site is not fatal in that mode: its postings then fail one by one during
// classification. Otherwise the listing is walked live (stopping at known
// links with onlyNew) and the result overwrites the cache. An unreadable
// cache is logged and replaced by a live walk. Failure to fetch the first
// listing page is returned as an error; nothing else is fatal.
func (c *Crawler) ResolveURLSet(ctx context.Context, onlyNew, cached bool) (Resolution, error) {
	if onlyNew && cached {
		return Resolution{}, domain.Fail(domain.ErrConfiguration, "resolve", "", errors.New("only-new and cached are mutually exclusive"))
	}

	var previous []string
	if onlyNew || cached {
		urls, err := c.cache.Read()
		switch {
		case err != nil:
			c.log.Warn("cache unusable, fetching live", zap.String("cache", c.cache.Path()), zap.Error(err))
		case cached:
			c.log.Info("cached urls", zap.Int("count", len(urls)), zap.String("cache", c.cache.Path()))
			return Resolution{URLs: urls, FromCache: true}, nil
		default:
			previous = urls
		}
	}

	first := c.provider.ListingURL(1)
	doc, err := c.fetcher.Document(ctx, first)
	if err != nil {
		return Resolution{}, fmt.Errorf("listing: %w", err)
	}

	opts := types.ListOptions{
		OnlyNew:     onlyNew,
		RecentKnown: mostRecent(previous, recentWindow),
		MaxPages:    c.site.MaxPages,
	}
	urls, err := scrape.ListJobLinks(ctx, c.fetcher, c.provider, doc, opts)
	if err != nil {
		c.log.Warn("pagination ended early", zap.Int("collected", len(urls)), zap.Error(err))
	}

	if onlyNew && len(urls) == 0 {
		c.log.Info("no new jobs")
		return Resolution{NoNewJobs: true}, nil
	}

	if err := c.cache.Write(ctx, urls); err != nil {
		c.log.Warn("cache write failed", zap.String("cache", c.cache.Path()), zap.Error(err))
	} else {
		c.log.Info("urls were cached", zap.Int("count", len(urls)), zap.String("cache", c.cache.Path()))
	}
	return Resolution{URLs: urls}, nil
}

// Tally counts what ClassifyAndRecord did.
type Tally struct {
	Processed  int
	EntryLevel int
	Failed     int
	Elapsed    time.Duration
}

// ClassifyAndRecord visits urls in order and appends every entry-level
// posting to the site's output log as soon as it is found. Per-job fetch
// and extraction failures are logged and never stop the batch; only a
// failure to open the output log or a cancelled ctx is returned.
func (c *Crawler) ClassifyAndRecord(ctx context.Context, urls []string) (Tally, error) {
	start := c.now()
	c.log.Info("scanning", zap.Int("urls", len(urls)), zap.String("output", c.site.OutputFile))

	out, err := store.OpenLog(ctx, c.site.OutputFile, start)
	if err != nil {
		return Tally{}, fmt.Errorf("open output log: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			c.log.Warn("close output log", zap.Error(cerr))
		}
	}()

	prog := progress{total: len(urls), start: start}
	var t Tally
	for _, link := range urls {
		if err := ctx.Err(); err != nil {
			t.Elapsed = c.now().Sub(start)
			return t, err
		}

		verdict, err := c.check(ctx, link)
		t.Processed++
		switch {
		case err != nil:
			t.Failed++
			c.log.Warn("job skipped", zap.String("url", link), zap.String("kind", kindName(err)), zap.Error(err))
		case verdict.EntryLevel:
			if err := out.Append(link); err != nil {
				return t, fmt.Errorf("append output log: %w", err)
			}
			t.EntryLevel++
			c.log.Info("entry level", zap.String("url", link))
		default:
			c.log.Debug("not entry level", zap.String("url", link),
				zap.String("reason", verdict.Reason), zap.String("evidence", verdict.Evidence))
		}

		if t.Processed%c.progressEvery == 0 {
			c.log.Info("progress", prog.fields(t.Processed, t.EntryLevel, c.now())...)
			if err := out.Sync(); err != nil {
				c.log.Warn("sync output log", zap.Error(err))
			}
		}
	}

	t.Elapsed = c.now().Sub(start)
	c.log.Info("time to get entry level positions",
		zap.Duration("elapsed", t.Elapsed), zap.Int("entry_level", t.EntryLevel), zap.Int("processed", t.Processed))
	return t, nil
}

// check fetches one posting and classifies it. A fetch failure or not-found
// page is returned as an error. Extraction failures are not: a missing
// title or qualifications section is classified as empty.
func (c *Crawler) check(ctx context.Context, link string) (domain.Verdict, error) {
	target := c.provider.JobPageURL(link)
	c.log.Debug("job url", zap.String("url", target))

	doc, err := c.fetcher.Document(ctx, target)
	if err != nil {
		return domain.Verdict{}, err
	}

	rec := domain.JobRecord{URL: link}
	if rec.Title, err = c.provider.Title(doc); err != nil {
		c.log.Debug("title missing", zap.String("url", link), zap.Error(err))
	}
	if rec.Qualifications, err = c.provider.Qualifications(doc); err != nil {
		c.log.Debug("qualifications missing", zap.String("url", link), zap.Error(err))
	}
	return classify.Evaluate(rec), nil
}

// RunOptions selects how the URL set is resolved.
type RunOptions struct {
	OnlyNew bool
	Cached  bool
}

// Run resolves the URL set and classifies it. The returned status is filled
// in as far as the run got, also when an error is returned.
func (c *Crawler) Run(ctx context.Context, opts RunOptions) (types.RunStatus, error) {
	runID := uuid.NewString()
	log := c.log.With(zap.String("run_id", runID))
	prev := c.log
	c.log = log
	defer func() { c.log = prev }()

	st := types.RunStatus{Site: c.site.Name, RunID: runID, Output: c.site.OutputFile}
	start := c.now()

	res, err := c.ResolveURLSet(ctx, opts.OnlyNew, opts.Cached)
	if err != nil {
		st.Err = err.Error()
		st.Elapsed = c.now().Sub(start)
		return st, err
	}
	st.URLs = len(res.URLs)
	if res.NoNewJobs {
		st.NoNewJobs = true
		st.Elapsed = c.now().Sub(start)
		return st, nil
	}

	t, err := c.ClassifyAndRecord(ctx, res.URLs)
	st.Processed, st.EntryLevel, st.Failed = t.Processed, t.EntryLevel, t.Failed
	st.Elapsed = c.now().Sub(start)
	if err != nil {
		st.Err = err.Error()
		return st, err
	}
	return st, nil
}

func mostRecent(urls []string, n int) []string {
	if len(urls) > n {
		return urls[:n]
	}
	return urls
}

func kindName(err error) string {
	if k := domain.KindOf(err); k != nil {
		return k.Error()
	}
	return "unknown"
}
