package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"entryhunt/internal/config"
	"entryhunt/internal/crawl"
	"entryhunt/internal/domain"
	"entryhunt/internal/fetch"
	"entryhunt/internal/scrape"
	"entryhunt/internal/scrape/types"
)

// selectSites returns the named sites, or every configured site when names is empty.
func (a *app) selectSites(names []string) ([]config.Site, error) {
	if len(names) == 0 {
		return a.cfg.Sites, nil
	}
	out := make([]config.Site, 0, len(names))
	for _, n := range names {
		s, ok := a.cfg.Site(n)
		if !ok {
			return nil, domain.Fail(domain.ErrConfiguration, "select site", "", fmt.Errorf("unknown site %q", n))
		}
		out = append(out, s)
	}
	return out, nil
}

func (a *app) fetcher(site domain.Site) *fetch.Fetcher {
	return fetch.New(fetch.Options{
		UserAgent:       a.cfg.App.UserAgent,
		Timeout:         a.cfg.App.RequestTimeout,
		NotFoundMarkers: site.NotFoundMarkers,
		RespectRobots:   a.cfg.App.RespectRobots,
		Limiter:         a.limiter,
	})
}

func (a *app) crawler(site domain.Site) (*crawl.Crawler, error) {
	p, err := scrape.ProviderFor(site)
	if err != nil {
		return nil, err
	}
	return crawl.New(site, p, a.fetcher(site), a.log), nil
}

// runSites crawls every site, at most parallel_sites at a time. A failing
// site does not stop the others; all failures are returned joined.
func (a *app) runSites(ctx context.Context, sites []config.Site, opts crawl.RunOptions) ([]types.RunStatus, error) {
	statuses := make([]types.RunStatus, len(sites))
	errs := make([]error, len(sites))

	var g errgroup.Group
	g.SetLimit(a.cfg.App.ParallelSites)
	for i, s := range sites {
		site := s.Domain()
		g.Go(func() error {
			c, err := a.crawler(site)
			if err != nil {
				statuses[i] = types.RunStatus{Site: site.Name, Err: err.Error()}
				errs[i] = err
				return nil
			}
			st, err := c.Run(ctx, opts)
			statuses[i] = st
			if err != nil {
				a.log.Error("site run failed", zap.String("site", site.Name), zap.Error(err))
				errs[i] = fmt.Errorf("%s: %w", site.Name, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return statuses, errors.Join(errs...)
}
