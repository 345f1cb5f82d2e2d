// Package fetch retrieves listing and job pages and classifies failures
// into the domain error kinds.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"entryhunt/internal/domain"
	"entryhunt/internal/scrape/util"
)

const maxBodyBytes = 8 << 20

var ErrDisallowed = errors.New("disallowed by robots.txt")

// StatusError carries a non-success HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

type Options struct {
	UserAgent       string
	Timeout         time.Duration
	NotFoundMarkers []string
	RespectRobots   bool
	Limiter         *util.HostLimiter
	Client          *http.Client // overrides Timeout when set
}

type Fetcher struct {
	hc        *http.Client
	userAgent string
	markers   [][]byte
	limiter   *util.HostLimiter
	robots    *util.RobotsPolicy
}

func New(opts Options) *Fetcher {
	hc := opts.Client
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	f := &Fetcher{
		hc:        hc,
		userAgent: opts.UserAgent,
		limiter:   opts.Limiter,
	}
	for _, m := range opts.NotFoundMarkers {
		if m != "" {
			f.markers = append(f.markers, []byte(m))
		}
	}
	if opts.RespectRobots {
		f.robots = util.NewRobotsPolicy(hc, opts.UserAgent)
	}
	return f
}

// Document GETs target and parses it. Failures are *domain.StepError with
// kind ErrFetchFailure (transport, robots, non-2xx) or ErrNotFoundPage
// (404/410 or a soft-404 marker in the body).
func (f *Fetcher) Document(ctx context.Context, target string) (*goquery.Document, error) {
	const op = "fetch"

	if !f.robots.Allowed(ctx, target) {
		return nil, domain.Fail(domain.ErrFetchFailure, op, target, ErrDisallowed)
	}
	if err := f.limiter.WaitURL(ctx, target); err != nil {
		return nil, domain.Fail(domain.ErrFetchFailure, op, target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, domain.Fail(domain.ErrFetchFailure, op, target, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	res, err := f.hc.Do(req)
	if err != nil {
		return nil, domain.Fail(domain.ErrFetchFailure, op, target, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusGone:
		return nil, domain.Fail(domain.ErrNotFoundPage, op, target, &StatusError{Code: res.StatusCode})
	case res.StatusCode >= 400:
		return nil, domain.Fail(domain.ErrFetchFailure, op, target, &StatusError{Code: res.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.Fail(domain.ErrFetchFailure, op, target, err)
	}
	for _, m := range f.markers {
		if bytes.Contains(body, m) {
			return nil, domain.Fail(domain.ErrNotFoundPage, op, target, fmt.Errorf("body contains %q", m))
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, domain.Fail(domain.ErrExtractionFailure, "parse", target, err)
	}
	doc.Url = res.Request.URL
	return doc, nil
}
