package util

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"
)

// RobotsPolicy answers robots.txt questions per host, fetching each host's
// file until it gets an answer. Hosts whose robots.txt cannot be fetched or
// parsed are treated as allowing everything; transport errors and 5xx
// responses are not remembered, so the next request asks again.
type RobotsPolicy struct {
	mu        sync.Mutex
	hc        *http.Client
	userAgent string
	groups    map[string]*robotstxt.Group
}

func NewRobotsPolicy(hc *http.Client, userAgent string) *RobotsPolicy {
	return &RobotsPolicy{
		hc:        hc,
		userAgent: userAgent,
		groups:    make(map[string]*robotstxt.Group),
	}
}

func (p *RobotsPolicy) Allowed(ctx context.Context, link string) bool {
	if p == nil {
		return true
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return false
	}

	p.mu.Lock()
	group, ok := p.groups[u.Host]
	p.mu.Unlock()
	if !ok {
		var done bool
		group, done = p.fetch(ctx, u)
		if done {
			p.mu.Lock()
			p.groups[u.Host] = group
			p.mu.Unlock()
		}
	}

	if group == nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return group.Test(path)
}

// fetch reports done=false when no definitive answer came back: the request
// failed, the server answered 5xx, or ctx ended while reading the body.
func (p *RobotsPolicy) fetch(ctx context.Context, u *url.URL) (group *robotstxt.Group, done bool) {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", p.userAgent)

	res, err := p.hc.Do(req)
	if err != nil {
		return nil, false
	}
	defer res.Body.Close()
	if res.StatusCode >= 500 {
		return nil, false
	}

	data, err := robotstxt.FromResponse(res)
	if err != nil {
		return nil, ctx.Err() == nil
	}
	return data.FindGroup(p.userAgent), true
}
