package util

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter gives each hostname its own token bucket, so listing and job
// pages of one board share a budget while different boards do not wait on
// each other. A rate <= 0 means unlimited.
type HostLimiter struct {
	every rate.Limit
	burst int

	mu     sync.Mutex
	byHost map[string]*rate.Limiter
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	hl := &HostLimiter{
		every:  rate.Inf,
		burst:  max(burst, 1),
		byHost: map[string]*rate.Limiter{},
	}
	if reqPerSec > 0 {
		hl.every = rate.Limit(reqPerSec)
	}
	return hl
}

// WaitURL blocks until a request to raw's host is allowed or ctx is done.
// A nil limiter never blocks.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	if hl == nil {
		return nil
	}
	return hl.bucket(hostKey(raw)).Wait(ctx)
}

func (hl *HostLimiter) bucket(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	lim, ok := hl.byHost[host]
	if !ok {
		lim = rate.NewLimiter(hl.every, hl.burst)
		hl.byHost[host] = lim
	}
	return lim
}

// hostKey is the lowercased hostname without port; unparseable URLs share
// one bucket.
func hostKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "_"
	}
	return strings.ToLower(u.Hostname())
}
