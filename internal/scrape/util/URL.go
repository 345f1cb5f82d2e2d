package util

import (
	"net/url"
	"sort"
	"strings"
)

// Resolve turns href into an absolute URL against base. Unparseable input
// yields "".
func Resolve(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return Canonical(u.String())
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return ""
	}
	return Canonical(b.ResolveReference(u).String())
}

// Canonical lowercases scheme and host, drops the fragment and tracking
// params, and sorts the query so the same posting always yields one string.
func Canonical(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "gh_src" || lk == "lever-source" || lk == "lever-origin" {
			q.Del(k)
		}
	}

	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// IsHTTP reports whether raw is an absolute http(s) URL with a host.
func IsHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
