package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultUserAgent      = "EntryHunt/1.0 (+local)"
	DefaultRequestTimeout = 20 * time.Second
	DefaultSchedule       = "@hourly"
)

// DefaultNotFoundMarkers are body strings that mark a soft 404.
var DefaultNotFoundMarkers = []string{
	"The page you’re looking for can’t be",
	"404 Not Found",
}

var knownProviders = map[string]bool{"greenhouse": true, "lever": true, "selector": true}

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return fmt.Errorf("config validation failed:\n- %s", strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a copy with defaults filled in and lists
// trimmed, plus any problems found.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	if strings.TrimSpace(out.App.DataDir) == "" {
		out.App.DataDir = "."
	}
	if out.App.ParallelSites <= 0 {
		out.App.ParallelSites = 1
	}
	if strings.TrimSpace(out.App.UserAgent) == "" {
		out.App.UserAgent = DefaultUserAgent
	}
	if out.App.RequestTimeout == 0 {
		out.App.RequestTimeout = DefaultRequestTimeout
	} else if out.App.RequestTimeout < 0 {
		res.addErr("app.request_timeout must be > 0")
	}
	if out.App.RatePerSec < 0 {
		res.addErr("app.rate_per_sec must be >= 0")
	} else if out.App.RatePerSec > 10 {
		res.addWarn("app.rate_per_sec is high (%.1f); the target site may block you.", out.App.RatePerSec)
	}
	if out.App.Burst <= 0 {
		out.App.Burst = 1
	}
	if out.Log.Level == "" {
		out.Log.Level = "info"
	}
	if out.Watch.Schedule == "" {
		out.Watch.Schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(out.Watch.Schedule); err != nil {
		res.addErr("watch.schedule %q is not a valid cron spec: %v", out.Watch.Schedule, err)
	}

	if len(out.Sites) == 0 {
		res.addErr("at least one site is required")
	}

	names := map[string]bool{}
	out.Sites = make([]Site, len(cfg.Sites))
	for i, s := range cfg.Sites {
		s.Name = strings.TrimSpace(s.Name)
		s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))
		s.NotFoundMarkers = trimList(s.NotFoundMarkers)

		switch {
		case s.Name == "":
			res.addErr("sites[%d].name is required", i)
		case names[s.Name]:
			res.addErr("sites[%d].name %q is duplicated", i, s.Name)
		}
		names[s.Name] = true

		if !knownProviders[s.Provider] {
			res.addErr("sites[%d].provider %q must be one of greenhouse, lever, selector", i, s.Provider)
		}
		switch s.Provider {
		case "greenhouse", "lever":
			if strings.TrimSpace(s.Slug) == "" {
				res.addErr("sites[%d].slug is required for provider %s", i, s.Provider)
			}
		case "selector":
			if strings.TrimSpace(s.ListingURL) == "" {
				res.addErr("sites[%d].listing_url is required for provider selector", i)
			}
			if s.Selectors.JobLinks == "" || s.Selectors.Title == "" || s.Selectors.Qualifications == "" {
				res.addErr("sites[%d].selectors.job_links, title and qualifications are required for provider selector", i)
			}
			if s.Selectors.LastPage == "" && s.MaxPages == 0 && strings.Contains(s.ListingURL, "{page}") {
				res.addWarn("sites[%d] has no last_page selector or max_pages; pagination stops at the first empty page.", i)
			}
		}
		if s.MaxPages < 0 {
			res.addErr("sites[%d].max_pages must be >= 0", i)
		}

		if len(s.NotFoundMarkers) == 0 {
			s.NotFoundMarkers = append([]string(nil), DefaultNotFoundMarkers...)
		}
		if s.CacheFile == "" {
			s.CacheFile = s.Name + "-urls.cache"
		}
		if s.OutputFile == "" {
			s.OutputFile = "EntryLevelPositions.txt"
		}
		if !filepath.IsAbs(s.CacheFile) {
			s.CacheFile = filepath.Join(out.App.DataDir, s.CacheFile)
		}
		if !filepath.IsAbs(s.OutputFile) {
			s.OutputFile = filepath.Join(out.App.DataDir, s.OutputFile)
		}
		out.Sites[i] = s
	}

	caches := map[string]string{}
	for _, s := range out.Sites {
		if other, ok := caches[s.CacheFile]; ok {
			res.addErr("sites %q and %q share cache_file %s", other, s.Name, s.CacheFile)
		}
		caches[s.CacheFile] = s.Name
	}

	return out, res
}
