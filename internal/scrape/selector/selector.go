// Package selector is a configuration-driven provider for job boards that
// render server-side HTML: every site-specific detail is a CSS selector.
package selector

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"entryhunt/internal/domain"
	"entryhunt/internal/scrape/util"
)

const pagePlaceholder = "{page}"

type Config struct {
	Name       string
	ListingURL string // "{page}" is replaced by the 1-based page number
	BaseURL    string // resolves relative links; defaults to ListingURL
	Selectors  domain.Selectors
}

type Provider struct {
	cfg Config
}

func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = strings.ReplaceAll(cfg.ListingURL, pagePlaceholder, "1")
	}
	return &Provider{cfg: cfg}
}

func (p *Provider) Name() string {
	if p.cfg.Name != "" {
		return p.cfg.Name
	}
	return "selector"
}

func (p *Provider) ListingURL(page int) string {
	if !strings.Contains(p.cfg.ListingURL, pagePlaceholder) {
		if page == 1 {
			return p.cfg.ListingURL
		}
		return ""
	}
	return strings.ReplaceAll(p.cfg.ListingURL, pagePlaceholder, strconv.Itoa(page))
}

// LastPage takes the largest integer found in the text of the last-page
// selector matches, e.g. the numbered links of a pager.
func (p *Provider) LastPage(doc *goquery.Document) int {
	if !strings.Contains(p.cfg.ListingURL, pagePlaceholder) {
		return 1
	}
	if p.cfg.Selectors.LastPage == "" {
		return 0
	}
	last := 0
	doc.Find(p.cfg.Selectors.LastPage).Each(func(_ int, s *goquery.Selection) {
		for _, f := range strings.Fields(s.Text()) {
			if n, err := strconv.Atoi(strings.Trim(f, ".,()[]")); err == nil && n > last {
				last = n
			}
		}
	})
	return last
}

func (p *Provider) JobLinks(doc *goquery.Document) []string {
	seen := map[string]bool{}
	var out []string
	doc.Find(p.cfg.Selectors.JobLinks).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			href, ok = s.Find("a[href]").First().Attr("href")
		}
		if !ok {
			return
		}
		abs := util.Resolve(p.cfg.BaseURL, href)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		out = append(out, abs)
	})
	return out
}

func (p *Provider) JobPageURL(link string) string {
	return util.Resolve(p.cfg.BaseURL, link)
}

func (p *Provider) Title(doc *goquery.Document) (string, error) {
	if t := util.FirstText(doc, p.cfg.Selectors.Title); t != "" {
		return t, nil
	}
	return "", domain.Fail(domain.ErrExtractionFailure, p.Name()+" title", docURL(doc),
		errors.New("no match for "+p.cfg.Selectors.Title))
}

func (p *Provider) Qualifications(doc *goquery.Document) ([]string, error) {
	if doc.Find(p.cfg.Selectors.Qualifications).Length() == 0 {
		return nil, domain.Fail(domain.ErrExtractionFailure, p.Name()+" qualifications", docURL(doc),
			errors.New("no match for "+p.cfg.Selectors.Qualifications))
	}
	return util.Statements(doc, p.cfg.Selectors.Qualifications), nil
}

func docURL(doc *goquery.Document) string {
	if doc == nil || doc.Url == nil {
		return ""
	}
	return doc.Url.String()
}
