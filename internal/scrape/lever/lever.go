package lever

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"entryhunt/internal/domain"
	"entryhunt/internal/scrape/util"
)

const defaultBase = "https://jobs.lever.co"

type Config struct {
	Slug    string // jobs.lever.co/<slug>
	BaseURL string
}

// Provider reads hosted Lever job pages.
type Provider struct {
	cfg Config
}

func New(cfg Config) *Provider {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBase
	}
	return &Provider{cfg: cfg}
}

func (p *Provider) Name() string { return "lever" }

func (p *Provider) ListingURL(page int) string {
	if page != 1 {
		return ""
	}
	return p.cfg.BaseURL + "/" + p.cfg.Slug
}

func (p *Provider) LastPage(*goquery.Document) int { return 1 }

func (p *Provider) JobLinks(doc *goquery.Document) []string {
	prefix := strings.ToLower(p.cfg.BaseURL + "/" + p.cfg.Slug + "/")
	seen := map[string]bool{}
	var out []string

	add := func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs := util.Resolve(p.cfg.BaseURL, href)
		if abs == "" || seen[abs] || !strings.HasPrefix(strings.ToLower(abs), prefix) {
			return
		}
		// skip the apply form, keep the posting
		if strings.HasSuffix(abs, "/apply") {
			return
		}
		seen[abs] = true
		out = append(out, abs)
	}

	doc.Find("a.posting-title[href]").Each(add)
	if len(out) == 0 {
		doc.Find("a[href]").Each(add)
	}
	return out
}

func (p *Provider) JobPageURL(link string) string {
	return util.Resolve(p.cfg.BaseURL, link)
}

func (p *Provider) Title(doc *goquery.Document) (string, error) {
	if t := util.FirstText(doc, ".posting-headline h2", "[data-qa='posting-name']", "h2", "h1"); t != "" {
		return t, nil
	}
	return "", domain.Fail(domain.ErrExtractionFailure, "lever title", docURL(doc), errors.New("no posting headline"))
}

func (p *Provider) Qualifications(doc *goquery.Document) ([]string, error) {
	sections := doc.Find(".posting .section, .section.page-centered")
	if sections.Length() == 0 {
		return nil, domain.Fail(domain.ErrExtractionFailure, "lever qualifications", docURL(doc), errors.New("no posting sections"))
	}

	var out []string
	sections.Find("li").Each(func(_ int, s *goquery.Selection) {
		if t := util.CleanText(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out, nil
}

func docURL(doc *goquery.Document) string {
	if doc == nil || doc.Url == nil {
		return ""
	}
	return doc.Url.String()
}
