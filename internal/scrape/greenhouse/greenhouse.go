package greenhouse

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"entryhunt/internal/domain"
	"entryhunt/internal/scrape/util"
)

const defaultBase = "https://boards.greenhouse.io"

type Config struct {
	Slug    string // boards.greenhouse.io/<slug>
	BaseURL string // defaults to https://boards.greenhouse.io
}

// Provider reads hosted Greenhouse job boards. A board lists every opening
// on one page, so there is no pagination.
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

func (p *Provider) Name() string { return "greenhouse" }

func (p *Provider) ListingURL(page int) string {
	if page != 1 {
		return ""
	}
	return p.cfg.BaseURL + "/" + p.cfg.Slug
}

func (p *Provider) LastPage(*goquery.Document) int { return 1 }

func (p *Provider) JobLinks(doc *goquery.Document) []string {
	// boards link to /<slug>/jobs/<id>, sometimes absolute
	seen := map[string]bool{}
	var out []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs := util.Resolve(p.cfg.BaseURL, href)
		if abs == "" || !strings.Contains(strings.ToLower(abs), "/jobs/") {
			return
		}
		if extractJobID(abs) == "" || seen[abs] {
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
	if t := util.FirstText(doc, ".app-title", "h1.section-header", "h1"); t != "" {
		return t, nil
	}
	return "", domain.Fail(domain.ErrExtractionFailure, "greenhouse title", docURL(doc), errors.New("no title element"))
}

func (p *Provider) Qualifications(doc *goquery.Document) ([]string, error) {
	content := doc.Find("#content, .job__description").First()
	if content.Length() == 0 {
		return nil, domain.Fail(domain.ErrExtractionFailure, "greenhouse qualifications", docURL(doc), errors.New("no #content section"))
	}

	var out []string
	content.Find("li").Each(func(_ int, s *goquery.Selection) {
		if t := util.CleanText(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	if len(out) == 0 {
		// some boards write requirements as paragraphs
		content.Find("p").Each(func(_ int, s *goquery.Selection) {
			if t := util.CleanText(s.Text()); t != "" {
				out = append(out, t)
			}
		})
	}
	return out, nil
}

func extractJobID(u string) string {
	parts := strings.Split(u, "/jobs/")
	if len(parts) < 2 {
		return ""
	}
	tail := parts[1]
	end := 0
	for end < len(tail) && tail[end] >= '0' && tail[end] <= '9' {
		end++
	}
	return tail[:end]
}

func docURL(doc *goquery.Document) string {
	if doc == nil || doc.Url == nil {
		return ""
	}
	return doc.Url.String()
}
