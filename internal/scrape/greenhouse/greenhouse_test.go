package greenhouse

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entryhunt/internal/domain"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestProvider_Listing(t *testing.T) {
	p := New(Config{Slug: "acme"})
	assert.Equal(t, "https://boards.greenhouse.io/acme", p.ListingURL(1))
	assert.Equal(t, "", p.ListingURL(2))

	doc := mustDoc(t, `<div id="main">
		<div class="opening"><a href="/acme/jobs/4001">Backend Engineer I</a></div>
		<div class="opening"><a href="https://boards.greenhouse.io/acme/jobs/4002?gh_src=abc">Senior SRE</a></div>
		<div class="opening"><a href="/acme/jobs/4001#app">Backend Engineer I</a></div>
		<a href="/acme/jobs/">All jobs</a>
		<a href="https://www.greenhouse.io/privacy">Privacy</a>
	</div>`)

	assert.Equal(t, 1, p.LastPage(doc))
	assert.Equal(t, []string{
		"https://boards.greenhouse.io/acme/jobs/4001",
		"https://boards.greenhouse.io/acme/jobs/4002",
	}, p.JobLinks(doc))
}

func TestProvider_JobPage(t *testing.T) {
	p := New(Config{Slug: "acme", BaseURL: "http://127.0.0.1:9999/"})
	assert.Equal(t, "http://127.0.0.1:9999/acme/jobs/1", p.JobPageURL("/acme/jobs/1"))

	doc := mustDoc(t, `<div id="app_body">
		<h1 class="app-title">Backend Engineer I</h1>
		<div id="content">
			<p>About us</p>
			<ul><li>BS in Computer Science</li><li>Familiarity with Go</li></ul>
		</div></div>`)

	title, err := p.Title(doc)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer I", title)

	quals, err := p.Qualifications(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"BS in Computer Science", "Familiarity with Go"}, quals)
}

func TestProvider_ParagraphFallbackAndFailures(t *testing.T) {
	p := New(Config{Slug: "acme"})

	quals, err := p.Qualifications(mustDoc(t, `<div id="content"><p>3+ years of experience</p></div>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"3+ years of experience"}, quals)

	empty := mustDoc(t, `<html><body><p>nothing here</p></body></html>`)
	_, err = p.Title(empty)
	assert.ErrorIs(t, err, domain.ErrExtractionFailure)
	_, err = p.Qualifications(empty)
	assert.ErrorIs(t, err, domain.ErrExtractionFailure)
}
