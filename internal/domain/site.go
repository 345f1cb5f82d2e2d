package domain

// Site is a configured target job board.
type Site struct {
	Name            string
	Provider        string // greenhouse, lever, selector
	Slug            string
	BaseURL         string
	ListingURL      string // selector provider: may contain {page}
	MaxPages        int
	CacheFile       string
	OutputFile      string
	NotFoundMarkers []string
	Selectors       Selectors
}

// Selectors are CSS selectors used by the generic selector provider.
type Selectors struct {
	JobLinks       string
	LastPage       string
	Title          string
	Qualifications string
}
