package scrape

import (
	"fmt"

	"entryhunt/internal/domain"
	"entryhunt/internal/scrape/greenhouse"
	"entryhunt/internal/scrape/lever"
	"entryhunt/internal/scrape/selector"
	"entryhunt/internal/scrape/types"
)

// ProviderFor picks the extraction provider configured for site.
func ProviderFor(site domain.Site) (types.Provider, error) {
	switch site.Provider {
	case "greenhouse":
		return greenhouse.New(greenhouse.Config{Slug: site.Slug, BaseURL: site.BaseURL}), nil
	case "lever":
		return lever.New(lever.Config{Slug: site.Slug, BaseURL: site.BaseURL}), nil
	case "selector":
		return selector.New(selector.Config{
			Name:       site.Name,
			ListingURL: site.ListingURL,
			BaseURL:    site.BaseURL,
			Selectors:  site.Selectors,
		}), nil
	default:
		return nil, domain.Fail(domain.ErrConfiguration, "provider", "", fmt.Errorf("unknown provider %q for site %q", site.Provider, site.Name))
	}
}
