// internal/config/config.go
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"entryhunt/internal/domain"
)

type Selectors struct {
	JobLinks       string `yaml:"job_links"`
	LastPage       string `yaml:"last_page"`
	Title          string `yaml:"title"`
	Qualifications string `yaml:"qualifications"`
}

type Site struct {
	Name            string    `yaml:"name"`
	Provider        string    `yaml:"provider"` // greenhouse, lever, selector
	Slug            string    `yaml:"slug,omitempty"`
	BaseURL         string    `yaml:"base_url,omitempty"`
	ListingURL      string    `yaml:"listing_url,omitempty"` // may contain {page}
	MaxPages        int       `yaml:"max_pages,omitempty"`
	CacheFile       string    `yaml:"cache_file,omitempty"`
	OutputFile      string    `yaml:"output_file,omitempty"`
	NotFoundMarkers []string  `yaml:"not_found_markers,omitempty"`
	Selectors       Selectors `yaml:"selectors,omitempty"`
}

type Config struct {
	App struct {
		DataDir        string        `yaml:"data_dir"`
		ParallelSites  int           `yaml:"parallel_sites"`
		UserAgent      string        `yaml:"user_agent"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		RespectRobots  bool          `yaml:"respect_robots"`
		RatePerSec     float64       `yaml:"rate_per_sec"`
		Burst          int           `yaml:"burst"`
	} `yaml:"app"`

	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`

	Watch struct {
		Schedule string `yaml:"schedule"`
	} `yaml:"watch"`

	Sites []Site `yaml:"sites"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Site looks up a configured site by name.
func (c Config) Site(name string) (Site, bool) {
	for _, s := range c.Sites {
		if s.Name == name {
			return s, true
		}
	}
	return Site{}, false
}

func (s Site) Domain() domain.Site {
	return domain.Site{
		Name:            s.Name,
		Provider:        s.Provider,
		Slug:            s.Slug,
		BaseURL:         s.BaseURL,
		ListingURL:      s.ListingURL,
		MaxPages:        s.MaxPages,
		CacheFile:       s.CacheFile,
		OutputFile:      s.OutputFile,
		NotFoundMarkers: s.NotFoundMarkers,
		Selectors: domain.Selectors{
			JobLinks:       s.Selectors.JobLinks,
			LastPage:       s.Selectors.LastPage,
			Title:          s.Selectors.Title,
			Qualifications: s.Selectors.Qualifications,
		},
	}
}
