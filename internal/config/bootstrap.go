package config

import (
	"errors"
	"os"
	"path/filepath"
)

// Default returns the config written by `entryhunt init`.
func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.App.ParallelSites = 1
	cfg.App.UserAgent = DefaultUserAgent
	cfg.App.RequestTimeout = DefaultRequestTimeout
	cfg.App.RespectRobots = true
	cfg.App.RatePerSec = 1
	cfg.App.Burst = 2
	cfg.Log.Level = "info"
	cfg.Watch.Schedule = DefaultSchedule
	cfg.Sites = []Site{{
		Name:       "gitlab",
		Provider:   "greenhouse",
		Slug:       "gitlab",
		CacheFile:  "gitlab-urls.cache",
		OutputFile: "EntryLevelPositions.txt",
	}}
	return cfg
}

// EnsureUserConfig returns the config path inside dataDir, writing the
// default config there first if none exists.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := SaveAtomic(userPath, Default()); err != nil {
		return "", err
	}
	return userPath, nil
}
