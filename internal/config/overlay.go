// config/overlay.go
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds ENTRYHUNT_* overrides. Values from a local .env file are
// loaded first; real environment variables win over it.
type Env struct {
	DataDir    string `envconfig:"DATA_DIR"`
	ConfigPath string `envconfig:"CONFIG"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
	UserAgent  string `envconfig:"USER_AGENT"`
}

func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil {
		// a missing .env is normal; a broken one is worth failing on
		if _, statErr := os.Stat(".env"); statErr == nil {
			return Env{}, fmt.Errorf("load .env: %w", err)
		}
	}

	var env Env
	if err := envconfig.Process("entryhunt", &env); err != nil {
		return Env{}, fmt.Errorf("process env: %w", err)
	}
	return env, nil
}

// Apply overlays non-empty env values onto cfg.
func (e Env) Apply(cfg *Config) {
	if e.DataDir != "" {
		cfg.App.DataDir = e.DataDir
	}
	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
	if e.UserAgent != "" {
		cfg.App.UserAgent = e.UserAgent
	}
}
