package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"entryhunt/internal/config"
	"entryhunt/internal/logger"
	"entryhunt/internal/scrape/util"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:           "entryhunt",
	Short:         "Crawl job boards and keep the entry-level postings",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default <data dir>/config.yml, created if missing)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	rootCmd.AddCommand(scanCommand(), watchCommand(), inspectCommand(), initCommand())
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// app is what every command needs once config and logging are set up.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	limiter *util.HostLimiter
}

func loadApp() (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	path, err := configPath(env)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	env.Apply(&cfg)
	if debug {
		cfg.Log.Level = "debug"
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	if !res.OK() {
		return nil, fmt.Errorf("config %s: %w", path, res.Err())
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		log.Warn("config", zap.String("warning", w))
	}
	log.Debug("config loaded", zap.String("path", path), zap.Int("sites", len(cfg.Sites)))

	return &app{
		cfg:     cfg,
		log:     log,
		limiter: util.NewHostLimiter(cfg.App.RatePerSec, cfg.App.Burst),
	}, nil
}

// configPath prefers --config, then ENTRYHUNT_CONFIG, then the data dir
// config, bootstrapping it on first use.
func configPath(env config.Env) (string, error) {
	switch {
	case cfgFile != "":
		return cfgFile, nil
	case env.ConfigPath != "":
		return env.ConfigPath, nil
	}
	dataDir := env.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	path, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return "", fmt.Errorf("config bootstrap failed: %w", err)
	}
	return path, nil
}
