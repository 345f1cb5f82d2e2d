package main

import (
	"context"

	"github.com/spf13/cobra"

	"entryhunt/internal/crawl"
	"entryhunt/internal/scheduler"
)

func watchCommand() *cobra.Command {
	var (
		sites    []string
		schedule string
		now      bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Scan for new postings on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			selected, err := a.selectSites(sites)
			if err != nil {
				return err
			}
			if schedule == "" {
				schedule = a.cfg.Watch.Schedule
			}

			return scheduler.Cron(cmd.Context(), schedule, "scan", a.log, now, func(ctx context.Context) error {
				statuses, err := a.runSites(ctx, selected, crawl.RunOptions{OnlyNew: true})
				crawl.RenderSummary(cmd.OutOrStdout(), statuses)
				return err
			})
		},
	}
	cmd.Flags().StringSliceVar(&sites, "site", nil, "site name to watch (repeatable, default all)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron spec, overrides watch.schedule")
	cmd.Flags().BoolVar(&now, "now", true, "also scan once at start")
	return cmd
}
