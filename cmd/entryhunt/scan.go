package main

import (
	"github.com/spf13/cobra"

	"entryhunt/internal/crawl"
)

func scanCommand() *cobra.Command {
	var (
		sites   []string
		onlyNew bool
		cached  bool
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Crawl the configured sites once and record entry-level postings",
		Long: `Walk each site's listing, classify every posting and append the
entry-level ones to the site's output file under a dated header.

--only-new stops the listing walk at the postings seen last time.
--cached scans the URLs saved by the previous run without walking the listing.`,
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
			statuses, err := a.runSites(cmd.Context(), selected, crawl.RunOptions{OnlyNew: onlyNew, Cached: cached})
			crawl.RenderSummary(cmd.OutOrStdout(), statuses)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&sites, "site", nil, "site name to scan (repeatable, default all)")
	cmd.Flags().BoolVar(&onlyNew, "only-new", false, "only scan postings newer than the cached ones")
	cmd.Flags().BoolVar(&cached, "cached", false, "scan the cached URL list instead of walking the listing")
	return cmd
}
