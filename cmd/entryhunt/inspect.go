package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"entryhunt/internal/classify"
	"entryhunt/internal/domain"
	"entryhunt/internal/scrape"
)

func inspectCommand() *cobra.Command {
	var siteName string
	cmd := &cobra.Command{
		Use:   "inspect URL",
		Short: "Fetch one posting and show what the classifier sees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			names := []string{siteName}
			if siteName == "" {
				if len(a.cfg.Sites) != 1 {
					return domain.Fail(domain.ErrConfiguration, "inspect", "", fmt.Errorf("--site is required with %d sites configured", len(a.cfg.Sites)))
				}
				names = nil
			}
			sites, err := a.selectSites(names)
			if err != nil {
				return err
			}
			site := sites[0].Domain()
			p, err := scrape.ProviderFor(site)
			if err != nil {
				return err
			}

			target := p.JobPageURL(args[0])
			doc, err := a.fetcher(site).Document(cmd.Context(), target)
			if err != nil {
				return err
			}

			rec := domain.JobRecord{URL: args[0]}
			var titleErr, qualErr error
			rec.Title, titleErr = p.Title(doc)
			rec.Qualifications, qualErr = p.Qualifications(doc)
			v := classify.Evaluate(rec)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "URL:    %s\n", target)
			fmt.Fprintf(w, "Title:  %s\n", orMissing(rec.Title, titleErr))
			fmt.Fprintf(w, "Qualifications (%d):\n", len(rec.Qualifications))
			if qualErr != nil {
				fmt.Fprintf(w, "  (%v)\n", qualErr)
			}
			for _, q := range rec.Qualifications {
				fmt.Fprintf(w, "  - %s\n", q)
			}
			if v.EntryLevel {
				fmt.Fprintln(w, "Verdict: entry level")
			} else {
				fmt.Fprintf(w, "Verdict: not entry level (%s: %s)\n", v.Reason, strings.TrimSpace(v.Evidence))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&siteName, "site", "", "configured site the URL belongs to")
	return cmd
}

func orMissing(s string, err error) string {
	if err != nil {
		return fmt.Sprintf("(missing: %v)", err)
	}
	return s
}
