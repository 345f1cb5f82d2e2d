package crawl

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"entryhunt/internal/scrape/types"
)

// RenderSummary writes one row per site run.
func RenderSummary(w io.Writer, runs []types.RunStatus) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Site", "URLs", "Entry Level", "Pct", "Failed", "Elapsed", "Output"})

	var urls, entry, failed int
	for _, r := range runs {
		t.AppendRow(table.Row{r.Site, r.URLs, r.EntryLevel, percent(r.EntryLevel, r.Processed), r.Failed, r.Elapsed.Round(time.Second), note(r)})
		urls += r.URLs
		entry += r.EntryLevel
		failed += r.Failed
	}
	t.AppendFooter(table.Row{"Total", urls, entry, "", failed, "", ""})
	t.Render()
}

func percent(part, whole int) string {
	if whole == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", pct(part, whole))
}

func note(r types.RunStatus) string {
	switch {
	case r.Err != "":
		return "error: " + r.Err
	case r.NoNewJobs:
		return "no new jobs"
	default:
		return r.Output
	}
}
