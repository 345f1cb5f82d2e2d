package crawl

import (
	"time"

	"go.uber.org/zap"
)

type progress struct {
	total int
	start time.Time
}

// fields reports elapsed time, the share of processed jobs that were entry
// level, overall completion and a linear estimate of the time remaining.
func (p progress) fields(done, entry int, now time.Time) []zap.Field {
	elapsed := now.Sub(p.start)
	var eta time.Duration
	if done > 0 && p.total > done {
		eta = time.Duration(float64(elapsed) / float64(done) * float64(p.total-done))
	}
	return []zap.Field{
		zap.Int("processed", done),
		zap.Int("total", p.total),
		zap.Duration("elapsed", elapsed.Round(time.Second)),
		zap.Float64("entry_level_pct", pct(entry, done)),
		zap.Float64("complete_pct", pct(done, p.total)),
		zap.Duration("eta", eta.Round(time.Second)),
	}
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(int(float64(part)/float64(whole)*10000+0.5)) / 100
}
