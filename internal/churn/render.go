// SPDX-License-Identifier: AGPL-3.0-or-later

package churn

import (
	"time"

	"github.com/repolens/repolens/internal/report"
)

// Render formats the code churn report. stats must already be sorted
// by commit count, the order Analyze returns.
func Render(stats []FileStats, windowDays int, now time.Time) string {
	b := report.New()
	b.Rule()
	b.Line("Code Churn Report")
	b.Linef("Generated: %s", now.Format("2006-01-02 15:04:05"))
	b.Linef("Window: last %d days (since %s)", windowDays, now.AddDate(0, 0, -windowDays).Format("2006-01-02"))
	b.Rule()
	b.Blank()

	if len(stats) == 0 {
		b.Line("No file changes found in the window.")
		return b.String()
	}

	b.Linef("Files changed: %d", len(stats))
	b.Blank()

	renderHotspots(b, stats)
	renderStable(b, stats)
	renderRisks(b, stats)

	b.Rule()
	return b.String()
}

func renderHotspots(b *report.Builder, stats []FileStats) {
	b.Section("Hotspots (most churned files)")
	b.Linef("  %-50s %-8s %-8s %-8s %s", "File", "Commits", "Authors", "Stable", "")

	top := stats
	if len(top) > 15 {
		top = top[:15]
	}
	max := top[0].Commits
	for _, fs := range top {
		b.Linef("  %-50s %-8d %-8d %-8d %s",
			fs.Path, fs.Commits, len(fs.Authors), fs.Stability, report.Bar(fs.Commits, max, 25))
	}
	b.Blank()
}

func renderStable(b *report.Builder, stats []FileStats) {
	// Most stable files among those touched more than once.
	var stable []FileStats
	for _, fs := range stats {
		if fs.Commits > 1 {
			stable = append(stable, fs)
		}
	}
	if len(stable) == 0 {
		return
	}

	b.Section("Most Stable Files")
	shown := 0
	for i := len(stable) - 1; i >= 0 && shown < 10; i-- {
		fs := stable[i]
		b.Linef("  %-50s stability %3d (%d commits)", fs.Path, fs.Stability, fs.Commits)
		shown++
	}
	b.Blank()
}

func renderRisks(b *report.Builder, stats []FileStats) {
	b.Section("Risk Flags")

	var flagged int
	for _, fs := range stats {
		switch {
		case fs.Stability < 40:
			b.Linef("  - %s: volatile (stability %d); consider splitting or adding tests", fs.Path, fs.Stability)
			flagged++
		case fs.Commits > 3 && len(fs.Authors) == 1:
			b.Linef("  - %s: heavily churned by a single author; review coverage is thin", fs.Path)
			flagged++
		}
		if flagged >= 10 {
			break
		}
	}
	if flagged == 0 {
		b.Line("  No high-risk churn detected.")
	}
	b.Blank()
}
