// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"sort"
	"time"

	"github.com/repolens/repolens/internal/report"
)

// Render formats the task completion report for the given window.
func Render(s *Stats, windowDays int, now time.Time) string {
	b := report.New()
	b.Rule()
	b.Line("Task Completion Report")
	b.Linef("Generated: %s", now.Format("2006-01-02 15:04:05"))
	b.Linef("Window: last %d days (since %s)", windowDays, now.AddDate(0, 0, -windowDays).Format("2006-01-02"))
	b.Rule()
	b.Blank()

	if s.Total == 0 {
		b.Line("No commits found in the window.")
		b.Blank()
		b.Line("Possible reasons:")
		b.Line("  - the repository is new")
		b.Line("  - there was no activity in the window")
		return b.String()
	}

	b.Linef("Total tasks: %d", s.Total)
	b.Blank()

	renderTypes(b, s)
	renderVelocity(b, s)
	renderWeekdays(b, s)
	renderMonthlyTypes(b, s)
	renderInsights(b, s)

	b.Rule()
	return b.String()
}

func renderTypes(b *report.Builder, s *Stats) {
	b.Section("Task Types")

	type row struct {
		taskType string
		n        int
	}
	rows := make([]row, 0, len(s.ByType))
	for taskType, n := range s.ByType {
		rows = append(rows, row{taskType, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].taskType < rows[j].taskType
	})

	for _, r := range rows {
		pct := report.Pct(r.n, s.Total)
		b.Linef("  %-15s %4d (%5.1f%%) %s", typeLabels[r.taskType], r.n, pct, report.PercentBar(pct, 50))
	}

	b.Blank()
	b.Line("Key metrics:")
	b.Linef("  Features (feat):      %d (%.1f%%)", s.ByType["feat"], report.Pct(s.ByType["feat"], s.Total))
	b.Linef("  Bug fixes (fix):      %d (%.1f%%)", s.ByType["fix"], report.Pct(s.ByType["fix"], s.Total))
	b.Linef("  Refactoring:          %d (%.1f%%)", s.ByType["refactor"], report.Pct(s.ByType["refactor"], s.Total))
	b.Linef("  Bug/feature ratio:    %.2f", s.BugFeatureRatio())
	b.Blank()
}

func renderVelocity(b *report.Builder, s *Stats) {
	b.Section("Velocity")

	if len(s.Weekly) > 0 {
		b.Linef("Weekly average: %.1f tasks", s.WeeklyAverage())
		b.Blank()
		b.Line("Last 8 weeks:")

		weeks := s.Weekly
		if len(weeks) > 8 {
			weeks = weeks[len(weeks)-8:]
		}
		for _, w := range weeks {
			b.Linef("  %s  %3d tasks", w.Key, w.Total)
		}

		if trend, recent, earlier := s.VelocityTrend(); len(s.Weekly) >= 4 {
			var label string
			switch trend {
			case TrendUp:
				label = "rising"
			case TrendDown:
				label = "falling"
			default:
				label = "steady"
			}
			b.Blank()
			b.Linef("Trend: %s (last 4 weeks avg %.1f vs previous %.1f)", label, recent, earlier)
		}
		b.Blank()
	}

	if len(s.Monthly) > 0 {
		b.Line("Monthly totals:")
		for _, m := range s.Monthly {
			b.Linef("  %s  %3d tasks", m.Key, m.Total)
		}
		b.Blank()
	}
}

func renderWeekdays(b *report.Builder, s *Stats) {
	b.Section("Activity by Weekday")

	max := 0
	for _, n := range s.Weekday {
		if n > max {
			max = n
		}
	}

	days := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	for _, d := range days {
		if n := s.Weekday[d]; n > 0 {
			b.Linef("  %-10s %3d %s", d, n, report.Bar(n, max, 30))
		}
	}
	b.Blank()
}

func renderMonthlyTypes(b *report.Builder, s *Stats) {
	if len(s.MonthlyTypes) == 0 {
		return
	}

	b.Section("Type Trend by Month")

	months := make([]string, 0, len(s.MonthlyTypes))
	for m := range s.MonthlyTypes {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > 6 {
		months = months[len(months)-6:]
	}

	for _, month := range months {
		types := s.MonthlyTypes[month]
		total := 0
		for _, n := range types {
			total += n
		}
		b.Blank()
		b.Linef("%s (%d tasks):", month, total)
		for _, taskType := range []string{"feat", "fix", "refactor", "docs", "test", "chore"} {
			if n := types[taskType]; n > 0 {
				b.Linef("  %-15s %3d", typeLabels[taskType], n)
			}
		}
	}
	b.Blank()
}

func renderInsights(b *report.Builder, s *Stats) {
	b.Section("Insights")
	for _, line := range s.Insights() {
		b.Line("- " + line)
	}
	b.Blank()
	b.Line("General guidance:")
	b.Line("  - keep commit cadence steady")
	b.Line("  - balance features against fixes")
	b.Line("  - refactor regularly to contain debt")
	b.Blank()
}
