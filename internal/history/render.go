// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"sort"
	"time"

	"github.com/repolens/repolens/internal/report"
)

// Render formats the full commit-history report.
func Render(s *Stats, now time.Time) string {
	b := report.New()
	b.Title("Commit History Report", now)
	b.Blank()

	if s.Total == 0 {
		b.Line("No commits found.")
		return b.String()
	}

	renderBasics(b, s)
	renderContributors(b, s)
	renderHourly(b, s)
	renderWeekdays(b, s)
	renderMonthly(b, s)
	renderQuality(b, s)
	renderSuggestions(b, s)

	b.Rule()
	return b.String()
}

func renderBasics(b *report.Builder, s *Stats) {
	b.Section("Overview")
	b.Linef("Total commits:      %d", s.Total)
	b.Linef("Contributors:       %d", len(s.Contributors))
	if !s.First.IsZero() {
		b.Linef("Time range:         %s to %s", s.First.Format("2006-01-02"), s.Last.Format("2006-01-02"))
	}
	b.Linef("Commits per day:    %.2f", s.CommitsPerDay)
	b.Linef("Avg message length: %.1f chars", s.AvgMessageLen)
	b.Blank()
}

func renderContributors(b *report.Builder, s *Stats) {
	b.Section("Contributors")
	b.Linef("%-4s %-30s %-8s %s", "#", "Author", "Commits", "Share")
	for i, c := range s.Contributors {
		b.Linef("%-4d %-30s %-8d %5.1f%% %s",
			i+1, c.Name, c.Commits, c.Pct, report.PercentBar(c.Pct, 50))
	}
	b.Blank()
}

func renderHourly(b *report.Builder, s *Stats) {
	b.Section("Activity by Hour")
	_, max := s.Activity.PeakHour()
	for h := 0; h < 24; h++ {
		n := s.Activity.Hourly[h]
		b.Linef("%02d:00 %-40s %4d", h, report.Bar(n, max, 40), n)
	}
	b.Blank()
}

func renderWeekdays(b *report.Builder, s *Stats) {
	b.Section("Activity by Weekday")
	_, max := s.Activity.PeakWeekday()
	// Monday-first ordering, the way teams read a week.
	days := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	for _, d := range days {
		n := s.Activity.Weekday[d]
		b.Linef("%-10s %-40s %4d", d, report.Bar(n, max, 40), n)
	}

	workdays, weekends := s.Activity.Workdays(), s.Activity.Weekends()
	if total := workdays + weekends; total > 0 {
		b.Blank()
		b.Linef("Workday commits: %d (%.1f%%)", workdays, report.Pct(workdays, total))
		b.Linef("Weekend commits: %d (%.1f%%)", weekends, report.Pct(weekends, total))
	}
	b.Blank()
}

func renderMonthly(b *report.Builder, s *Stats) {
	months := s.Activity.RecentMonths(12)
	if len(months) == 0 {
		return
	}

	b.Section("Monthly Trend")
	max := 0
	for _, m := range months {
		if n := s.Activity.Monthly[m]; n > max {
			max = n
		}
	}
	for _, m := range months {
		n := s.Activity.Monthly[m]
		b.Linef("%s %-30s %d", m, report.Bar(n, max, 30), n)
	}
	b.Blank()
}

func renderQuality(b *report.Builder, s *Stats) {
	b.Section("Message Quality")
	b.Linef("Conventional-commit compliance: %.1f%% (%d / %d)",
		s.Quality.ComplianceRate, s.Quality.Conventional, s.Quality.Total)

	if len(s.Quality.TypeCounts) > 0 {
		b.Blank()
		b.Line("Type distribution:")

		type typeCount struct {
			name string
			n    int
		}
		counts := make([]typeCount, 0, len(s.Quality.TypeCounts))
		for name, n := range s.Quality.TypeCounts {
			counts = append(counts, typeCount{name, n})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].n != counts[j].n {
				return counts[i].n > counts[j].n
			}
			return counts[i].name < counts[j].name
		})
		for _, tc := range counts {
			pct := report.Pct(tc.n, s.Quality.Conventional)
			b.Linef("  %-10s %-50s %4d (%5.1f%%)", tc.name, report.PercentBar(pct, 50), tc.n, pct)
		}
	}

	b.Blank()
	b.Line("Assessment:")
	switch {
	case s.Quality.ComplianceRate >= 80:
		b.Line("  good - messages follow the conventional-commit format")
	case s.Quality.ComplianceRate >= 50:
		b.Line("  fair - some messages follow the format, aim higher")
	default:
		b.Line("  poor - adopt the conventional-commit format (type: subject)")
	}
	b.Blank()
}

func renderSuggestions(b *report.Builder, s *Stats) {
	b.Section("Suggestions")

	var suggestions []string
	if s.Quality.ComplianceRate < 80 {
		suggestions = append(suggestions,
			"Adopt conventional commits: feat, fix, docs, refactor, test, chore prefixes")
	}
	if s.AvgMessageLen < 30 {
		suggestions = append(suggestions,
			"Commit subjects are short on average; describe what changed and why")
	}
	if workdays, weekends := s.Activity.Workdays(), s.Activity.Weekends(); weekends > 0 && workdays > weekends*3 {
		suggestions = append(suggestions,
			"Nearly all commits land on workdays; watch for crunch before deadlines")
	}
	if s.Activity.Hourly[22]+s.Activity.Hourly[23] > 0 {
		suggestions = append(suggestions,
			"Late-night commits detected; tired commits tend to need fixes")
	}

	if len(suggestions) == 0 {
		b.Line("Commit habits look healthy.")
	}
	for _, s := range suggestions {
		b.Line("- " + s)
	}
	b.Blank()
}
