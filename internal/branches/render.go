// SPDX-License-Identifier: AGPL-3.0-or-later

package branches

import (
	"sort"
	"time"

	"github.com/repolens/repolens/internal/report"
)

// Render formats the branch hygiene report.
func Render(a *Analysis, now time.Time) string {
	b := report.New()
	b.Title("Branch Hygiene Report", now)
	b.Linef("Main branch: %s", a.MainBranch)
	b.Linef("Branches:    %d", len(a.Branches))
	b.Blank()

	renderStale(b, a)
	renderMerged(b, a)
	renderConventions(b, a)
	renderRecommendations(b, a)

	b.Rule()
	return b.String()
}

func branchRow(b *report.Builder, br Branch) {
	mark := "no"
	if br.Convention != "" {
		mark = "yes"
	}
	b.Linef("  %-40s %-12s %-8d %s", br.Name, br.LastCommit.Format("2006-01-02"), br.Commits, mark)
}

func renderStale(b *report.Builder, a *Analysis) {
	stale := a.Stale()

	b.Section("Stale Branches (no activity for 90+ days)")
	b.Linef("Count: %d", len(stale))
	if len(stale) > 0 {
		b.Blank()
		b.Linef("  %-40s %-12s %-8s %s", "Branch", "Last commit", "Commits", "Named ok")
		for _, br := range stale {
			branchRow(b, br)
		}
	}
	b.Blank()
}

func renderMerged(b *report.Builder, a *Analysis) {
	merged := a.Merged()

	b.Section("Merged Branches")
	b.Linef("Count: %d", len(merged))
	if len(merged) > 0 {
		b.Blank()
		b.Line("Safe to delete:")
		b.Linef("  %-40s %-12s %-8s %s", "Branch", "Last commit", "Commits", "Named ok")
		for _, br := range merged {
			branchRow(b, br)
		}
	}
	b.Blank()
}

func renderConventions(b *report.Builder, a *Analysis) {
	b.Section("Naming Conventions")

	counts := a.ConventionCounts()
	type row struct {
		prefix string
		n      int
	}
	rows := make([]row, 0, len(counts))
	for prefix, n := range counts {
		rows = append(rows, row{prefix, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].prefix < rows[j].prefix
	})

	for _, r := range rows {
		b.Linef("  %-12s %d", r.prefix, r.n)
	}

	if bad := a.Unconventional(); len(bad) > 0 {
		b.Blank()
		b.Linef("Unconventional names (%d):", len(bad))
		for _, br := range bad {
			b.Line("  - " + br.Name)
		}
	}
	b.Blank()
}

func renderRecommendations(b *report.Builder, a *Analysis) {
	b.Section("Recommendations")

	var lines []string
	if merged := a.Merged(); len(merged) > 0 {
		lines = append(lines, "Delete merged branches: git branch -d <name>")
	}
	if stale := a.Stale(); len(stale) > 0 {
		lines = append(lines, "Review stale branches; rebase or close abandoned work")
	}
	if bad := a.Unconventional(); len(bad) > 0 {
		lines = append(lines, "Use feature/, bugfix/, hotfix/ or release/ prefixes for new branches")
	}

	if len(lines) == 0 {
		b.Line("Branches look tidy.")
	}
	for _, line := range lines {
		b.Line("- " + line)
	}
	b.Blank()
}
