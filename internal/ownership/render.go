// SPDX-License-Identifier: AGPL-3.0-or-later

package ownership

import (
	"sort"
	"time"

	"github.com/repolens/repolens/internal/report"
)

// Render formats the knowledge map report.
func Render(a *Analysis, now time.Time) string {
	b := report.New()
	b.Title("Knowledge Map Report", now)
	b.Blank()

	if len(a.Files) == 0 {
		b.Line("No tracked file history found.")
		return b.String()
	}

	b.Linef("Files analyzed: %d", len(a.Files))
	b.Linef("Authors:        %d", len(a.AuthorFiles))
	b.Blank()

	renderRiskSummary(b, a)
	renderAtRisk(b, a)
	renderAuthors(b, a)

	b.Rule()
	return b.String()
}

func renderRiskSummary(b *report.Builder, a *Analysis) {
	b.Section("Bus-Factor Risk")

	counts := a.ByRisk()
	total := len(a.Files)
	for _, risk := range []Risk{RiskCritical, RiskHigh, RiskMedium, RiskLow} {
		n := counts[risk]
		pct := report.Pct(n, total)
		b.Linef("  %-10s %4d (%5.1f%%) %s", risk, n, pct, report.PercentBar(pct, 40))
	}
	b.Blank()
}

func renderAtRisk(b *report.Builder, a *Analysis) {
	atRisk := a.AtRisk()
	if len(atRisk) == 0 {
		return
	}

	b.Section("Files Needing Knowledge Sharing")
	b.Linef("  %-50s %-20s %-8s %s", "File", "Primary owner", "Share", "Risk")

	shown := atRisk
	if len(shown) > 20 {
		shown = shown[:20]
	}
	for _, f := range shown {
		b.Linef("  %-50s %-20s %6.1f%% %s", f.Path, f.PrimaryOwner, f.Concentration*100, f.Risk)
	}
	if len(atRisk) > len(shown) {
		b.Linef("  ... and %d more", len(atRisk)-len(shown))
	}
	b.Blank()
}

func renderAuthors(b *report.Builder, a *Analysis) {
	b.Section("Knowledge Breadth by Author")

	type row struct {
		name  string
		files int
	}
	rows := make([]row, 0, len(a.AuthorFiles))
	for name, files := range a.AuthorFiles {
		rows = append(rows, row{name, files})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].files != rows[j].files {
			return rows[i].files > rows[j].files
		}
		return rows[i].name < rows[j].name
	})

	max := 0
	if len(rows) > 0 {
		max = rows[0].files
	}
	for _, r := range rows {
		b.Linef("  %-25s %4d files %s", r.name, r.files, report.Bar(r.files, max, 30))
	}
	b.Blank()
}
