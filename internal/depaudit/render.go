// SPDX-License-Identifier: AGPL-3.0-or-later

package depaudit

import (
	"time"

	"github.com/repolens/repolens/internal/report"
)

// Render formats the dependency audit report.
func Render(ecosystems []Ecosystem, now time.Time) string {
	b := report.New()
	b.Title("Dependency Audit Report", now)
	b.Blank()

	if len(ecosystems) == 0 {
		b.Line("No package manifests found (package.json, requirements.txt, Cargo.toml, composer.json).")
		return b.String()
	}

	for _, eco := range ecosystems {
		b.Section(eco.Name + " (" + eco.Manifest + ")")

		if eco.ToolMissing {
			b.Linef("  skipped: %s", eco.Note)
			b.Blank()
			continue
		}

		b.Linef("  Outdated packages:  %d", eco.Outdated)
		if total := eco.TotalVulns(); total > 0 {
			b.Linef("  Vulnerabilities:    %d", total)
			for _, sev := range eco.Severities() {
				b.Linef("    %-10s %d", sev, eco.Vulns[sev])
			}
		} else {
			b.Line("  Vulnerabilities:    none reported")
		}
		if eco.Note != "" && !eco.ToolMissing {
			b.Line("  note: " + eco.Note)
		}
		b.Blank()
	}

	b.Rule()
	return b.String()
}
