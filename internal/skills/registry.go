// SPDX-License-Identifier: AGPL-3.0-or-later

package skills

import "github.com/repolens/repolens/internal/runner"

// Registry is the canonical skill execution order.
var Registry = []runner.Skill{
	Changelog{},
	Commits{},
	Tasks{},
	Branches{},
	Churn{},
	Ownership{},
	Deps{},
}

// IDs returns the registered skill IDs in execution order.
func IDs() []string {
	out := make([]string, 0, len(Registry))
	for _, s := range Registry {
		out = append(out, s.ID())
	}
	return out
}
