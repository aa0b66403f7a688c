// SPDX-License-Identifier: AGPL-3.0-or-later

package skills

import (
	"context"
	"time"

	"github.com/repolens/repolens/internal/branches"
	"github.com/repolens/repolens/internal/runner"
)

// Branches checks branch hygiene: staleness, merged-but-undeleted
// branches and naming conventions.
type Branches struct{}

func (Branches) ID() string { return "branches" }

func (Branches) Run(ctx context.Context, deps *runner.Deps) runner.SkillResult {
	now := deps.Clock()

	analysis, err := branches.Analyze(ctx, deps.Git, branches.Options{
		StaleAfter:  time.Duration(deps.Config.StaleDays) * 24 * time.Hour,
		Conventions: deps.Config.BranchPrefixes,
		Now:         now,
	})
	if err != nil {
		return fail("branches", exitExecError, err)
	}

	path, err := writeReport(deps, "branches.md", branches.Render(analysis, now))
	if err != nil {
		return fail("branches", exitExecError, err)
	}
	return pass("branches", path)
}
