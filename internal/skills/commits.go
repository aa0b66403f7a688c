// SPDX-License-Identifier: AGPL-3.0-or-later

package skills

import (
	"context"

	"github.com/repolens/repolens/internal/gitx"
	"github.com/repolens/repolens/internal/history"
	"github.com/repolens/repolens/internal/runner"
)

// Commits analyzes commit history: contributors, activity patterns and
// message quality.
type Commits struct{}

func (Commits) ID() string { return "commits" }

func (Commits) Run(ctx context.Context, deps *runner.Deps) runner.SkillResult {
	now := deps.Clock()
	since := now.AddDate(0, 0, -deps.Config.WindowDays)

	records, err := deps.Git.Log(ctx, gitx.LogOptions{Since: since, Limit: deps.Config.MaxCommits})
	if err != nil {
		return fail("commits", exitExecError, err)
	}
	if len(records) == 0 {
		return skip("commits", "no commits in analysis window")
	}

	stats := history.Analyze(records)

	path, err := writeReport(deps, "commits.md", history.Render(stats, now))
	if err != nil {
		return fail("commits", exitExecError, err)
	}
	return pass("commits", path)
}
