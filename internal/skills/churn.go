// SPDX-License-Identifier: AGPL-3.0-or-later

package skills

import (
	"context"

	"github.com/repolens/repolens/internal/churn"
	"github.com/repolens/repolens/internal/runner"
)

// Churn finds file-level hotspots: which files change most often, and
// how stable each one is.
type Churn struct{}

func (Churn) ID() string { return "churn" }

func (Churn) Run(ctx context.Context, deps *runner.Deps) runner.SkillResult {
	now := deps.Clock()
	since := now.AddDate(0, 0, -deps.Config.WindowDays)

	raw, err := deps.Git.NameStatusLog(ctx, since)
	if err != nil {
		return fail("churn", exitExecError, err)
	}

	commits := churn.ParseNameStatusLog(raw)
	if len(commits) == 0 {
		return skip("churn", "no commits in analysis window")
	}

	stats := churn.Analyze(commits, churn.Options{
		Excludes: deps.Config.Excludes,
		Root:     deps.RepoRoot,
	})

	path, err := writeReport(deps, "churn.md", churn.Render(stats, deps.Config.WindowDays, now))
	if err != nil {
		return fail("churn", exitExecError, err)
	}
	return pass("churn", path)
}
