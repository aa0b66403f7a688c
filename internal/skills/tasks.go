// SPDX-License-Identifier: AGPL-3.0-or-later

package skills

import (
	"context"

	"github.com/repolens/repolens/internal/gitx"
	"github.com/repolens/repolens/internal/runner"
	"github.com/repolens/repolens/internal/tasks"
)

// Tasks tracks task completion velocity from conventional-commit types.
type Tasks struct{}

func (Tasks) ID() string { return "tasks" }

func (Tasks) Run(ctx context.Context, deps *runner.Deps) runner.SkillResult {
	now := deps.Clock()
	since := now.AddDate(0, 0, -deps.Config.WindowDays)

	records, err := deps.Git.Log(ctx, gitx.LogOptions{Since: since, NoMerges: true})
	if err != nil {
		return fail("tasks", exitExecError, err)
	}
	if len(records) == 0 {
		return skip("tasks", "no commits in analysis window")
	}

	stats := tasks.Analyze(records)

	path, err := writeReport(deps, "tasks.md", tasks.Render(stats, deps.Config.WindowDays, now))
	if err != nil {
		return fail("tasks", exitExecError, err)
	}
	return pass("tasks", path)
}
