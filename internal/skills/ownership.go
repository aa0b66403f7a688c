// SPDX-License-Identifier: AGPL-3.0-or-later

package skills

import (
	"context"

	"github.com/repolens/repolens/internal/ownership"
	"github.com/repolens/repolens/internal/runner"
)

// Ownership maps who owns which files and flags bus-factor risk.
type Ownership struct{}

func (Ownership) ID() string { return "ownership" }

func (Ownership) Run(ctx context.Context, deps *runner.Deps) runner.SkillResult {
	raw, err := deps.Git.AuthorFileLog(ctx)
	if err != nil {
		return fail("ownership", exitExecError, err)
	}

	fileAuthors := ownership.ParseAuthorFileLog(raw, deps.Config.Excludes)
	if len(fileAuthors) == 0 {
		return skip("ownership", "no tracked files with history")
	}

	analysis := ownership.Analyze(fileAuthors)

	path, err := writeReport(deps, "ownership.md", ownership.Render(analysis, deps.Clock()))
	if err != nil {
		return fail("ownership", exitExecError, err)
	}
	return pass("ownership", path)
}
