// SPDX-License-Identifier: AGPL-3.0-or-later

package skills

import (
	"context"

	"github.com/repolens/repolens/internal/depaudit"
	"github.com/repolens/repolens/internal/runner"
)

// Deps audits third-party dependency health for every package manager
// detected in the repository.
type Deps struct {
	// Runner defaults to executing the real package-manager tools.
	Runner depaudit.Runner
}

func (Deps) ID() string { return "deps" }

func (s Deps) Run(ctx context.Context, deps *runner.Deps) runner.SkillResult {
	r := s.Runner
	if r == nil {
		r = depaudit.ExecRunner{}
	}

	ecosystems := depaudit.Audit(ctx, deps.RepoRoot, r)
	if len(ecosystems) == 0 {
		return skip("deps", "no dependency manifests found")
	}

	allMissing := true
	for _, eco := range ecosystems {
		if !eco.ToolMissing {
			allMissing = false
			break
		}
	}
	if allMissing {
		res := skip("deps", "no package-manager tools available on PATH")
		res.ExitCode = exitMissingTool
		return res
	}

	path, err := writeReport(deps, "deps.md", depaudit.Render(ecosystems, deps.Clock()))
	if err != nil {
		return fail("deps", exitExecError, err)
	}
	return pass("deps", path)
}
