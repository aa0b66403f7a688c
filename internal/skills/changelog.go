// SPDX-License-Identifier: AGPL-3.0-or-later

package skills

import (
	"context"
	"os"
	"path/filepath"

	"github.com/repolens/repolens/internal/changelog"
	"github.com/repolens/repolens/internal/runner"
)

// Changelog generates a Keep a Changelog document from the repository's
// tagged history and writes it to the configured changelog file.
type Changelog struct{}

func (Changelog) ID() string { return "changelog" }

func (Changelog) Run(ctx context.Context, deps *runner.Deps) runner.SkillResult {
	gen := changelog.NewGenerator(deps.Git, deps.Config.Lang)

	doc, summary, err := gen.Generate(ctx)
	if err != nil {
		return fail("changelog", exitExecError, err)
	}

	path := deps.Config.ChangelogFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(deps.RepoRoot, path)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fail("changelog", exitExecError, err)
	}

	deps.Log.Infow("changelog written",
		"path", path,
		"versions", summary.Versions,
		"unreleased", summary.Unreleased,
	)
	return pass("changelog", path)
}
