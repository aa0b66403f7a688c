// SPDX-License-Identifier: AGPL-3.0-or-later

// Package skills implements the analyzers as runnable skills: each one
// gathers history through the git client, builds a report and writes it
// under the configured report directory.
package skills

import (
	"os"
	"path/filepath"

	"github.com/repolens/repolens/internal/runner"
)

// Exit codes carried in SkillResult when a skill cannot complete.
const (
	exitMissingTool = 2
	exitExecError   = 4
)

// writeReport writes content to name inside the report directory,
// creating it as needed. Returns the path written.
func writeReport(deps *runner.Deps, name, content string) (string, error) {
	dir := deps.Config.ReportDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(deps.RepoRoot, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func pass(id, reportPath string) runner.SkillResult {
	return runner.SkillResult{
		Skill:      id,
		Status:     runner.StatusPass,
		ReportPath: reportPath,
	}
}

func fail(id string, exitCode int, err error) runner.SkillResult {
	return runner.SkillResult{
		Skill:    id,
		Status:   runner.StatusFail,
		ExitCode: exitCode,
		Note:     err.Error(),
	}
}

func skip(id, note string) runner.SkillResult {
	return runner.SkillResult{
		Skill:  id,
		Status: runner.StatusSkip,
		Note:   note,
	}
}
