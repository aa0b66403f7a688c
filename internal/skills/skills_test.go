package skills

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/gitx"
	"github.com/repolens/repolens/internal/runner"
)

// gitRepo creates a throwaway repository with a couple of conventional
// commits and one version tag.
func gitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Alice",
			"GIT_AUTHOR_EMAIL=alice@example.com",
			"GIT_COMMITTER_NAME=Alice",
			"GIT_COMMITTER_EMAIL=alice@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	git("init", "-b", "main")

	commit := func(file, msg string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(msg+"\n"), 0o644))
		git("add", ".")
		git("commit", "-m", msg)
	}

	commit("a.txt", "feat: add user login")
	commit("b.txt", "fix: correct timezone handling")
	git("tag", "v1.0.0")
	commit("a.txt", "docs: update readme")

	return dir
}

func testDeps(t *testing.T, root string) *runner.Deps {
	t.Helper()
	cfg := &config.Config{}
	cfg.SetDefaults()
	return &runner.Deps{
		RepoRoot: root,
		Git:      gitx.NewClient(root),
		Config:   cfg,
		Log:      zap.NewNop().Sugar(),
		Now:      time.Now,
	}
}

func TestChangelogSkill(t *testing.T) {
	root := gitRepo(t)
	deps := testDeps(t, root)

	res := Changelog{}.Run(context.Background(), deps)
	require.Equal(t, runner.StatusPass, res.Status, "note: %s", res.Note)

	data, err := os.ReadFile(filepath.Join(root, "CHANGELOG.md"))
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "## [v1.0.0]")
	assert.Contains(t, doc, "## [Unreleased]")
	assert.Contains(t, doc, "### Added (Added)")
	assert.Contains(t, doc, "add user login")
}

func TestCommitsSkill(t *testing.T) {
	root := gitRepo(t)
	deps := testDeps(t, root)

	res := Commits{}.Run(context.Background(), deps)
	require.Equal(t, runner.StatusPass, res.Status, "note: %s", res.Note)
	require.NotEmpty(t, res.ReportPath)

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Commit History Report")
	assert.Contains(t, string(data), "Alice")
}

func TestTasksSkill(t *testing.T) {
	root := gitRepo(t)
	deps := testDeps(t, root)

	res := Tasks{}.Run(context.Background(), deps)
	require.Equal(t, runner.StatusPass, res.Status, "note: %s", res.Note)

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Task Completion Report")
}

func TestBranchesSkill(t *testing.T) {
	root := gitRepo(t)
	deps := testDeps(t, root)

	res := Branches{}.Run(context.Background(), deps)
	require.Equal(t, runner.StatusPass, res.Status, "note: %s", res.Note)

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "main")
}

func TestChurnSkill(t *testing.T) {
	root := gitRepo(t)
	deps := testDeps(t, root)

	res := Churn{}.Run(context.Background(), deps)
	require.Equal(t, runner.StatusPass, res.Status, "note: %s", res.Note)

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a.txt")
}

func TestOwnershipSkill(t *testing.T) {
	root := gitRepo(t)
	deps := testDeps(t, root)

	res := Ownership{}.Run(context.Background(), deps)
	require.Equal(t, runner.StatusPass, res.Status, "note: %s", res.Note)

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alice")
}

type fakeAuditRunner struct {
	available bool
	outputs   map[string]string
}

func (f fakeAuditRunner) Available(string) bool { return f.available }

func (f fakeAuditRunner) Run(_ context.Context, _, name string, args ...string) (string, error) {
	key := name
	if len(args) > 0 {
		key += " " + args[0]
	}
	return f.outputs[key], nil
}

func TestDepsSkill_NoManifests(t *testing.T) {
	root := t.TempDir()
	deps := testDeps(t, root)

	res := Deps{}.Run(context.Background(), deps)
	assert.Equal(t, runner.StatusSkip, res.Status)
	assert.Contains(t, res.Note, "no dependency manifests")
}

func TestDepsSkill_ToolMissing(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0o644))
	deps := testDeps(t, root)

	res := Deps{Runner: fakeAuditRunner{available: false}}.Run(context.Background(), deps)
	assert.Equal(t, runner.StatusSkip, res.Status)
	assert.Equal(t, 2, res.ExitCode)
}

func TestDepsSkill_Report(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0o644))
	deps := testDeps(t, root)

	fake := fakeAuditRunner{
		available: true,
		outputs: map[string]string{
			"npm outdated": `{"left-pad": {}}`,
			"npm audit":    `{"metadata": {"vulnerabilities": {"high": 1, "low": 2, "total": 3}}}`,
		},
	}

	res := Deps{Runner: fake}.Run(context.Background(), deps)
	require.Equal(t, runner.StatusPass, res.Status, "note: %s", res.Note)

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "npm")
}

func TestRegistryOrder(t *testing.T) {
	want := []string{"changelog", "commits", "tasks", "branches", "churn", "ownership", "deps"}
	assert.Equal(t, want, IDs())
}
