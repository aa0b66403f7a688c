// SPDX-License-Identifier: AGPL-3.0-or-later

package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/repolens/repolens/internal/commit"
)

// logFormat matches what the analyzers expect: one record per line,
// pipe-delimited, subject last so embedded pipes stay in the subject.
const logFormat = "%H|%an|%ad|%s"

// Client runs git commands against a single repository root.
type Client struct {
	root string
}

// NewClient creates a Client for the given worktree root.
func NewClient(root string) *Client {
	return &Client{root: root}
}

// Root returns the worktree root this client operates on.
func (c *Client) Root() string { return c.root }

// run executes git with the given arguments, returning trimmed stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.root

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return strings.TrimSpace(string(out)), nil
}

// LogOptions controls which commits Log returns.
type LogOptions struct {
	// Range limits the walk, e.g. "v1.0..v1.1" or "v1.1..HEAD".
	// Empty means HEAD.
	Range string
	// Since drops commits older than the given time.
	Since time.Time
	// Limit caps the number of commits; 0 means unlimited.
	Limit int
	// NoMerges drops merge commits.
	NoMerges bool
	// AllRefs walks every ref, not just HEAD.
	AllRefs bool
}

// Log returns commits newest-first, parsed into records. Malformed
// output lines are skipped.
func (c *Client) Log(ctx context.Context, opts LogOptions) ([]commit.Record, error) {
	args := []string{"log", "--format=" + logFormat, "--date=iso"}
	if opts.Range != "" {
		args = append(args, opts.Range)
	}
	if !opts.Since.IsZero() {
		args = append(args, "--since="+opts.Since.Format("2006-01-02"))
	}
	if opts.Limit > 0 {
		args = append(args, "-n", strconv.Itoa(opts.Limit))
	}
	if opts.NoMerges {
		args = append(args, "--no-merges")
	}
	if opts.AllRefs {
		args = append(args, "--all")
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var records []commit.Record
	for _, line := range strings.Split(out, "\n") {
		if rec, ok := commit.ParseLine(line); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Tags returns version tags sorted newest-first by version number.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "tag", "-l", "--sort=-v:refname")
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// TagDate returns the short date of the commit a tag points at.
func (c *Client) TagDate(ctx context.Context, tag string) (string, error) {
	return c.run(ctx, "log", "-1", "--format=%ad", "--date=short", tag)
}

// Branches returns deduplicated local and remote branch names.
// The origin/HEAD pointer is skipped and remote prefixes are stripped.
func (c *Client) Branches(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "branch", "-a", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.HasSuffix(name, "/HEAD") || name == "origin" {
			continue
		}
		name = strings.TrimPrefix(name, "origin/")
		seen[name] = true
	}

	branches := make([]string, 0, len(seen))
	for name := range seen {
		branches = append(branches, name)
	}
	sort.Strings(branches)
	return branches, nil
}

// CurrentBranch returns the checked-out branch name.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// MainBranch resolves the integration branch: main, then master, then
// whatever origin/HEAD points at, defaulting to main.
func (c *Client) MainBranch(ctx context.Context) string {
	for _, name := range []string{"main", "master"} {
		if _, err := c.run(ctx, "rev-parse", "--verify", name); err == nil {
			return name
		}
	}
	if out, err := c.run(ctx, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		return strings.TrimPrefix(out, "refs/remotes/origin/")
	}
	return "main"
}

// BranchLastCommit returns the date of the most recent commit on branch.
func (c *Client) BranchLastCommit(ctx context.Context, branch string) (time.Time, error) {
	out, err := c.run(ctx, "log", "-1", "--format=%ci", branch)
	if err != nil {
		return time.Time{}, err
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("empty log output for %s", branch)
	}
	return time.Parse("2006-01-02", fields[0])
}

// RevCount returns the number of commits reachable from branch.
func (c *Client) RevCount(ctx context.Context, branch string) (int, error) {
	out, err := c.run(ctx, "rev-list", "--count", branch)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(out)
}

// MergedInto returns the set of branches fully merged into target.
func (c *Client) MergedInto(ctx context.Context, target string) (map[string]bool, error) {
	out, err := c.run(ctx, "branch", "--merged", target, "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}

	merged := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			merged[name] = true
		}
	}
	return merged, nil
}

// NameStatusLog returns the raw `git log --name-status` output for the
// churn analyzer. The caller owns parsing.
func (c *Client) NameStatusLog(ctx context.Context, since time.Time) (string, error) {
	return c.run(ctx,
		"log",
		"--since="+since.Format("2006-01-02"),
		"--name-status",
		"--pretty=format:%H|%ai|%an",
		"--no-merges",
	)
}

// AuthorFileLog returns the raw author/file listing for the ownership
// analyzer: author name lines interleaved with touched file paths.
func (c *Client) AuthorFileLog(ctx context.Context) (string, error) {
	return c.run(ctx, "log", "--pretty=format:%an", "--name-only", "-m")
}
