// SPDX-License-Identifier: AGPL-3.0-or-later

// Package branches checks branch hygiene: stale branches, merged
// branches that can be deleted, and naming-convention compliance.
package branches

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultStaleAfter marks branches with no commits for this long as stale.
const DefaultStaleAfter = 90 * 24 * time.Hour

// DefaultConventions are the recognized branch name prefixes.
var DefaultConventions = []string{
	"feature/", "bugfix/", "hotfix/", "release/", "develop", "main", "master",
}

// Source supplies branch facts. *gitx.Client satisfies it.
type Source interface {
	Branches(ctx context.Context) ([]string, error)
	CurrentBranch(ctx context.Context) (string, error)
	MainBranch(ctx context.Context) string
	BranchLastCommit(ctx context.Context, branch string) (time.Time, error)
	RevCount(ctx context.Context, branch string) (int, error)
	MergedInto(ctx context.Context, target string) (map[string]bool, error)
}

// Branch is the analyzed state of a single branch.
type Branch struct {
	Name       string
	LastCommit time.Time
	Commits    int
	Merged     bool
	Stale      bool
	Convention string // matched prefix, empty when unconventional
}

// Analysis is the hygiene report data for a repository.
type Analysis struct {
	MainBranch string
	Branches   []Branch
}

// Options tunes the analysis.
type Options struct {
	StaleAfter  time.Duration
	Conventions []string
	Now         time.Time
}

func (o *Options) fill() {
	if o.StaleAfter == 0 {
		o.StaleAfter = DefaultStaleAfter
	}
	if len(o.Conventions) == 0 {
		o.Conventions = DefaultConventions
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
}

// Analyze inspects every branch. Branches whose tip cannot be resolved
// (e.g. deleted upstream) are skipped rather than failing the run.
func Analyze(ctx context.Context, src Source, opts Options) (*Analysis, error) {
	opts.fill()

	names, err := src.Branches(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	main := src.MainBranch(ctx)
	current, err := src.CurrentBranch(ctx)
	if err != nil {
		current = ""
	}

	merged, err := src.MergedInto(ctx, main)
	if err != nil {
		merged = map[string]bool{}
	}

	a := &Analysis{MainBranch: main}
	for _, name := range names {
		last, err := src.BranchLastCommit(ctx, name)
		if err != nil {
			continue
		}
		commits, err := src.RevCount(ctx, name)
		if err != nil {
			commits = 0
		}

		b := Branch{
			Name:       name,
			LastCommit: last,
			Commits:    commits,
			Convention: matchConvention(name, opts.Conventions),
			Stale:      opts.Now.Sub(last) > opts.StaleAfter,
		}
		// The integration branch and the checkout are never "merged".
		if name != main && name != current {
			b.Merged = merged[name]
		}
		a.Branches = append(a.Branches, b)
	}

	sort.Slice(a.Branches, func(i, j int) bool { return a.Branches[i].Name < a.Branches[j].Name })
	return a, nil
}

func matchConvention(name string, conventions []string) string {
	for _, prefix := range conventions {
		if name == prefix || strings.HasPrefix(name, prefix) {
			return prefix
		}
	}
	return ""
}

// Stale returns the stale branches, oldest first.
func (a *Analysis) Stale() []Branch {
	out := filter(a.Branches, func(b Branch) bool { return b.Stale })
	sort.Slice(out, func(i, j int) bool { return out[i].LastCommit.Before(out[j].LastCommit) })
	return out
}

// Merged returns merged branches, most recently touched first.
func (a *Analysis) Merged() []Branch {
	out := filter(a.Branches, func(b Branch) bool { return b.Merged })
	sort.Slice(out, func(i, j int) bool { return out[i].LastCommit.After(out[j].LastCommit) })
	return out
}

// Unconventional returns branches that match no naming convention.
func (a *Analysis) Unconventional() []Branch {
	return filter(a.Branches, func(b Branch) bool { return b.Convention == "" })
}

// ConventionCounts tallies branches per matched prefix.
func (a *Analysis) ConventionCounts() map[string]int {
	counts := make(map[string]int)
	for _, b := range a.Branches {
		if b.Convention != "" {
			counts[b.Convention]++
		}
	}
	return counts
}

func filter(in []Branch, keep func(Branch) bool) []Branch {
	var out []Branch
	for _, b := range in {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
