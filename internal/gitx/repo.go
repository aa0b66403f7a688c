// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gitx provides access to a local git repository. Repository
// discovery goes through go-git so .git detection matches git's own
// rules; history queries shell out to the git binary because the
// porcelain formats are what the analyzers parse.
package gitx

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// Repo is an opened repository rooted at its worktree.
type Repo struct {
	root string
}

// Open locates the repository containing dir, walking up to the nearest
// .git the way the git binary would.
func Open(dir string) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return nil, fmt.Errorf("%s is not inside a git repository", dir)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}

	return &Repo{root: wt.Filesystem.Root()}, nil
}

// Root returns the absolute worktree root.
func (r *Repo) Root() string { return r.root }

// Client returns a command client bound to this repository.
func (r *Repo) Client() *Client { return NewClient(r.root) }
