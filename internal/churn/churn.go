// SPDX-License-Identifier: AGPL-3.0-or-later

// Package churn measures how often files change and derives a
// per-file stability score from commit frequency and file size.
package churn

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/repolens/repolens/internal/commit"
)

// DefaultExcludes filters generated and third-party paths out of the
// churn numbers.
var DefaultExcludes = []string{
	"node_modules/", "vendor/", "dist/", "build/", ".git/",
	"package-lock.json", "yarn.lock", "go.sum", ".min.js", ".min.css",
}

// FileChange is one name-status entry of a commit.
type FileChange struct {
	Status string // A, M, D, or Rnnn
	Path   string
}

// CommitFiles is one commit with its touched files.
type CommitFiles struct {
	Hash   string
	Date   time.Time
	Author string
	Files  []FileChange
}

// ParseNameStatusLog parses `git log --name-status --pretty=%H|%ai|%an`
// output. Header lines are pipe-delimited; file lines are
// tab-delimited; malformed lines are dropped.
func ParseNameStatusLog(raw string) []CommitFiles {
	var commits []CommitFiles
	var current *CommitFiles

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		if parts := strings.Split(line, "|"); len(parts) == 3 && !strings.Contains(line, "\t") {
			commits = append(commits, CommitFiles{
				Hash:   parts[0],
				Date:   parseDate(parts[1]),
				Author: parts[2],
			})
			current = &commits[len(commits)-1]
			continue
		}

		if current == nil {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		change := FileChange{Status: fields[0], Path: fields[1]}
		// Renames list old then new; the new path carries the history.
		if strings.HasPrefix(change.Status, "R") && len(fields) >= 3 {
			change.Path = fields[2]
		}
		current.Files = append(current.Files, change)
	}
	return commits
}

func parseDate(s string) time.Time {
	if rec, ok := commit.ParseLine("x|x|" + s + "|x"); ok {
		return rec.Timestamp
	}
	return time.Time{}
}

// FileStats accumulates change counts for one file.
type FileStats struct {
	Path          string
	Commits       int
	Additions     int
	Modifications int
	Deletions     int
	Renames       int
	Authors       map[string]bool
	First, Last   time.Time
	Size          int64
	Stability     int // 0 (volatile) .. 100 (stable)
}

// Options tunes the analysis.
type Options struct {
	Excludes []string
	// SizeOf reports a file's current size in bytes; nil uses the
	// filesystem relative to Root.
	SizeOf func(path string) int64
	Root   string
}

func (o *Options) fill() {
	if len(o.Excludes) == 0 {
		o.Excludes = DefaultExcludes
	}
	if o.SizeOf == nil {
		root := o.Root
		o.SizeOf = func(path string) int64 {
			info, err := os.Stat(filepath.Join(root, path))
			if err != nil {
				return 0
			}
			return info.Size()
		}
	}
}

// Excluded reports whether a path matches any exclusion pattern.
func Excluded(path string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// Analyze computes per-file stats and stability scores over a commit
// window (newest-first).
func Analyze(commits []CommitFiles, opts Options) []FileStats {
	opts.fill()
	if len(commits) == 0 {
		return nil
	}

	stats := make(map[string]*FileStats)
	for _, c := range commits {
		for _, f := range c.Files {
			if Excluded(f.Path, opts.Excludes) {
				continue
			}

			fs, ok := stats[f.Path]
			if !ok {
				fs = &FileStats{Path: f.Path, Authors: make(map[string]bool)}
				stats[f.Path] = fs
			}

			fs.Commits++
			fs.Authors[c.Author] = true
			switch {
			case f.Status == "A":
				fs.Additions++
			case f.Status == "M":
				fs.Modifications++
			case f.Status == "D":
				fs.Deletions++
			case strings.HasPrefix(f.Status, "R"):
				fs.Renames++
			}

			if !c.Date.IsZero() {
				if fs.First.IsZero() || c.Date.Before(fs.First) {
					fs.First = c.Date
				}
				if c.Date.After(fs.Last) {
					fs.Last = c.Date
				}
			}
		}
	}

	days := windowDays(commits)
	total := len(commits)

	out := make([]FileStats, 0, len(stats))
	for _, fs := range stats {
		fs.Size = opts.SizeOf(fs.Path)
		fs.Stability = stability(fs, total, days)
		out = append(out, *fs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Commits != out[j].Commits {
			return out[i].Commits > out[j].Commits
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func windowDays(commits []CommitFiles) int {
	var first, last time.Time
	for _, c := range commits {
		if c.Date.IsZero() {
			continue
		}
		if first.IsZero() || c.Date.Before(first) {
			first = c.Date
		}
		if c.Date.After(last) {
			last = c.Date
		}
	}
	if first.IsZero() {
		return 1
	}
	days := int(last.Sub(first).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// stability scores a file 0..100: frequent commits, high churn rate and
// large size all push the score down.
func stability(fs *FileStats, totalCommits, days int) int {
	base := 100.0
	if totalCommits > 0 {
		base -= float64(fs.Commits) / float64(totalCommits) * 50
	}

	churnRate := float64(fs.Commits) / float64(days)
	penalty := churnRate * 100
	if penalty > 30 {
		penalty = 30
	}

	sizeFactor := float64(fs.Size) / 100000 * 10
	if sizeFactor > 20 {
		sizeFactor = 20
	}

	score := base - penalty - sizeFactor
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}
