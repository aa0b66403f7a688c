// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ownership maps who knows which files and flags bus-factor
// risk where knowledge is concentrated in too few people.
package ownership

import (
	"sort"
	"strings"

	"github.com/repolens/repolens/internal/churn"
)

// Risk is the knowledge-loss severity for a file.
type Risk string

const (
	RiskCritical Risk = "Critical" // single contributor
	RiskHigh     Risk = "High"     // two contributors
	RiskMedium   Risk = "Medium"   // up to five
	RiskLow      Risk = "Low"
)

// File is the ownership analysis of one path.
type File struct {
	Path          string
	PrimaryOwner  string
	Contributors  int
	Commits       int
	Concentration float64 // share of commits by the primary owner
	Risk          Risk
}

// Analysis is the repository-wide ownership picture.
type Analysis struct {
	Files []File
	// AuthorFiles counts distinct files each author has touched.
	AuthorFiles map[string]int
}

// ParseAuthorFileLog consumes `git log --pretty=%an --name-only -m`
// output: an author line followed by the file paths that commit
// touched. A line containing a path separator is treated as a path,
// anything else as the next author.
func ParseAuthorFileLog(raw string, excludes []string) map[string]map[string]int {
	fileAuthors := make(map[string]map[string]int)

	author := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.Contains(line, "/") {
			author = line
			continue
		}
		if author == "" || churn.Excluded(line, excludes) {
			continue
		}
		if fileAuthors[line] == nil {
			fileAuthors[line] = make(map[string]int)
		}
		fileAuthors[line][author]++
	}
	return fileAuthors
}

// Analyze computes ownership and risk per file.
func Analyze(fileAuthors map[string]map[string]int) *Analysis {
	a := &Analysis{AuthorFiles: make(map[string]int)}

	for path, authors := range fileAuthors {
		total := 0
		owner, ownerCommits := "", 0
		for name, n := range authors {
			total += n
			a.AuthorFiles[name]++
			if n > ownerCommits || (n == ownerCommits && name < owner) {
				owner, ownerCommits = name, n
			}
		}

		f := File{
			Path:         path,
			PrimaryOwner: owner,
			Contributors: len(authors),
			Commits:      total,
			Risk:         riskFor(len(authors)),
		}
		if total > 0 {
			f.Concentration = float64(ownerCommits) / float64(total)
		}
		a.Files = append(a.Files, f)
	}

	sort.Slice(a.Files, func(i, j int) bool {
		if a.Files[i].Contributors != a.Files[j].Contributors {
			return a.Files[i].Contributors < a.Files[j].Contributors
		}
		return a.Files[i].Path < a.Files[j].Path
	})
	return a
}

func riskFor(contributors int) Risk {
	switch {
	case contributors <= 1:
		return RiskCritical
	case contributors == 2:
		return RiskHigh
	case contributors <= 5:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ByRisk counts files per risk level.
func (a *Analysis) ByRisk() map[Risk]int {
	counts := make(map[Risk]int)
	for _, f := range a.Files {
		counts[f.Risk]++
	}
	return counts
}

// AtRisk returns files at Critical or High risk.
func (a *Analysis) AtRisk() []File {
	var out []File
	for _, f := range a.Files {
		if f.Risk == RiskCritical || f.Risk == RiskHigh {
			out = append(out, f)
		}
	}
	return out
}
