// SPDX-License-Identifier: AGPL-3.0-or-later

// Package changelog assembles a Keep a Changelog document from
// classified commit history, one section per version tag plus an
// Unreleased section for commits after the newest tag.
package changelog

import (
	"context"
	"fmt"

	"github.com/repolens/repolens/internal/commit"
	"github.com/repolens/repolens/internal/gitx"
)

// Source supplies tags and commit history. *gitx.Client satisfies it;
// tests feed canned data.
type Source interface {
	Tags(ctx context.Context) ([]string, error)
	TagDate(ctx context.Context, tag string) (string, error)
	Log(ctx context.Context, opts gitx.LogOptions) ([]commit.Record, error)
}

// Generator builds changelog documents.
type Generator struct {
	src  Source
	lang string
}

// NewGenerator creates a Generator rendering category names in the
// given language (see locales.yaml; empty means English).
func NewGenerator(src Source, lang string) *Generator {
	if lang == "" {
		lang = DefaultLang
	}
	return &Generator{src: src, lang: lang}
}

// Summary describes what a generated changelog contains.
type Summary struct {
	Versions   int
	Unreleased int
	// UnreleasedByCategory counts unreleased commits per category.
	UnreleasedByCategory map[commit.Category]int
}

// Generate builds the full changelog document and its summary.
func (g *Generator) Generate(ctx context.Context) (string, Summary, error) {
	tags, err := g.src.Tags(ctx)
	if err != nil {
		return "", Summary{}, fmt.Errorf("listing tags: %w", err)
	}
	// Tags arrive newest-first; process oldest-first so each section's
	// range starts at the previous release.
	tags = reverse(tags)

	if len(tags) == 0 {
		return g.generateUntagged(ctx)
	}

	doc := newDocument(g.lang)

	prev := ""
	for _, tag := range tags {
		commits, err := g.commitsBetween(ctx, prev, tag)
		if err != nil {
			return "", Summary{}, err
		}
		prev = tag

		if len(commits) == 0 {
			// A release with no commits in its interval is dropped, not
			// rendered empty.
			continue
		}

		date, err := g.src.TagDate(ctx, tag)
		if err != nil || date == "" {
			date = unreleasedLabel
		}
		doc.addSection(tag, date, commits)
	}

	unreleased, err := g.commitsBetween(ctx, prev, "")
	if err != nil {
		return "", Summary{}, err
	}
	if len(unreleased) > 0 {
		doc.addSection(unreleasedLabel, unreleasedLabel, unreleased)
	}

	sum := Summary{
		Versions:             len(tags),
		Unreleased:           len(unreleased),
		UnreleasedByCategory: countByCategory(unreleased),
	}
	return doc.render(), sum, nil
}

// generateUntagged renders a single All Commits section when the
// repository has no version tags yet.
func (g *Generator) generateUntagged(ctx context.Context) (string, Summary, error) {
	commits, err := g.commitsBetween(ctx, "", "")
	if err != nil {
		return "", Summary{}, err
	}

	doc := newDocument(g.lang)
	doc.untagged = true
	if len(commits) > 0 {
		doc.addSection("All Commits", unreleasedLabel, commits)
	}

	sum := Summary{
		Unreleased:           len(commits),
		UnreleasedByCategory: countByCategory(commits),
	}
	return doc.render(), sum, nil
}

// commitsBetween classifies the commits in the half-open ancestry
// interval (prev, end]. Empty prev starts at the root; empty end walks
// to HEAD.
func (g *Generator) commitsBetween(ctx context.Context, prev, end string) ([]commit.Classified, error) {
	var rng string
	switch {
	case prev != "" && end != "":
		rng = prev + ".." + end
	case end != "":
		rng = end
	case prev != "":
		rng = prev + "..HEAD"
	default:
		rng = "HEAD"
	}

	records, err := g.src.Log(ctx, gitx.LogOptions{Range: rng})
	if err != nil {
		return nil, fmt.Errorf("reading commits for %s: %w", rng, err)
	}

	classified := make([]commit.Classified, 0, len(records))
	for _, rec := range records {
		classified = append(classified, commit.ClassifyRecord(rec))
	}
	return classified, nil
}

func countByCategory(commits []commit.Classified) map[commit.Category]int {
	counts := make(map[commit.Category]int)
	for _, c := range commits {
		counts[c.Category]++
	}
	return counts
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
