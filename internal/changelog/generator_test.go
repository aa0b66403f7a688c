package changelog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/commit"
	"github.com/repolens/repolens/internal/gitx"
	"github.com/repolens/repolens/internal/testutil/golden"
)

// fakeSource serves canned tags and per-range logs.
type fakeSource struct {
	tags  []string // newest first, as git tag --sort=-v:refname returns
	dates map[string]string
	logs  map[string][]string // range spec -> raw log lines, newest first
}

func (f *fakeSource) Tags(ctx context.Context) ([]string, error) {
	return f.tags, nil
}

func (f *fakeSource) TagDate(ctx context.Context, tag string) (string, error) {
	return f.dates[tag], nil
}

func (f *fakeSource) Log(ctx context.Context, opts gitx.LogOptions) ([]commit.Record, error) {
	lines, ok := f.logs[opts.Range]
	if !ok {
		return nil, fmt.Errorf("unexpected range %q", opts.Range)
	}
	var records []commit.Record
	for _, line := range lines {
		rec, ok := commit.ParseLine(line)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func taggedSource() *fakeSource {
	return &fakeSource{
		tags: []string{"v1.1", "v1.0"},
		dates: map[string]string{
			"v1.0": "2024-01-10",
			"v1.1": "2024-02-20",
		},
		logs: map[string][]string{
			"v1.0": {
				"1111111111|Alice|2024-01-05|feat: initial import",
				"0000000000|Alice|2024-01-02|chore: bootstrap repo",
			},
			"v1.0..v1.1": {
				"3333333333|Bob|2024-02-15|fix(auth)!: reject expired tokens",
				"2222222222|Alice|2024-02-01|feat(api): add pagination",
			},
			"v1.1..HEAD": {
				"5555555555|Bob|2024-03-02|docs: expand readme",
				"4444444444|Alice|2024-03-01|feat: warn the user!",
			},
		},
	}
}

func TestGenerator_Document(t *testing.T) {
	gen := NewGenerator(taggedSource(), "en")

	doc, sum, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Versions)
	assert.Equal(t, 2, sum.Unreleased)
	assert.Equal(t, map[commit.Category]int{
		commit.Added:   1,
		commit.Changed: 1,
	}, sum.UnreleasedByCategory)

	golden.Check(t, "changelog", doc)
}

func TestGenerator_EmptyTagIntervalIsDropped(t *testing.T) {
	src := taggedSource()
	// v1.2 points at the same commit as v1.1: nothing in between.
	src.tags = []string{"v1.2", "v1.1", "v1.0"}
	src.dates["v1.2"] = "2024-02-21"
	src.logs["v1.1..v1.2"] = nil
	delete(src.logs, "v1.1..HEAD")
	src.logs["v1.2..HEAD"] = []string{
		"4444444444|Alice|2024-03-01|feat: warn the user!",
	}

	doc, sum, err := NewGenerator(src, "en").Generate(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, doc, "v1.2")
	assert.Equal(t, 3, sum.Versions)
	assert.Equal(t, 1, sum.Unreleased)
}

func TestGenerator_UnreleasedOnlyAfterNewestTag(t *testing.T) {
	doc, _, err := NewGenerator(taggedSource(), "en").Generate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, doc, "## [Unreleased] - Unreleased")
	// Unreleased holds exactly the commits after v1.1.
	assert.Contains(t, doc, "warn the user (44444444)")
	assert.Contains(t, doc, "expand readme (55555555)")
}

func TestGenerator_NoTags(t *testing.T) {
	src := &fakeSource{
		logs: map[string][]string{
			"HEAD": {
				"1111111111|Alice|2024-01-05|feat: first",
				"0000000000|Alice|2024-01-02|start",
			},
		},
	}

	doc, sum, err := NewGenerator(src, "en").Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.Versions)
	assert.Equal(t, 2, sum.Unreleased)
	assert.Contains(t, doc, "## [All Commits] - Unreleased")
	assert.Contains(t, doc, "No version tags were found")
}

func TestGenerator_LocalizedSectionNames(t *testing.T) {
	doc, _, err := NewGenerator(taggedSource(), "zh").Generate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, doc, "### 新增 (Added)")
	assert.Contains(t, doc, "### 修复 (Fixed)")
}

func TestBullet(t *testing.T) {
	c, ok := commit.Classify("abcdef0123456789|Alice|2024-01-01|fix(auth)!: reject expired tokens")
	require.True(t, ok)

	assert.Equal(t,
		"- **BREAKING CHANGE:** **auth**: reject expired tokens (abcdef01)",
		bullet(c))
}

func TestDisplayName_UnknownLangFallsBack(t *testing.T) {
	assert.Equal(t, "Added", displayName("fr", commit.Added))
}
