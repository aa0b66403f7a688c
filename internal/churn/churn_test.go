package churn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `abc111|2024-03-10 10:00:00 +0000|Alice
M	internal/app/server.go
A	internal/app/routes.go

abc222|2024-03-05 10:00:00 +0000|Bob
M	internal/app/server.go
M	node_modules/react/index.js
R100	old/name.go	new/name.go

abc333|2024-03-01 10:00:00 +0000|Alice
A	internal/app/server.go
D	legacy/main.go
`

func TestParseNameStatusLog(t *testing.T) {
	commits := ParseNameStatusLog(sampleLog)
	require.Len(t, commits, 3)

	assert.Equal(t, "abc111", commits[0].Hash)
	assert.Equal(t, "Alice", commits[0].Author)
	assert.Equal(t, 10, commits[0].Date.Day())
	require.Len(t, commits[0].Files, 2)
	assert.Equal(t, FileChange{Status: "M", Path: "internal/app/server.go"}, commits[0].Files[0])

	// Renames keep the new path.
	require.Len(t, commits[1].Files, 3)
	assert.Equal(t, "new/name.go", commits[1].Files[2].Path)
	assert.Equal(t, "R100", commits[1].Files[2].Status)
}

func TestParseNameStatusLog_Empty(t *testing.T) {
	assert.Empty(t, ParseNameStatusLog(""))
	assert.Empty(t, ParseNameStatusLog("\n\n"))
}

func TestAnalyze(t *testing.T) {
	commits := ParseNameStatusLog(sampleLog)
	stats := Analyze(commits, Options{SizeOf: func(string) int64 { return 1000 }})

	byPath := make(map[string]FileStats)
	for _, fs := range stats {
		byPath[fs.Path] = fs
	}

	server := byPath["internal/app/server.go"]
	assert.Equal(t, 3, server.Commits)
	assert.Equal(t, 2, server.Modifications)
	assert.Equal(t, 1, server.Additions)
	assert.Len(t, server.Authors, 2)
	assert.Equal(t, 1, server.First.Day())
	assert.Equal(t, 10, server.Last.Day())

	// node_modules is excluded by default.
	_, ok := byPath["node_modules/react/index.js"]
	assert.False(t, ok)

	assert.Equal(t, 1, byPath["new/name.go"].Renames)
	assert.Equal(t, 1, byPath["legacy/main.go"].Deletions)

	// Sorted by commit count, most churned first.
	assert.Equal(t, "internal/app/server.go", stats[0].Path)
}

func TestAnalyze_Empty(t *testing.T) {
	assert.Nil(t, Analyze(nil, Options{}))
}

func TestExcluded(t *testing.T) {
	assert.True(t, Excluded("vendor/pkg/a.go", DefaultExcludes))
	assert.True(t, Excluded("web/app.min.js", DefaultExcludes))
	assert.False(t, Excluded("internal/app/server.go", DefaultExcludes))
}

func TestStability(t *testing.T) {
	// A file in every commit of a short window with a big size floors out.
	volatile := &FileStats{Commits: 10, Size: 500000}
	assert.Equal(t, 0, stability(volatile, 10, 2))

	// A rarely-touched small file stays high.
	calm := &FileStats{Commits: 1, Size: 1000}
	score := stability(calm, 100, 90)
	assert.Greater(t, score, 90)

	// Scores are clamped to 0..100.
	for _, fs := range []*FileStats{volatile, calm, {Commits: 5, Size: 10_000_000}} {
		s := stability(fs, 10, 30)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
	}
}

func TestRender(t *testing.T) {
	commits := ParseNameStatusLog(sampleLog)
	stats := Analyze(commits, Options{SizeOf: func(string) int64 { return 100 }})

	out := Render(stats, 90, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, out, "Code Churn Report")
	assert.Contains(t, out, "Hotspots")
	assert.Contains(t, out, "internal/app/server.go")
}

func TestRender_Empty(t *testing.T) {
	out := Render(nil, 90, time.Now())
	assert.Contains(t, out, "No file changes found in the window.")
}
