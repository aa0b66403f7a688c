package ownership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/churn"
)

const sampleLog = `Alice
internal/app/server.go
internal/app/routes.go

Bob
internal/app/server.go
vendor/lib/dep.go

Alice
internal/app/server.go
docs/guide.md
`

func TestParseAuthorFileLog(t *testing.T) {
	fa := ParseAuthorFileLog(sampleLog, churn.DefaultExcludes)

	require.Contains(t, fa, "internal/app/server.go")
	assert.Equal(t, map[string]int{"Alice": 2, "Bob": 1}, fa["internal/app/server.go"])
	assert.Equal(t, map[string]int{"Alice": 1}, fa["internal/app/routes.go"])

	// vendor/ paths are excluded.
	assert.NotContains(t, fa, "vendor/lib/dep.go")
}

func TestParseAuthorFileLog_PathsBeforeFirstAuthorDropped(t *testing.T) {
	fa := ParseAuthorFileLog("orphan/path.go\nAlice\nreal/file.go\n", nil)
	assert.NotContains(t, fa, "orphan/path.go")
	assert.Contains(t, fa, "real/file.go")
}

func TestAnalyze(t *testing.T) {
	a := Analyze(ParseAuthorFileLog(sampleLog, churn.DefaultExcludes))

	byPath := make(map[string]File)
	for _, f := range a.Files {
		byPath[f.Path] = f
	}

	server := byPath["internal/app/server.go"]
	assert.Equal(t, "Alice", server.PrimaryOwner)
	assert.Equal(t, 2, server.Contributors)
	assert.Equal(t, 3, server.Commits)
	assert.InDelta(t, 2.0/3.0, server.Concentration, 0.001)
	assert.Equal(t, RiskHigh, server.Risk)

	routes := byPath["internal/app/routes.go"]
	assert.Equal(t, RiskCritical, routes.Risk)
	assert.Equal(t, 1.0, routes.Concentration)

	assert.Equal(t, 3, a.AuthorFiles["Alice"])
	assert.Equal(t, 1, a.AuthorFiles["Bob"])
}

func TestRiskFor(t *testing.T) {
	assert.Equal(t, RiskCritical, riskFor(1))
	assert.Equal(t, RiskHigh, riskFor(2))
	assert.Equal(t, RiskMedium, riskFor(3))
	assert.Equal(t, RiskMedium, riskFor(5))
	assert.Equal(t, RiskLow, riskFor(6))
}

func TestByRiskAndAtRisk(t *testing.T) {
	a := Analyze(ParseAuthorFileLog(sampleLog, churn.DefaultExcludes))

	counts := a.ByRisk()
	assert.Equal(t, 2, counts[RiskCritical]) // routes.go, guide.md
	assert.Equal(t, 1, counts[RiskHigh])

	atRisk := a.AtRisk()
	assert.Len(t, atRisk, 3)
}

func TestRender(t *testing.T) {
	a := Analyze(ParseAuthorFileLog(sampleLog, churn.DefaultExcludes))

	out := Render(a, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, out, "Knowledge Map Report")
	assert.Contains(t, out, "Bus-Factor Risk")
	assert.Contains(t, out, "internal/app/server.go")
	assert.Contains(t, out, "Alice")
}

func TestRender_Empty(t *testing.T) {
	out := Render(Analyze(nil), time.Now())
	assert.Contains(t, out, "No tracked file history found.")
}
