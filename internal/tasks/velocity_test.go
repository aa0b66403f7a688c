package tasks

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/commit"
)

func rec(hash, date, subject string) commit.Record {
	r, ok := commit.ParseLine(hash + "|Dev|" + date + "|" + subject)
	if !ok {
		panic("bad test line")
	}
	return r
}

func TestTaskType(t *testing.T) {
	cases := map[string]string{
		"feat: thing":           "feat",
		"feat(api): thing":      "feat",
		"fix: thing":            "fix",
		"weird: thing":          "other",
		"no prefix":             "other",
		"refactor(core): split": "refactor",
	}
	for subject, want := range cases {
		assert.Equal(t, want, TaskType(subject), subject)
	}
}

func TestAnalyze_TypeCounts(t *testing.T) {
	s := Analyze([]commit.Record{
		rec("a3", "2024-03-03 10:00:00 +0000", "fix: three"),
		rec("a2", "2024-03-02 10:00:00 +0000", "feat: two"),
		rec("a1", "2024-03-01 10:00:00 +0000", "feat: one"),
		rec("a0", "2024-02-28 10:00:00 +0000", "tweak things"),
	})

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.ByType["feat"])
	assert.Equal(t, 1, s.ByType["fix"])
	assert.Equal(t, 1, s.ByType["other"])
	assert.InDelta(t, 0.5, s.BugFeatureRatio(), 0.001)
}

func TestAnalyze_Buckets(t *testing.T) {
	s := Analyze([]commit.Record{
		rec("a2", "2024-03-08 10:00:00 +0000", "feat: second week"),
		rec("a1", "2024-03-01 10:00:00 +0000", "feat: first week"),
	})

	require.Len(t, s.Weekly, 2)
	assert.Equal(t, "2024-W09", s.Weekly[0].Key)
	assert.Equal(t, "2024-W10", s.Weekly[1].Key)
	require.Len(t, s.Monthly, 1)
	assert.Equal(t, 2, s.Monthly[0].Total)
	assert.Equal(t, map[string]int{"feat": 2}, s.MonthlyTypes["2024-03"])
}

// weeklySeries builds one commit-per-task history with the given number
// of tasks in each consecutive ISO week.
func weeklySeries(t *testing.T, perWeek []int) []commit.Record {
	t.Helper()
	var out []commit.Record
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) // a Monday
	for week, n := range perWeek {
		day := start.AddDate(0, 0, week*7)
		for i := 0; i < n; i++ {
			out = append(out, rec(
				fmt.Sprintf("w%dc%d", week, i),
				day.Format("2006-01-02 15:04:05 -0700"),
				"feat: work",
			))
		}
	}
	return out
}

func TestVelocityTrend_Up(t *testing.T) {
	s := Analyze(weeklySeries(t, []int{2, 2, 2, 2, 5, 5, 5, 5}))

	trend, recent, earlier := s.VelocityTrend()
	assert.Equal(t, TrendUp, trend)
	assert.InDelta(t, 5.0, recent, 0.001)
	assert.InDelta(t, 2.0, earlier, 0.001)
}

func TestVelocityTrend_Down(t *testing.T) {
	s := Analyze(weeklySeries(t, []int{5, 5, 5, 5, 2, 2, 2, 2}))

	trend, _, _ := s.VelocityTrend()
	assert.Equal(t, TrendDown, trend)
}

func TestVelocityTrend_FlatWithinBand(t *testing.T) {
	s := Analyze(weeklySeries(t, []int{5, 5, 5, 5, 5, 5, 5, 5}))

	trend, _, _ := s.VelocityTrend()
	assert.Equal(t, TrendFlat, trend)
}

func TestVelocityTrend_TooFewWeeks(t *testing.T) {
	s := Analyze(weeklySeries(t, []int{3, 3}))

	trend, recent, earlier := s.VelocityTrend()
	assert.Equal(t, TrendFlat, trend)
	assert.Zero(t, recent)
	assert.Zero(t, earlier)
}

func TestWeeklyAverage(t *testing.T) {
	s := Analyze(weeklySeries(t, []int{2, 4}))
	assert.InDelta(t, 3.0, s.WeeklyAverage(), 0.001)

	assert.Zero(t, Analyze(nil).WeeklyAverage())
}

func TestInsights(t *testing.T) {
	var records []commit.Record
	for i := 0; i < 10; i++ {
		records = append(records, rec(fmt.Sprintf("f%d", i), "2024-03-01 10:00:00 +0000", "feat: x"))
	}
	for i := 0; i < 8; i++ {
		records = append(records, rec(fmt.Sprintf("b%d", i), "2024-03-02 10:00:00 +0000", "fix: y"))
	}

	insights := Analyze(records).Insights()
	require.NotEmpty(t, insights)

	assert.Contains(t, insights[0], "Bug/feature ratio is high")
	// No test commits at all triggers the testing nudge.
	found := false
	for _, line := range insights {
		if strings.Contains(line, "invest in tests") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRender(t *testing.T) {
	s := Analyze(weeklySeries(t, []int{2, 3, 4}))
	out := Render(s, 90, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, out, "Task Completion Report")
	assert.Contains(t, out, "Total tasks: 9")
	assert.Contains(t, out, "Velocity")
	assert.Contains(t, out, "Features")
}

func TestRender_Empty(t *testing.T) {
	out := Render(Analyze(nil), 90, time.Now())
	assert.Contains(t, out, "No commits found in the window.")
}
