// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks treats conventional commits as completed tasks and
// tracks delivery velocity over a time window.
package tasks

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/repolens/repolens/internal/commit"
	"github.com/repolens/repolens/internal/report"
)

// typeLabels maps task types to report labels. Unrecognized prefixes
// land in "other".
var typeLabels = map[string]string{
	"feat":     "Features",
	"fix":      "Bug fixes",
	"refactor": "Refactoring",
	"docs":     "Documentation",
	"test":     "Tests",
	"chore":    "Chores",
	"style":    "Style",
	"perf":     "Performance",
	"ci":       "CI/CD",
	"build":    "Build",
	"revert":   "Reverts",
	"other":    "Other",
}

var typePrefixRe = regexp.MustCompile(`^(\w+)(\([^)]*\))?:`)

// Bucket is a time bucket (week or month) with per-type task counts.
type Bucket struct {
	Key   string
	Total int
}

// Trend describes how recent velocity compares to the period before.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

// Stats is the velocity analysis of a commit window.
type Stats struct {
	Total   int
	ByType  map[string]int
	Weekly  []Bucket // ascending by week key
	Monthly []Bucket // ascending by month key
	Weekday [7]int   // indexed by time.Weekday
	// MonthlyTypes counts tasks per month per type for the trend table.
	MonthlyTypes map[string]map[string]int
}

// TaskType extracts the conventional-commit type from a subject,
// returning "other" for anything unrecognized.
func TaskType(subject string) string {
	m := typePrefixRe.FindStringSubmatch(subject)
	if m == nil {
		return "other"
	}
	if _, ok := typeLabels[m[1]]; !ok {
		return "other"
	}
	return m[1]
}

// Analyze buckets records (newest-first) by type, week and month.
func Analyze(records []commit.Record) *Stats {
	s := &Stats{
		Total:        len(records),
		ByType:       make(map[string]int),
		MonthlyTypes: make(map[string]map[string]int),
	}

	weekly := make(map[string]int)
	monthly := make(map[string]int)

	for _, rec := range records {
		taskType := TaskType(rec.Subject)
		s.ByType[taskType]++

		if rec.Timestamp.IsZero() {
			continue
		}

		year, week := rec.Timestamp.ISOWeek()
		weekly[fmt.Sprintf("%d-W%02d", year, week)]++

		month := rec.Timestamp.Format("2006-01")
		monthly[month]++
		if s.MonthlyTypes[month] == nil {
			s.MonthlyTypes[month] = make(map[string]int)
		}
		s.MonthlyTypes[month][taskType]++

		s.Weekday[rec.Timestamp.Weekday()]++
	}

	s.Weekly = sortBuckets(weekly)
	s.Monthly = sortBuckets(monthly)
	return s
}

func sortBuckets(counts map[string]int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, Bucket{Key: k, Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// WeeklyAverage is the mean number of tasks per observed week.
func (s *Stats) WeeklyAverage() float64 {
	if len(s.Weekly) == 0 {
		return 0
	}
	var sum int
	for _, b := range s.Weekly {
		sum += b.Total
	}
	return float64(sum) / float64(len(s.Weekly))
}

// VelocityTrend compares the last four weeks to the four before,
// with a 10% dead band.
func (s *Stats) VelocityTrend() (Trend, float64, float64) {
	if len(s.Weekly) < 4 {
		return TrendFlat, 0, 0
	}

	recent := bucketAvg(s.Weekly[len(s.Weekly)-4:])
	earlier := recent
	if len(s.Weekly) >= 8 {
		earlier = bucketAvg(s.Weekly[len(s.Weekly)-8 : len(s.Weekly)-4])
	}

	switch {
	case recent > earlier*1.1:
		return TrendUp, recent, earlier
	case recent < earlier*0.9:
		return TrendDown, recent, earlier
	default:
		return TrendFlat, recent, earlier
	}
}

func bucketAvg(buckets []Bucket) float64 {
	var sum int
	for _, b := range buckets {
		sum += b.Total
	}
	return float64(sum) / float64(len(buckets))
}

// BugFeatureRatio is fixes per feature; zero when no features landed.
func (s *Stats) BugFeatureRatio() float64 {
	if s.ByType["feat"] == 0 {
		return 0
	}
	return float64(s.ByType["fix"]) / float64(s.ByType["feat"])
}

// Insights derives the report's observation lines from the stats.
func (s *Stats) Insights() []string {
	var out []string

	feats, fixes := s.ByType["feat"], s.ByType["fix"]
	if feats > 0 && fixes > 0 {
		ratio := s.BugFeatureRatio()
		if ratio > 0.5 {
			out = append(out, fmt.Sprintf("Bug/feature ratio is high (%.2f); code quality needs attention", ratio))
		} else if ratio < 0.2 {
			out = append(out, fmt.Sprintf("Bug/feature ratio is healthy (%.2f)", ratio))
		}
	}

	if s.Total > 0 {
		refactorPct := report.Pct(s.ByType["refactor"], s.Total)
		if refactorPct > 15 {
			out = append(out, fmt.Sprintf("Refactoring is %.1f%% of work; the team is paying down debt", refactorPct))
		} else if refactorPct < 5 {
			out = append(out, fmt.Sprintf("Refactoring is only %.1f%% of work; schedule cleanup before debt piles up", refactorPct))
		}

		testPct := report.Pct(s.ByType["test"], s.Total)
		if testPct > 10 {
			out = append(out, fmt.Sprintf("Test commits are %.1f%% of work; good testing discipline", testPct))
		} else {
			out = append(out, fmt.Sprintf("Test commits are only %.1f%% of work; invest in tests", testPct))
		}
	}

	if avg := s.WeeklyAverage(); len(s.Weekly) >= 4 {
		if avg < 5 {
			out = append(out, fmt.Sprintf("Weekly average is %.1f tasks; check team capacity", avg))
		} else if avg > 20 {
			out = append(out, fmt.Sprintf("Weekly average is %.1f tasks; strong throughput", avg))
		}
	}

	return out
}
