// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history computes commit-history statistics: contributor
// ranking, activity heatmaps and commit-message quality.
package history

import (
	"regexp"
	"sort"
	"time"

	"github.com/repolens/repolens/internal/commit"
	"github.com/repolens/repolens/internal/report"
)

// Contributor is one row of the contributor ranking.
type Contributor struct {
	Name    string
	Commits int
	Pct     float64
}

// Activity holds the commit-time heatmaps. Commits without a parseable
// timestamp are counted in totals but not here.
type Activity struct {
	Hourly  [24]int
	Weekday [7]int // indexed by time.Weekday
	Monthly map[string]int
}

// Quality summarizes conventional-commit compliance.
type Quality struct {
	Conventional   int
	Total          int
	ComplianceRate float64
	// TypeCounts counts only recognized conventional types.
	TypeCounts map[string]int
}

// Stats is the full analysis of a commit history.
type Stats struct {
	Total         int
	Contributors  []Contributor
	Activity      Activity
	Quality       Quality
	AvgMessageLen float64
	CommitsPerDay float64
	First, Last   time.Time
}

// conventionalTypes are the message prefixes that count toward
// compliance. The quality check is looser than the classifier grammar
// on purpose: `type :` with stray whitespace still signals intent.
var conventionalTypes = map[string]bool{
	"feat": true, "fix": true, "docs": true, "style": true,
	"refactor": true, "test": true, "chore": true, "perf": true,
	"ci": true, "build": true, "revert": true,
}

var typePrefixRe = regexp.MustCompile(`^(\w+)(\(.+\))?\s*:`)

// Analyze computes statistics over records ordered newest-first, the
// order git log emits.
func Analyze(records []commit.Record) *Stats {
	s := &Stats{
		Total: len(records),
		Activity: Activity{
			Monthly: make(map[string]int),
		},
		Quality: Quality{
			Total:      len(records),
			TypeCounts: make(map[string]int),
		},
	}
	if len(records) == 0 {
		return s
	}

	counts := make(map[string]int)
	var msgLen int

	for _, rec := range records {
		counts[rec.Author]++
		msgLen += len(rec.Subject)

		if m := typePrefixRe.FindStringSubmatch(rec.Subject); m != nil && conventionalTypes[m[1]] {
			s.Quality.Conventional++
			s.Quality.TypeCounts[m[1]]++
		}

		if rec.Timestamp.IsZero() {
			continue
		}
		s.Activity.Hourly[rec.Timestamp.Hour()]++
		s.Activity.Weekday[rec.Timestamp.Weekday()]++
		s.Activity.Monthly[rec.Timestamp.Format("2006-01")]++

		if s.First.IsZero() || rec.Timestamp.Before(s.First) {
			s.First = rec.Timestamp
		}
		if rec.Timestamp.After(s.Last) {
			s.Last = rec.Timestamp
		}
	}

	s.Contributors = rankContributors(counts, s.Total)
	s.AvgMessageLen = float64(msgLen) / float64(s.Total)
	s.Quality.ComplianceRate = report.Pct(s.Quality.Conventional, s.Total)

	if !s.First.IsZero() {
		days := int(s.Last.Sub(s.First).Hours()/24) + 1
		if days > 0 {
			s.CommitsPerDay = float64(s.Total) / float64(days)
		}
	}
	return s
}

func rankContributors(counts map[string]int, total int) []Contributor {
	out := make([]Contributor, 0, len(counts))
	for name, n := range counts {
		out = append(out, Contributor{
			Name:    name,
			Commits: n,
			Pct:     report.Pct(n, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Commits != out[j].Commits {
			return out[i].Commits > out[j].Commits
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Workdays returns commits made Monday through Friday.
func (a Activity) Workdays() int {
	var n int
	for d := time.Monday; d <= time.Friday; d++ {
		n += a.Weekday[d]
	}
	return n
}

// Weekends returns commits made Saturday or Sunday.
func (a Activity) Weekends() int {
	return a.Weekday[time.Saturday] + a.Weekday[time.Sunday]
}

// PeakHour returns the busiest hour and its commit count.
func (a Activity) PeakHour() (int, int) {
	hour, max := 0, 0
	for h, n := range a.Hourly {
		if n > max {
			hour, max = h, n
		}
	}
	return hour, max
}

// PeakWeekday returns the busiest weekday and its commit count.
func (a Activity) PeakWeekday() (time.Weekday, int) {
	day, max := time.Sunday, 0
	for d, n := range a.Weekday {
		if n > max {
			day, max = time.Weekday(d), n
		}
	}
	return day, max
}

// RecentMonths returns the last n "YYYY-MM" keys in ascending order.
func (a Activity) RecentMonths(n int) []string {
	keys := make([]string, 0, len(a.Monthly))
	for k := range a.Monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[len(keys)-n:]
	}
	return keys
}
