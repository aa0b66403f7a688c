// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commit parses raw git log lines and classifies them by
// conventional-commit type. Classification is total: any well-formed
// line produces a result, malformed lines are reported as skippable.
package commit

import (
	"regexp"
	"strings"
	"time"
)

// Category is the changelog bucket a commit lands in.
type Category string

const (
	Added    Category = "Added"
	Changed  Category = "Changed"
	Fixed    Category = "Fixed"
	Removed  Category = "Removed"
	Security Category = "Security"
)

// Order is the fixed display order for rendered reports.
var Order = []Category{Added, Changed, Fixed, Removed, Security}

// Record is a single commit as read from `git log --format=%H|%an|%ad|%s`.
type Record struct {
	Hash      string
	Author    string
	Timestamp time.Time
	RawDate   string
	Subject   string
}

// ShortHash returns the first 8 characters of the hash.
func (r Record) ShortHash() string {
	if len(r.Hash) < 8 {
		return r.Hash
	}
	return r.Hash[:8]
}

// Classified is a Record with its conventional-commit breakdown applied.
type Classified struct {
	Record

	Category     Category
	RawType      string // "feat", "fix", ... empty when the subject is not conventional
	Scope        string
	Breaking     bool
	CleanSubject string
}

// typeCategories maps conventional-commit types onto changelog categories.
// Unknown types fall back to Changed; the map never changes after init.
var typeCategories = map[string]Category{
	"feat":     Added,
	"fix":      Fixed,
	"perf":     Changed,
	"refactor": Changed,
	"docs":     Changed,
	"style":    Changed,
	"test":     Changed,
	"chore":    Changed,
	"revert":   Fixed,
	"build":    Changed,
	"ci":       Changed,
}

// conventionalRe matches `type(scope)!: subject`. Scope and the breaking
// marker are optional.
var conventionalRe = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?:\s*(.+)$`)

// Segments is the number of pipe-delimited fields in a log line.
const segments = 4

// ParseLine splits a `hash|author|date|subject` line into a Record.
// Lines with fewer than four segments return false and must be skipped
// by the caller; this is never fatal.
func ParseLine(line string) (Record, bool) {
	parts := strings.SplitN(line, "|", segments)
	if len(parts) < segments {
		return Record{}, false
	}

	rec := Record{
		Hash:    parts[0],
		Author:  parts[1],
		RawDate: parts[2],
		Subject: parts[3],
	}
	rec.Timestamp = parseDate(parts[2])
	return rec, true
}

// Classify parses and classifies a raw log line in one step.
func Classify(line string) (Classified, bool) {
	rec, ok := ParseLine(line)
	if !ok {
		return Classified{}, false
	}
	return ClassifyRecord(rec), true
}

// ClassifyRecord decides the change category for an already-parsed Record.
func ClassifyRecord(rec Record) Classified {
	m := conventionalRe.FindStringSubmatch(rec.Subject)
	if m == nil {
		// Non-conventional subjects keep their text verbatim.
		return Classified{
			Record:       rec,
			Category:     Changed,
			CleanSubject: rec.Subject,
		}
	}

	rawType, scope, marker, description := m[1], m[2], m[3], m[4]

	category, ok := typeCategories[rawType]
	if !ok {
		category = Changed
	}

	// Breaking is signalled by the `!` marker before the colon, or by a
	// literal '!' anywhere in the description. The second signal predates
	// the marker and is kept for compatibility with existing changelogs.
	breaking := marker == "!" || strings.Contains(description, "!")

	return Classified{
		Record:       rec,
		Category:     category,
		RawType:      rawType,
		Scope:        scope,
		Breaking:     breaking,
		CleanSubject: strings.TrimSpace(strings.ReplaceAll(description, "!", "")),
	}
}

// ClassifyAll classifies each parseable line, silently dropping
// malformed ones.
func ClassifyAll(lines []string) []Classified {
	out := make([]Classified, 0, len(lines))
	for _, line := range lines {
		if c, ok := Classify(line); ok {
			out = append(out, c)
		}
	}
	return out
}

// dateLayouts covers the formats git emits for --date=short, --date=iso
// and the default format.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05-07:00",
	time.RFC3339,
	"Mon Jan 2 15:04:05 2006 -0700",
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
