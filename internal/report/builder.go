// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report holds the plain-text building blocks shared by every
// analyzer report: heavy rules, section headers and percentage bars.
package report

import (
	"fmt"
	"strings"
	"time"
)

// RuleWidth is the width of section rules in rendered reports.
const RuleWidth = 100

// Builder assembles a plain-text report line by line.
type Builder struct {
	sb strings.Builder
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Line appends a single line.
func (b *Builder) Line(s string) {
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

// Linef appends a formatted line.
func (b *Builder) Linef(format string, args ...any) {
	b.Line(fmt.Sprintf(format, args...))
}

// Blank appends an empty line.
func (b *Builder) Blank() {
	b.sb.WriteByte('\n')
}

// Rule appends a heavy horizontal rule.
func (b *Builder) Rule() {
	b.Line(strings.Repeat("=", RuleWidth))
}

// Section appends a rule-framed section header.
func (b *Builder) Section(title string) {
	b.Rule()
	b.Line(title)
	b.Rule()
}

// Title appends the standard report head: rule, title, generated-at
// timestamp, rule.
func (b *Builder) Title(title string, now time.Time) {
	b.Rule()
	b.Line(title)
	b.Linef("Generated: %s", now.Format("2006-01-02 15:04:05"))
	b.Rule()
}

// String returns the assembled report.
func (b *Builder) String() string {
	return b.sb.String()
}

// Bar renders a proportional block bar of at most width characters.
func Bar(value, max, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := value * width / max
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

// PercentBar renders a bar scaled so 100% fills half the given width,
// matching the ranking tables in the reports.
func PercentBar(pct float64, width int) string {
	n := int(pct / 100 * float64(width))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

// Pct is a safe percentage: zero when the denominator is zero.
func Pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
