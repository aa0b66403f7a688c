// SPDX-License-Identifier: AGPL-3.0-or-later

package changelog

import (
	"fmt"
	"strings"

	"github.com/repolens/repolens/internal/commit"
)

const unreleasedLabel = "Unreleased"

// document accumulates rendered version sections in order.
type document struct {
	lang     string
	untagged bool
	sections []string
}

func newDocument(lang string) *document {
	return &document{lang: lang}
}

// addSection renders one `## [version] - date` block. Commits keep
// their incoming order (newest-first) inside each category; empty
// categories are skipped.
func (d *document) addSection(version, date string, commits []commit.Classified) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## [%s] - %s\n\n", version, date)

	grouped := make(map[commit.Category][]commit.Classified)
	for _, c := range commits {
		grouped[c.Category] = append(grouped[c.Category], c)
	}

	for _, cat := range commit.Order {
		group := grouped[cat]
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "### %s (%s)\n\n", displayName(d.lang, cat), cat)
		for _, c := range group {
			sb.WriteString(bullet(c))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}

	d.sections = append(d.sections, strings.TrimRight(sb.String(), "\n"))
}

// bullet renders a single commit line:
// `- **BREAKING CHANGE:** **scope**: subject (hash)`.
func bullet(c commit.Classified) string {
	var sb strings.Builder
	sb.WriteString("- ")
	if c.Breaking {
		sb.WriteString("**BREAKING CHANGE:** ")
	}
	if c.Scope != "" {
		fmt.Fprintf(&sb, "**%s**: ", c.Scope)
	}
	sb.WriteString(c.CleanSubject)
	fmt.Fprintf(&sb, " (%s)", c.ShortHash())
	return sb.String()
}

// render assembles the final Markdown document.
func (d *document) render() string {
	var sb strings.Builder
	sb.WriteString("# Changelog\n\n")
	sb.WriteString("All notable changes to this project will be documented in this file.\n\n")

	if d.untagged {
		sb.WriteString("No version tags were found; tag releases (e.g. v1.0.0) to get per-version sections.\n\n")
	} else {
		sb.WriteString("The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/),\n")
		sb.WriteString("and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).\n\n")
	}

	sb.WriteString("---\n")
	for _, section := range d.sections {
		sb.WriteByte('\n')
		sb.WriteString(section)
		sb.WriteByte('\n')
	}
	return sb.String()
}
