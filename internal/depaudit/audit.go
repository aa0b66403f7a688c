// SPDX-License-Identifier: AGPL-3.0-or-later

// Package depaudit checks package-manager dependencies for outdated
// versions and known vulnerabilities by shelling out to the ecosystem's
// own tooling. A missing tool downgrades that ecosystem to a skip, it
// never fails the audit.
package depaudit

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Runner abstracts tool discovery and execution so audits are testable.
type Runner interface {
	// Available reports whether the named tool is on PATH.
	Available(name string) bool
	// Run executes the tool in dir and returns combined output. Output
	// is returned even when the tool exits non-zero: `npm outdated`
	// exits 1 whenever anything is outdated.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner runs real commands.
type ExecRunner struct{}

func (ExecRunner) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		return string(out), nil
	}
	return "", err
}

// Ecosystem is the audit result for one package manager.
type Ecosystem struct {
	Name        string
	Manifest    string
	ToolMissing bool
	Outdated    int
	Vulns       map[string]int // severity -> count
	Note        string
}

// TotalVulns sums vulnerabilities across severities.
func (e Ecosystem) TotalVulns() int {
	var n int
	for _, c := range e.Vulns {
		n += c
	}
	return n
}

// manifests maps ecosystems to the file that marks them present.
var manifests = []struct {
	name     string
	tool     string
	manifest string
}{
	{"npm", "npm", "package.json"},
	{"pip", "pip", "requirements.txt"},
	{"cargo", "cargo", "Cargo.toml"},
	{"composer", "composer", "composer.json"},
}

// Detect returns the ecosystems whose manifest exists under root.
func Detect(root string) []Ecosystem {
	var out []Ecosystem
	for _, m := range manifests {
		if _, err := os.Stat(filepath.Join(root, m.manifest)); err == nil {
			out = append(out, Ecosystem{Name: m.name, Manifest: m.manifest})
		}
	}
	return out
}

// Audit runs the outdated/vulnerability checks for every detected
// ecosystem under root.
func Audit(ctx context.Context, root string, runner Runner) []Ecosystem {
	ecosystems := Detect(root)
	for i := range ecosystems {
		auditOne(ctx, root, runner, &ecosystems[i])
	}
	return ecosystems
}

func auditOne(ctx context.Context, root string, runner Runner, eco *Ecosystem) {
	tool := eco.Name
	if !runner.Available(tool) {
		eco.ToolMissing = true
		eco.Note = tool + " not found on PATH"
		return
	}

	switch eco.Name {
	case "npm":
		if out, err := runner.Run(ctx, root, "npm", "outdated", "--json"); err == nil {
			eco.Outdated = ParseNpmOutdated(out)
		}
		if out, err := runner.Run(ctx, root, "npm", "audit", "--json"); err == nil {
			eco.Vulns = ParseNpmAudit(out)
		}
	case "pip":
		if out, err := runner.Run(ctx, root, "pip", "list", "--outdated", "--format=json"); err == nil {
			eco.Outdated = ParsePipOutdated(out)
		}
	case "cargo":
		if out, err := runner.Run(ctx, root, "cargo", "audit", "--json"); err == nil {
			eco.Vulns = ParseCargoAudit(out)
		} else {
			eco.Note = "cargo-audit not installed (cargo install cargo-audit)"
		}
	case "composer":
		if out, err := runner.Run(ctx, root, "composer", "outdated", "--format=json"); err == nil {
			eco.Outdated = ParseComposerOutdated(out)
		}
	}
}

// ParseNpmOutdated counts entries in `npm outdated --json` output.
func ParseNpmOutdated(raw string) int {
	var pkgs map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &pkgs); err != nil {
		return 0
	}
	return len(pkgs)
}

// ParseNpmAudit extracts severity counts from `npm audit --json`.
func ParseNpmAudit(raw string) map[string]int {
	var doc struct {
		Metadata struct {
			Vulnerabilities map[string]int `json:"vulnerabilities"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil
	}

	out := make(map[string]int)
	for sev, n := range doc.Metadata.Vulnerabilities {
		if sev == "total" || n == 0 {
			continue
		}
		out[sev] = n
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParsePipOutdated counts entries in `pip list --outdated --format=json`.
func ParsePipOutdated(raw string) int {
	var pkgs []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &pkgs); err != nil {
		return 0
	}
	return len(pkgs)
}

// ParseCargoAudit extracts the vulnerability count from
// `cargo audit --json`.
func ParseCargoAudit(raw string) map[string]int {
	var doc struct {
		Vulnerabilities struct {
			Count int `json:"count"`
		} `json:"vulnerabilities"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil
	}
	if doc.Vulnerabilities.Count == 0 {
		return nil
	}
	return map[string]int{"total": doc.Vulnerabilities.Count}
}

// ParseComposerOutdated counts entries in
// `composer outdated --format=json`.
func ParseComposerOutdated(raw string) int {
	var doc struct {
		Installed []json.RawMessage `json:"installed"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return 0
	}
	return len(doc.Installed)
}

// Severities returns an ecosystem's severities in a stable order.
func (e Ecosystem) Severities() []string {
	out := make([]string, 0, len(e.Vulns))
	for sev := range e.Vulns {
		out = append(out, sev)
	}
	sort.Slice(out, func(i, j int) bool {
		return severityRank(out[i]) < severityRank(out[j])
	})
	return out
}

func severityRank(sev string) int {
	switch strings.ToLower(sev) {
	case "critical":
		return 0
	case "high":
		return 1
	case "moderate", "medium":
		return 2
	case "low":
		return 3
	default:
		return 4
	}
}
