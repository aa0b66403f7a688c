package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIContract(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	out := b.String()

	requiredCommands := []string{
		"branches",
		"changelog",
		"churn",
		"commits",
		"completion",
		"deps",
		"help",
		"ownership",
		"run",
		"tasks",
		"version",
	}

	for _, c := range requiredCommands {
		if !strings.Contains(out, c) {
			t.Errorf("expected top-level command %q in root help", c)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(b.String(), "repolens version") {
		t.Errorf("unexpected version output: %q", b.String())
	}
}

func TestRunListCommand(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"run", "list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run list failed: %v", err)
	}

	for _, id := range []string{"changelog", "commits", "tasks", "branches", "churn", "ownership", "deps"} {
		if !strings.Contains(b.String(), id) {
			t.Errorf("expected skill %q in run list output", id)
		}
	}
}
