// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/repolens/repolens/cmd/repolens/internal/clierr"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/gitx"
	"github.com/repolens/repolens/internal/runner"
	"github.com/repolens/repolens/internal/skills"
)

// setup resolves the repository, loads config and builds the skill
// dependencies shared by every command.
func setup(cmd *cobra.Command) (*runner.Deps, *runner.StateStore, error) {
	dir, _ := cmd.Flags().GetString("repo")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, err
		}
		dir = wd
	}

	repo, err := gitx.Open(dir)
	if err != nil {
		return nil, nil, clierr.Wrap(1, fmt.Sprintf("opening repository at %s", dir), err)
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = filepath.Join(repo.Root(), config.DefaultPath)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := newLogger(verbose)
	if err != nil {
		return nil, nil, err
	}

	deps := &runner.Deps{
		RepoRoot: repo.Root(),
		Git:      repo.Client(),
		Config:   cfg,
		Log:      log.Sugar(),
	}

	stateDir := cfg.StateDir
	if !filepath.IsAbs(stateDir) {
		stateDir = filepath.Join(repo.Root(), stateDir)
	}
	return deps, runner.NewStateStore(stateDir), nil
}

// newLogger builds a console logger. Verbose mode lifts the level to
// debug.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// executeSkill runs one skill through the runner so its result lands in
// the state store, then reports the outcome on stdout.
func executeSkill(cmd *cobra.Command, deps *runner.Deps, store *runner.StateStore, id string) error {
	r := runner.NewRunner(skills.Registry, store, deps)

	runErr := r.RunList(cmd.Context(), []string{id})

	res, err := store.ReadSkill(id)
	if err == nil && res != nil {
		switch res.Status {
		case runner.StatusFail:
			return clierr.New(res.ExitCode, res.Note)
		case runner.StatusSkip:
			fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", res.Note)
			return nil
		default:
			if res.ReportPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", res.ReportPath)
			}
			return nil
		}
	}
	return runErr
}
