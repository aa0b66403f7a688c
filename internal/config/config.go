// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads repolens settings from .repolens.yaml with
// REPOLENS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file looked up relative to the repo root.
const DefaultPath = ".repolens.yaml"

// Config holds all tunable analysis settings.
type Config struct {
	// WindowDays bounds the history window for windowed analyzers.
	WindowDays int `yaml:"window_days" env:"REPOLENS_WINDOW_DAYS"`
	// MaxCommits caps how many commits the history analyzers read;
	// 0 means unlimited.
	MaxCommits int `yaml:"max_commits" env:"REPOLENS_MAX_COMMITS"`
	// StaleDays marks branches unchanged this long as stale.
	StaleDays int `yaml:"stale_days" env:"REPOLENS_STALE_DAYS"`
	// Lang selects changelog section names (en, zh).
	Lang string `yaml:"lang" env:"REPOLENS_LANG"`
	// ReportDir receives generated reports.
	ReportDir string `yaml:"report_dir" env:"REPOLENS_REPORT_DIR"`
	// StateDir receives runner state.
	StateDir string `yaml:"state_dir" env:"REPOLENS_STATE_DIR"`
	// ChangelogFile is where the changelog skill writes its document.
	ChangelogFile string `yaml:"changelog_file" env:"REPOLENS_CHANGELOG_FILE"`
	// Excludes are substring patterns filtered from churn and
	// ownership analysis.
	Excludes []string `yaml:"excludes" env:"REPOLENS_EXCLUDES" env-separator:","`
	// BranchPrefixes are the accepted branch naming conventions.
	BranchPrefixes []string `yaml:"branch_prefixes" env:"REPOLENS_BRANCH_PREFIXES" env-separator:","`
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Environment variables override either way.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = DefaultPath
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.WindowDays == 0 {
		c.WindowDays = 90
	}
	if c.StaleDays == 0 {
		c.StaleDays = 90
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.ReportDir == "" {
		c.ReportDir = ".repolens/reports"
	}
	if c.StateDir == "" {
		c.StateDir = ".repolens/run"
	}
	if c.ChangelogFile == "" {
		c.ChangelogFile = "CHANGELOG.md"
	}
}

// Validate rejects settings the analyzers cannot work with.
func (c *Config) Validate() error {
	if c.WindowDays < 0 {
		return errors.New("window_days must not be negative")
	}
	if c.StaleDays < 0 {
		return errors.New("stale_days must not be negative")
	}
	if c.MaxCommits < 0 {
		return errors.New("max_commits must not be negative")
	}
	return nil
}
