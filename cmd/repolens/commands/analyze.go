// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/spf13/cobra"
)

func newChangelogCmd() *cobra.Command {
	var lang, output string

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Generate a Keep a Changelog document from tagged history",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			if lang != "" {
				deps.Config.Lang = lang
			}
			if output != "" {
				deps.Config.ChangelogFile = output
			}
			return executeSkill(cmd, deps, store, "changelog")
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "section name language (en, zh)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "changelog file to write (default from config)")
	return cmd
}

func newCommitsCmd() *cobra.Command {
	var days, limit int

	cmd := &cobra.Command{
		Use:   "commits",
		Short: "Analyze commit history: contributors, activity, message quality",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			if days > 0 {
				deps.Config.WindowDays = days
			}
			if limit > 0 {
				deps.Config.MaxCommits = limit
			}
			return executeSkill(cmd, deps, store, "commits")
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "analysis window in days (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "cap the number of commits read (0 = unlimited)")
	return cmd
}

func newTasksCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Track task completion velocity from commit types",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			if days > 0 {
				deps.Config.WindowDays = days
			}
			return executeSkill(cmd, deps, store, "tasks")
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "analysis window in days (default from config)")
	return cmd
}

func newBranchesCmd() *cobra.Command {
	var staleDays int

	cmd := &cobra.Command{
		Use:   "branches",
		Short: "Check branch hygiene: stale, merged and unconventional branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			if staleDays > 0 {
				deps.Config.StaleDays = staleDays
			}
			return executeSkill(cmd, deps, store, "branches")
		},
	}

	cmd.Flags().IntVar(&staleDays, "stale-days", 0, "days without commits before a branch is stale (default from config)")
	return cmd
}

func newChurnCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "churn",
		Short: "Find file-level change hotspots and stability risks",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			if days > 0 {
				deps.Config.WindowDays = days
			}
			return executeSkill(cmd, deps, store, "churn")
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "analysis window in days (default from config)")
	return cmd
}

func newOwnershipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ownership",
		Short: "Map file ownership and bus-factor risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			return executeSkill(cmd, deps, store, "ownership")
		},
	}
}

func newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Audit dependency freshness and known vulnerabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			return executeSkill(cmd, deps, store, "deps")
		},
	}
}
