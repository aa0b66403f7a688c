// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands wires the repolens CLI: repository analysis skills
// exposed as subcommands, plus a run orchestrator with resumable state.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the repolens root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("REPOLENS_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "repolens",
		Short:         "repolens - Repository insight tooling",
		Long:          "repolens analyzes a git repository: changelog generation, commit and task statistics, branch hygiene, file churn, code ownership and dependency health.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().String("config", "", "path to config file (default .repolens.yaml in the repo root)")
	cmd.PersistentFlags().StringP("repo", "C", "", "repository to analyze (default current directory)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of repolens",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "repolens version %s\n", version)
		},
	})

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newChangelogCmd())
	cmd.AddCommand(newCommitsCmd())
	cmd.AddCommand(newTasksCmd())
	cmd.AddCommand(newBranchesCmd())
	cmd.AddCommand(newChurnCmd())
	cmd.AddCommand(newOwnershipCmd())
	cmd.AddCommand(newDepsCmd())

	return cmd
}
