// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/runner"
	"github.com/repolens/repolens/internal/skills"
)

// newRunCmd builds the orchestrator command. Run state lives under the
// configured state directory so failed runs can be resumed.
func newRunCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run <command|skill...>",
		Short: "Orchestrate analysis skills",
		Long: `Run analysis skills in order, collecting failures instead of stopping.
State is kept in the configured state directory to allow resuming.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			// Bare arguments are skill names.
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			r := runner.NewRunner(skills.Registry, store, deps)
			return r.RunList(cmd.Context(), args)
		},
	}

	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "output results in JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"skills": skills.IDs()})
			}
			for _, id := range skills.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Run all skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			r := runner.NewRunner(skills.Registry, store, deps)
			return r.RunAll(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Re-run the skills that failed last time",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, store, err := setup(cmd)
			if err != nil {
				return err
			}
			r := runner.NewRunner(skills.Registry, store, deps)
			return r.Resume(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear run state",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := setup(cmd)
			if err != nil {
				return err
			}
			return store.Reset()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "Show last run status",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := setup(cmd)
			if err != nil {
				return err
			}
			last, err := store.ReadLastRun()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(last)
			}

			if last == nil {
				fmt.Fprintln(out, "No run state found.")
				return nil
			}

			fmt.Fprintf(out, "Status: %s\n", last.Status)
			if len(last.Failed) > 0 {
				fmt.Fprintln(out, "Failed:")
				for _, f := range last.Failed {
					fmt.Fprintf(out, "  - %s\n", f)
				}
			} else {
				fmt.Fprintln(out, "All passed.")
			}
			return nil
		},
	})

	return cmd
}
