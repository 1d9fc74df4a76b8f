// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"context"

	"github.com/sommerfeld-io/source2adoc/pkg/shell"
	"github.com/spf13/cobra"
)

func newShellCommand(env *Environment, global *globalOptions) *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long: `Shell reads commands line by line and runs them like command line arguments,
for example "generate -s src -o docs". Type "exit" or "quit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, env, global, prompt)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", shell.DefaultPrompt, "The prompt shown on terminals")
	return cmd
}

// runShell runs every line read from stdin as a command of a new command tree.
func runShell(cmd *cobra.Command, env *Environment, global *globalOptions, prompt string) error {
	out := cmd.OutOrStdout()
	dispatch := func(ctx context.Context, args []string) error {
		nested := newRootCommand(env, global)
		nested.SetArgs(args)
		nested.SetIn(cmd.InOrStdin())
		nested.SetOut(out)
		nested.SetErr(cmd.ErrOrStderr())
		return nested.ExecuteContext(ctx)
	}
	sh := shell.New(cmd.InOrStdin(), out, dispatch, env.Logger)
	sh.SetInteractive(env.Interactive)
	sh.SetPrompt(prompt)
	env.Logger.Debug("Starting shell.", "interactive", env.Interactive)
	return sh.Run(cmd.Context())
}
