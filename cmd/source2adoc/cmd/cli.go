// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import "context"

// CLI runs the command tree as the runtime of the process.
type CLI struct {
	env *Environment
}

// NewCLI creates a CLI for the environment.
func NewCLI(env *Environment) *CLI {
	return &CLI{env: env}
}

// Start executes the command selected by args. Errors are printed by the command tree.
func (c *CLI) Start(ctx context.Context, args []string) error {
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	rootCmd := NewRootCommand(c.env)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(c.env.Stdin)
	rootCmd.SetOut(c.env.Stdout)
	rootCmd.SetErr(c.env.Stderr)
	return rootCmd.ExecuteContext(ctx)
}
