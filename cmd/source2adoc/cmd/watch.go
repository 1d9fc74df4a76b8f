// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sommerfeld-io/source2adoc/pkg/watch"
	"github.com/spf13/cobra"
)

func newWatchCommand(env *Environment, global *globalOptions) *cobra.Command {
	opts := &generateOptions{}
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the documentation whenever a code file changes",
		Long: `Watch generates the documentation once and then again after every change to a
supported code file below the source directory. Stop it with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := opts.runner(cmd, env, global)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err := runner.Generate(ctx); err != nil {
				return err
			}

			watcher, err := watch.New(runner.Options().SourceDir, env.Logger)
			if err != nil {
				return err
			}
			watcher.SetDebounce(debounce)
			watcher.SkipDir(runner.Options().OutputDir)

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes, press Ctrl+C to stop\n", runner.Options().SourceDir)
			return watcher.Run(ctx, func(ctx context.Context) error {
				_, err := runner.Generate(ctx)
				return err
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Time to wait for further changes before regenerating")
	return cmd
}
