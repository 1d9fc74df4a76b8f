// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"github.com/sommerfeld-io/source2adoc/pkg/filelock"
	"github.com/spf13/cobra"
)

func newConfigCommand(env *Environment, global *globalOptions) *cobra.Command {
	opts := &generateOptions{}
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Config prints the configuration file merged with the flags given on the command
line. With --write the result is saved to the configuration file, which is a
quick way to create one:

  source2adoc config --write -s src -o docs/modules/ROOT/pages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.merge(cmd, env, global)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			if write {
				if err := filelock.AtomicWrite(global.configFile, data); err != nil {
					return err
				}
				env.Logger.Info("Wrote configuration file.", "file", global.configFile)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	opts.registerSource(cmd)
	opts.registerOutput(cmd)
	cmd.Flags().BoolVar(&write, "write", false, "Save the configuration to the configuration file")
	return cmd
}
