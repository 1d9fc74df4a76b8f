// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"github.com/sommerfeld-io/source2adoc/pkg/junitxml"
	"github.com/spf13/cobra"
)

func newCheckCommand(env *Environment, global *globalOptions) *cobra.Command {
	opts := &generateOptions{}
	var xmlOutputFile string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that all code files have header documentation",
		Long: `Check reports every supported code file below the source directory that has no
header documentation. The command fails if at least one file is undocumented.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := opts.runner(cmd, env, global)
			if err != nil {
				return err
			}
			suite, checkErr := runner.Check(cmd.Context())
			if suite != nil && xmlOutputFile != "" {
				report := junitxml.JUnitTestSuites{Suites: []junitxml.JUnitTestSuite{*suite}}
				if err := report.WriteFile(xmlOutputFile); err != nil {
					return err
				}
				env.Logger.Debug("Wrote JUnit report.", "file", xmlOutputFile)
			}
			return checkErr
		},
	}
	opts.registerSource(cmd)
	cmd.Flags().StringVar(&xmlOutputFile, "xml", "", "Write results to the specified output file in JUnitXML format")
	return cmd
}
