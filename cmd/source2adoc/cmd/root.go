// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"github.com/sommerfeld-io/source2adoc/pkg/config"
	"github.com/sommerfeld-io/source2adoc/pkg/shell"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by all commands.
type globalOptions struct {
	verbose    bool
	configFile string
	noColor    bool
}

// NewRootCommand builds the command tree. Invoked without arguments the root command starts
// the interactive shell, with flags it generates the documentation.
func NewRootCommand(env *Environment) *cobra.Command {
	return newRootCommand(env, nil)
}

// newRootCommand builds the command tree. parent is set for commands typed into the shell, they
// inherit the persistent flags of the shell and cannot start another shell.
func newRootCommand(env *Environment, parent *globalOptions) *cobra.Command {
	global := &globalOptions{configFile: config.DefaultFile}
	if parent != nil {
		*global = *parent
	}
	opts := &generateOptions{}

	rootCmd := &cobra.Command{
		Use:   "source2adoc",
		Short: "Generate AsciiDoc documentation from code comments",
		Long: `source2adoc reads the header comments of code files (Bash scripts, YAML files,
Dockerfiles, Vagrantfiles, Makefiles, Ruby files) and writes them as AsciiDoc
pages that mirror the structure of the source tree.

Header comments start with "##". The header ends at the first empty line.

Without any arguments source2adoc starts an interactive shell.`,
		Example: `  source2adoc --source-dir ./src --output-dir ./docs/modules/ROOT/pages
  source2adoc -s . -o docs -x .git -x "**/node_modules"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: parent != nil,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(env, global.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if parent == nil && !opts.anyChanged(cmd) {
				return runShell(cmd, env, global, shell.DefaultPrompt)
			}
			return runGenerate(cmd, env, global, opts)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = parent != nil

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&global.verbose, "verbose", "v", global.verbose, "Enable verbose output")
	flags.StringVarP(&global.configFile, "config", "c", global.configFile, "The configuration file, a missing file is ignored")
	flags.BoolVar(&global.noColor, "no-color", global.noColor, "Disable colored output")

	opts.register(rootCmd)

	rootCmd.AddCommand(
		newGenerateCommand(env, global),
		newWatchCommand(env, global),
		newCheckCommand(env, global),
		newConfigCommand(env, global),
		newLanguagesCommand(),
		newVersionCommand(),
	)
	if parent == nil {
		rootCmd.AddCommand(newShellCommand(env, global))
	}
	return rootCmd
}

func (g *globalOptions) color(env *Environment) bool {
	return env.Color && !g.noColor
}
