// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"github.com/sommerfeld-io/source2adoc/pkg/codefile"
	"github.com/sommerfeld-io/source2adoc/pkg/config"
	"github.com/sommerfeld-io/source2adoc/pkg/generate"
	"github.com/spf13/cobra"
)

// generateOptions hold the flags of the commands that convert a source tree.
type generateOptions struct {
	sourceDir     string
	outputDir     string
	excludes      []string
	commentFormat string
	concurrency   int
	nav           string
	noLock        bool
	dryRun        bool
}

var generateFlags = []string{"source-dir", "output-dir", "exclude", "comment-format", "concurrency", "nav", "no-lock", "dry-run"}

func (o *generateOptions) register(cmd *cobra.Command) {
	o.registerSource(cmd)
	o.registerOutput(cmd)
	cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "List the files that would be written without writing them")
}

// registerOutput registers the flags controlling where and how documentation is written.
func (o *generateOptions) registerOutput(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.outputDir, "output-dir", "o", "", "Directory to write the generated AsciiDoc files to")
	flags.IntVar(&o.concurrency, "concurrency", 0, "Number of files converted in parallel (default: number of CPUs)")
	flags.StringVar(&o.nav, "nav", "", "Write an Antora navigation file with this name to the output directory")
	flags.BoolVar(&o.noLock, "no-lock", false, "Do not lock the output directory")
}

// registerSource registers the flags needed to find and parse code files.
func (o *generateOptions) registerSource(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.sourceDir, "source-dir", "s", "", "Directory containing the code files")
	flags.StringSliceVarP(&o.excludes, "exclude", "x", []string{}, "Paths or glob patterns to exclude, may be repeated")
	flags.StringVar(&o.commentFormat, "comment-format", string(codefile.FormatPlain), "Markup of the header comments (plain, markdown)")
}

func (o *generateOptions) anyChanged(cmd *cobra.Command) bool {
	for _, name := range generateFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// merge applies the flags given on the command line to the configuration file.
func (o *generateOptions) merge(cmd *cobra.Command, env *Environment, global *globalOptions) (*config.Config, error) {
	cfg, err := env.LoadConfig(global.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("source-dir") {
		cfg.SourceDir = o.sourceDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	if flags.Changed("exclude") {
		cfg.Exclude = o.excludes
	}
	if flags.Changed("comment-format") {
		cfg.CommentFormat = o.commentFormat
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	if flags.Changed("nav") {
		cfg.Nav = o.nav
	}
	if flags.Changed("no-lock") {
		cfg.Lock = !o.noLock
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve turns the merged configuration into the options of a run.
func (o *generateOptions) resolve(cmd *cobra.Command, env *Environment, global *globalOptions) (generate.Options, error) {
	cfg, err := o.merge(cmd, env, global)
	if err != nil {
		return generate.Options{}, err
	}
	format, err := codefile.ParseCommentFormat(cfg.CommentFormat)
	if err != nil {
		return generate.Options{}, err
	}
	env.Logger.Debug("Resolved options.", "config", global.configFile, "source", cfg.SourceDir, "output", cfg.OutputDir)

	return generate.Options{
		SourceDir:     cfg.SourceDir,
		OutputDir:     cfg.OutputDir,
		Excludes:      cfg.Exclude,
		CommentFormat: format,
		Concurrency:   cfg.Concurrency,
		Nav:           cfg.Nav,
		Lock:          cfg.Lock,
		DryRun:        o.dryRun,
	}, nil
}

func (o *generateOptions) runner(cmd *cobra.Command, env *Environment, global *globalOptions) (*generate.Runner, error) {
	opts, err := o.resolve(cmd, env, global)
	if err != nil {
		return nil, err
	}
	runner := generate.NewRunner(opts, cmd.OutOrStdout(), env.Logger)
	runner.SetColor(global.color(env))
	return runner, nil
}

func runGenerate(cmd *cobra.Command, env *Environment, global *globalOptions, opts *generateOptions) error {
	runner, err := opts.runner(cmd, env, global)
	if err != nil {
		return err
	}
	results, err := runner.Generate(cmd.Context())
	if err != nil {
		return err
	}
	env.Logger.Info("Generated documentation.", "files", len(results), "output", runner.Options().OutputDir)
	return nil
}

func newGenerateCommand(env *Environment, global *globalOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate AsciiDoc files from the header comments of code files",
		Long: `Generate scans the source directory for supported code files and writes one
AsciiDoc file per code file to the output directory. The directory structure
of the code files is mirrored. Existing files are overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, env, global, opts)
		},
	}
	opts.register(cmd)
	return cmd
}
