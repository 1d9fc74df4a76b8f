// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

// Package generate converts the code files of a source tree into AsciiDoc documentation.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/sommerfeld-io/source2adoc/pkg/codefile"
	"github.com/sommerfeld-io/source2adoc/pkg/filelock"
	"github.com/sommerfeld-io/source2adoc/pkg/finder"
	"golang.org/x/sync/errgroup"
)

// Options configure a Runner.
type Options struct {
	SourceDir     string
	OutputDir     string
	Excludes      []string
	CommentFormat codefile.CommentFormat
	// Concurrency limits the files converted in parallel, 0 means one per CPU.
	Concurrency int
	// Nav is the name of an Antora navigation file below OutputDir, empty for none.
	Nav string
	// Lock prevents concurrent runs on the same output directory.
	Lock bool
	// DryRun lists the files that would be written without writing them.
	DryRun bool
}

// Validate reports missing or inconsistent options.
func (o Options) Validate() error {
	var missing []string
	if o.SourceDir == "" {
		missing = append(missing, "source-dir")
	}
	if o.OutputDir == "" {
		missing = append(missing, "output-dir")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required option(s) %q not set", strings.Join(missing, `", "`))
	}
	if o.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", o.Concurrency)
	}
	return nil
}

// Result describes one converted code file.
type Result struct {
	CodeFile string
	AdocFile string
}

// Runner runs the conversion and prints a line per converted file to its output.
type Runner struct {
	opts   Options
	out    io.Writer
	logger *log.Logger

	source *color.Color
	arrow  *color.Color
	target *color.Color
	pass   *color.Color
	fail   *color.Color
}

// NewRunner creates a Runner. Colors are disabled until SetColor is called.
func NewRunner(opts Options, out io.Writer, logger *log.Logger) *Runner {
	if opts.CommentFormat == "" {
		opts.CommentFormat = codefile.FormatPlain
	}
	r := &Runner{
		opts:   opts,
		out:    out,
		logger: logger,
		source: color.New(color.FgCyan),
		arrow:  color.New(color.Faint),
		target: color.New(color.FgGreen),
		pass:   color.New(color.FgGreen, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
	}
	r.SetColor(false)
	return r
}

// SetColor switches colored output on or off.
func (r *Runner) SetColor(enabled bool) {
	for _, c := range []*color.Color{r.source, r.arrow, r.target, r.pass, r.fail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Options returns the options of the Runner.
func (r *Runner) Options() Options {
	return r.opts
}

func (r *Runner) findCodeFiles() ([]*codefile.CodeFile, error) {
	f := finder.NewFinder(r.opts.SourceDir)
	if err := f.SetExcludes(r.opts.Excludes); err != nil {
		return nil, err
	}
	if r.opts.OutputDir != "" {
		f.SkipDir(r.opts.OutputDir)
	}
	files, err := f.FindSourceCodeFiles()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Scanned source directory.", "dir", r.opts.SourceDir, "files", len(files))
	if len(files) == 0 {
		r.logger.Warn("No supported code files found.", "dir", r.opts.SourceDir)
	}
	return files, nil
}

func (r *Runner) concurrency() int {
	if r.opts.Concurrency > 0 {
		return r.opts.Concurrency
	}
	return runtime.NumCPU()
}

// Generate converts all code files below the source directory. The results are ordered like
// the code files. The first failing file aborts the run.
func (r *Runner) Generate(ctx context.Context) ([]Result, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}
	files, err := r.findCodeFiles()
	if err != nil {
		return nil, err
	}

	if r.opts.DryRun {
		return r.dryRun(files), nil
	}

	if r.opts.Lock {
		lock, err := filelock.ForDirectory(r.opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if err := lock.TryLock(); err != nil {
			if errors.Is(err, filelock.ErrLocked) {
				return nil, fmt.Errorf("another run is writing to %s: %w", r.opts.OutputDir, err)
			}
			return nil, err
		}
		defer lock.Unlock()
		r.logger.Debug("Locked output directory.", "lock", lock.Path())
	}

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			adocFile, err := r.convert(file)
			if err != nil {
				return err
			}
			results[i] = Result{CodeFile: file.FullPath(), AdocFile: adocFile}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, result := range results {
		r.report(result, "")
	}

	if r.opts.Nav != "" {
		if err := r.writeNav(results); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (r *Runner) convert(file *codefile.CodeFile) (string, error) {
	file.SetCommentFormat(r.opts.CommentFormat)
	if err := file.ReadFileContent(); err != nil {
		return "", err
	}
	if err := file.Parse(); err != nil {
		return "", err
	}
	if !file.HasHeaderDocs() {
		r.logger.Debug("No header documentation.", "file", file.FullPath())
	}
	return file.WriteDocumentationFile(r.opts.OutputDir)
}

func (r *Runner) dryRun(files []*codefile.CodeFile) []Result {
	results := make([]Result, 0, len(files))
	for _, file := range files {
		result := Result{CodeFile: file.FullPath(), AdocFile: file.DocumentationFilePath(r.opts.OutputDir)}
		r.report(result, " (dry-run)")
		results = append(results, result)
	}
	fmt.Fprintf(r.out, "Found %d code files (dry-run, nothing written)\n", len(results))
	return results
}

func (r *Runner) report(result Result, suffix string) {
	fmt.Fprintf(r.out, "%s    %s    %s%s\n",
		r.source.Sprint(result.CodeFile), r.arrow.Sprint("==>"), r.target.Sprint(result.AdocFile), suffix)
}
