package shell

// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: LGPL-3.0

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"
)

// ErrCancelled is returned when the context is cancelled (e.g., CTRL-C)
var ErrCancelled = errors.New("shell cancelled")

// DefaultPrompt is shown before each command in interactive mode.
const DefaultPrompt = "source2adoc:> "

// Dispatcher executes one command line, already split into arguments.
type Dispatcher func(ctx context.Context, args []string) error

// Shell reads command lines and hands them to a Dispatcher until the input ends or the user
// exits.
type Shell struct {
	in          io.Reader
	out         io.Writer
	dispatch    Dispatcher
	logger      *log.Logger
	prompt      string
	interactive bool
}

// New creates a Shell reading from in. Errors of commands are printed to out.
func New(in io.Reader, out io.Writer, dispatch Dispatcher, logger *log.Logger) *Shell {
	return &Shell{
		in:       in,
		out:      out,
		dispatch: dispatch,
		logger:   logger,
		prompt:   DefaultPrompt,
	}
}

// SetInteractive enables the prompt and the greeting. Use it when the input is a terminal.
func (s *Shell) SetInteractive(interactive bool) {
	s.interactive = interactive
}

// SetPrompt changes the prompt.
func (s *Shell) SetPrompt(prompt string) {
	s.prompt = prompt
}

// readResult holds a line read from the input
type readResult struct {
	line string
	err  error
}

// Run executes command lines until "exit", "quit" or the end of the input. A failing command
// does not end the shell. Cancelling ctx ends the shell with ErrCancelled.
func (s *Shell) Run(ctx context.Context) error {
	// Read in a goroutine to support cancellation, the scanner blocks on the input.
	lines := make(chan readResult)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- readResult{line: scanner.Text()}:
			case <-stop:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- readResult{err: err}:
			case <-stop:
			}
		}
	}()

	if s.interactive {
		fmt.Fprintln(s.out, `Type "help" for a list of commands, "exit" to leave.`)
	}
	for {
		s.showPrompt()
		select {
		case <-ctx.Done():
			return ErrCancelled
		case result, ok := <-lines:
			if !ok {
				s.endLine()
				return nil
			}
			if result.err != nil {
				return fmt.Errorf("unable to read command: %w", result.err)
			}
			done, err := s.execute(ctx, result.line)
			if err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
			}
			if done {
				return nil
			}
		}
	}
}

// execute runs a single line and reports whether the shell should end.
func (s *Shell) execute(ctx context.Context, line string) (bool, error) {
	args, err := Split(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "exit", "quit":
		return true, nil
	}
	s.logger.Debug("Dispatching command.", "args", args)
	return false, s.dispatch(ctx, args)
}

// Split breaks a command line into arguments using shell quoting rules. Comments starting
// with # are dropped.
func Split(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %q: %w", line, err)
	}
	return args, nil
}

func (s *Shell) showPrompt() {
	if s.interactive {
		fmt.Fprint(s.out, s.prompt)
	}
}

func (s *Shell) endLine() {
	if s.interactive {
		fmt.Fprintln(s.out)
	}
}
