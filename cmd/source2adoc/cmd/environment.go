// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/sommerfeld-io/source2adoc/pkg/config"
)

// Environment holds everything the commands need from the outside world. It is created once in
// main and handed to every command.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger

	// Interactive is true when commands are typed by a user, it enables the shell prompt.
	Interactive bool
	// Color is true when Stdout can display colors.
	Color bool

	LoadConfig func(path string) (*config.Config, error)
}

// NewEnvironment creates the Environment of the running process.
func NewEnvironment() *Environment {
	return &Environment{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Logger:      log.New(io.Discard),
		Interactive: isTerminal(os.Stdin),
		Color:       isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "",
		LoadConfig:  config.LoadConfig,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
