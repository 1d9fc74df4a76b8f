// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

func initLogging(env *Environment, verbose bool) {
	env.Logger.SetPrefix("Note")
	if verbose {
		env.Logger.SetOutput(env.Stderr)
		env.Logger.SetLevel(log.DebugLevel)
	} else {
		env.Logger.SetOutput(io.Discard)
		env.Logger.SetLevel(log.InfoLevel)
	}
}
