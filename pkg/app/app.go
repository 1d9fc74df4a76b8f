// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

// Package app hands the process over to the command runtime.
package app

import "context"

// Runtime is started with the arguments of the process and returns when it shuts down.
// Reporting errors to the user is the job of the Runtime.
type Runtime interface {
	Start(ctx context.Context, args []string) error
}

// Exit codes of the process.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Run starts the runtime with args exactly as received and returns the exit code.
func Run(ctx context.Context, runtime Runtime, args []string) int {
	if err := runtime.Start(ctx, args); err != nil {
		return ExitFailure
	}
	return ExitSuccess
}
