// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sommerfeld-io/source2adoc/cmd/source2adoc/cmd"
	"github.com/sommerfeld-io/source2adoc/pkg/app"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// Handle SIGINT (Ctrl+C) and SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	code := app.Run(ctx, cmd.NewCLI(cmd.NewEnvironment()), os.Args[1:])
	cancel()
	os.Exit(code)
}
