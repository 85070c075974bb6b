// Package main provides tasktree, a due-date tracker for tagged markdown
// files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasktree/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exitCode := cli.Run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args, os.Environ())

	stop()
	os.Exit(exitCode)
}
