// Package main is the entry point for the labt CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/cmd/labt/commands"
	"github.com/labt-build/labt/internal/app"

	// Register every adapter and application Graft node.
	_ "github.com/labt-build/labt/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// An interrupt aborts in-flight downloads and stops the driver before
	// the next task launches; staged paths are cleaned up by the aborted
	// operations themselves.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, _, err := graft.ExecuteFor[*app.App](ctx)
	if err != nil {
		// zerr prints a pretty error report with stack trace and metadata when using %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}

	cli := commands.New(application)
	cli.SetArgs(os.Args[1:])
	if err := cli.Execute(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
