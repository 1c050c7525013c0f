// Package main is the entry point for the modpack tool.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/modpack/cmd/modpack/commands"
	"go.trai.ch/modpack/internal/adapters/logger"
	"go.trai.ch/modpack/internal/app"
	"go.trai.ch/modpack/internal/core/ports"
	_ "go.trai.ch/modpack/internal/wiring"
)

// ComponentProvider builds the application components.
// The returned func releases them once the command has finished.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// redirectable is implemented by loggers whose destination can change.
type redirectable interface {
	SetOutput(w io.Writer)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, graftComponents))
}

// graftComponents resolves the components from the registered graft nodes.
func graftComponents(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, func() {}, err
}

// run executes one command line and returns the process exit code.
// Logs go to stderr. The summary goes to stdout unless a manifest exported
// with "-e -" occupies it.
func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, release, err := provider(ctx)
	if err != nil {
		// Settings errors carry metadata such as the offending key.
		startupLogger(stderr).Error(err)
		return 1
	}
	defer release()

	if r, ok := components.Logger.(redirectable); ok {
		r.SetOutput(stderr)
	}
	components.App.WithStdout(stdout).WithStderr(stderr)
	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	return exitCode(ctx, components.Logger, cli.Execute(ctx))
}

// exitCode reports err and maps it to an exit code. An interrupted run is
// reported as such instead of as the failure it caused downstream.
func exitCode(ctx context.Context, log ports.Logger, err error) int {
	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		log.Warn("interrupted")
		return 1
	default:
		log.Error(err)
		return 1
	}
}

// startupLogger returns a logger for failures that happen before the
// components, and with them the configured logger, exist.
func startupLogger(w io.Writer) ports.Logger {
	log := logger.New()
	if r, ok := log.(redirectable); ok {
		r.SetOutput(w)
	}
	return log
}
