package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/cruciblehq/zkbuild/internal"
	"github.com/cruciblehq/zkbuild/internal/build"
	"github.com/cruciblehq/zkbuild/internal/cli"
)

// The entry point for zkbuild.
//
// Initializes logging and executes the root command. A failed compiler run
// exits with the compiler's own exit code and no further output, since its
// diagnostics were already relayed. Any other error is logged once and
// exits with code 1.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("zkbuild is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	os.Exit(exitCode(cli.Execute()))
}

// Returns the process exit code for the result of a command.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var failure *build.ProcessFailure
	if errors.As(err, &failure) {
		return failure.Code
	}

	slog.Error(err.Error())
	return 1
}

// Creates the logger used until flags are parsed.
//
// The logger is reconfigured after flag parsing via cli.Execute.
func logger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: internal.LogLevel(),
	})
	return slog.New(handler).WithGroup(internal.Name)
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
