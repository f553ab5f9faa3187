package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/zkbuild/internal"
	"github.com/cruciblehq/zkbuild/internal/paths"
	"github.com/cruciblehq/zkbuild/internal/settings"
)

// Represents the root command for zkbuild.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Build   BuildCmd   `cmd:"" help:"Compile a program for the zkVM target."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	defaults, err := settings.Load(paths.ConfigFile())
	if err != nil {
		return err
	}

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Compile programs for the SP1 zkVM.\n\nBuilds with the local succinct toolchain or inside the toolchain container, then copies the ELF to the output directory."),
		kong.UsageOnError(),
		vars(defaults),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Returns the interpolation variables providing flag defaults.
func vars(s settings.Settings) kong.Vars {
	return kong.Vars{
		"version":            internal.VersionString(),
		"default_tag":        s.Tag,
		"default_output_dir": s.OutputDirectory,
		"default_docker":     strconv.FormatBool(s.Docker),
	}
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     internal.LogLevel(),
		AddSource: internal.IsVerbose(),
	})
	slog.SetDefault(slog.New(handler).WithGroup(internal.Name))
}
