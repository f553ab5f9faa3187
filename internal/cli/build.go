package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cruciblehq/zkbuild/internal/build"
	"github.com/cruciblehq/zkbuild/internal/docker"
	"github.com/cruciblehq/zkbuild/internal/metadata"
)

// Represents the 'zkbuild build' command.
type BuildCmd struct {
	Docker            bool     `help:"Run compilation using a Docker container for reproducible builds." default:"${default_docker}"`
	Tag               string   `help:"The ghcr.io/succinctlabs/sp1 image tag to use when building with Docker." default:"${default_tag}"`
	Features          []string `help:"Comma separated list of features to activate. May be repeated." placeholder:"FEATURE"`
	NoDefaultFeatures bool     `help:"Do not activate the 'default' feature."`
	IgnoreRustVersion bool     `help:"Ignore 'rust-version' specification in packages."`
	Locked            bool     `help:"Assert that Cargo.lock will remain unchanged."`
	Binary            string   `aliases:"bin" help:"Build only the specified binary." placeholder:"NAME"`
	ELFName           string   `name:"elf-name" help:"ELF binary name." placeholder:"NAME"`
	OutputDirectory   string   `aliases:"out-dir" help:"Copy the compiled ELF to this directory." default:"${default_output_dir}" placeholder:"DIR"`
	Program           string   `arg:"" optional:"" help:"Program directory. Defaults to the current directory." placeholder:"DIR"`
}

// Executes the build command.
//
// Prints the path of the copied ELF on success. A failing compiler is
// reported as a [*build.ProcessFailure] whose exit code the caller should
// adopt without printing anything further.
func (c *BuildCmd) Run(ctx context.Context) error {
	p := &build.Pipeline{
		Metadata:  metadata.Loader{},
		Container: docker.Backend{},
		Runner:    build.Runner{},
		Env:       build.ParseEnv(os.Environ()),
	}

	elf, err := p.Program(ctx, c.options(), c.Program)
	if err != nil {
		return err
	}

	slog.Info("build complete", "elf", elf)
	fmt.Println(elf)
	return nil
}

// Returns the build options selected by the flags.
func (c *BuildCmd) options() build.Options {
	return build.Options{
		Docker:            c.Docker,
		Tag:               c.Tag,
		Features:          c.Features,
		NoDefaultFeatures: c.NoDefaultFeatures,
		IgnoreRustVersion: c.IgnoreRustVersion,
		Locked:            c.Locked,
		Binary:            c.Binary,
		ELFName:           c.ELFName,
		OutputDirectory:   c.OutputDirectory,
	}.Clone()
}
