package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cruciblehq/zkbuild/internal/metadata"
)

// Name of the manifest read from the program directory.
const manifestName = "Cargo.toml"

// Resolves a manifest to its package layout.
type MetadataLoader interface {
	Load(ctx context.Context, manifestPath string) (*metadata.Metadata, error)
}

// Collaborators used to build a program.
type Pipeline struct {
	Metadata  MetadataLoader // Package metadata source.
	Container Backend        // Command source for containerized builds. May be nil for local builds.
	Runner    Executor       // Runs the build command.
	Env       Env            // Snapshot of the caller's environment.
}

// Compiles the program in programDir and copies the resulting ELF to the
// output directory, returning the ELF's path.
//
// An empty programDir means the current directory. The pipeline is a single
// attempt; every failure stops it. A build command exiting non-zero is
// reported as a [*ProcessFailure]. The context bounds the metadata query
// only; the compiler runs to completion once started.
func (p *Pipeline) Program(ctx context.Context, opts Options, programDir string) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	if programDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: current directory: %w", ErrConfiguration, err)
		}
		programDir = wd
	}

	manifest := filepath.Join(programDir, manifestName)
	meta, err := p.Metadata.Load(ctx, manifest)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMetadata, err)
	}

	slog.Debug("package metadata",
		"manifest", manifest,
		"target_dir", meta.TargetDirectory,
		"workspace", meta.WorkspaceRoot,
	)

	cmd, err := NewCommand(opts, programDir, meta, p.Container, p.Env)
	if err != nil {
		return "", err
	}

	slog.Info("building program",
		"dir", cmd.Dir,
		"target", Target,
		"docker", opts.Docker,
	)

	if err := p.Runner.Run(cmd, opts.Docker); err != nil {
		return "", err
	}

	return CopyArtifact(opts, meta)
}
