package build

import (
	_ "crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cruciblehq/zkbuild/internal/metadata"
	"github.com/cruciblehq/zkbuild/internal/paths"
	"github.com/opencontainers/go-digest"
)

// Source and destination of the compiled ELF.
type ArtifactLocation struct {
	Source      string // ELF inside cargo's target directory.
	Destination string // Path the ELF is copied to.
}

// Computes where cargo writes the ELF and where it should be copied.
//
// The source is named after the binary, falling back to the root package.
// The destination is named after the ELF name, then the binary, then
// [Target]; it never falls back to the package name. Relative output
// directories are resolved against the parent of the target directory.
func ResolveArtifact(opts Options, meta *metadata.Metadata) (ArtifactLocation, error) {
	if meta == nil {
		return ArtifactLocation{}, fmt.Errorf("%w: package metadata is missing", ErrConfiguration)
	}

	source, err := sourceName(opts, meta)
	if err != nil {
		return ArtifactLocation{}, err
	}

	outputDir := opts.OutputDirectory
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(filepath.Dir(meta.TargetDirectory), outputDir)
	}

	return ArtifactLocation{
		Source:      filepath.Join(HelperTargetDir(meta.TargetDirectory, opts.Docker), Target, "release", source),
		Destination: filepath.Join(outputDir, destinationName(opts)),
	}, nil
}

// Copies the compiled ELF to the output directory and returns its path.
//
// The output directory is created if needed and an existing file at the
// destination is overwritten.
func CopyArtifact(opts Options, meta *metadata.Metadata) (string, error) {
	loc, err := ResolveArtifact(opts, meta)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(loc.Destination)
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDirectoryCreation, dir, err)
	}

	dgst, err := copyFile(loc.Source, loc.Destination)
	if err != nil {
		return "", err
	}

	slog.Info("copied ELF",
		"source", loc.Source,
		"elf", loc.Destination,
		"digest", dgst.String(),
	)

	return loc.Destination, nil
}

// Returns the cargo target directory used for zkVM builds under targetDir.
//
// Containerized builds get their own nested directory so they never share
// build state with local builds.
func HelperTargetDir(targetDir string, docker bool) string {
	dir := filepath.Join(targetDir, helperTargetSubdir)
	if docker {
		dir = filepath.Join(dir, dockerSubdir)
	}
	return dir
}

// Returns the file name cargo gives the ELF.
func sourceName(opts Options, meta *metadata.Metadata) (string, error) {
	if opts.Binary != "" {
		return opts.Binary, nil
	}
	if name, ok := meta.RootPackageName(); ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: target directory %s", ErrMissingPackageName, meta.TargetDirectory)
}

// Returns the file name of the copied ELF.
func destinationName(opts Options) string {
	switch {
	case opts.ELFName != "":
		return opts.ELFName
	case opts.Binary != "":
		return opts.Binary
	default:
		return Target
	}
}

// Copies src over dst and returns the digest of the copied bytes.
func copyFile(src, dst string) (digest.Digest, error) {
	in, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrArtifactNotFound, src)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrCopy, src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCopy, src, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrArtifactNotFound, src)
	}

	return writeFile(dst, in)
}

// Writes r to dst, creating or truncating it, and returns the digest of the
// written bytes. A partially written dst is removed.
func writeFile(dst string, r io.Reader) (digest.Digest, error) {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCopy, dst, err)
	}

	digester := digest.Canonical.Digester()
	if _, err := io.Copy(io.MultiWriter(out, digester.Hash()), r); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("%w: %s: %w", ErrCopy, dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("%w: %s: %w", ErrCopy, dst, err)
	}

	return digester.Digest(), nil
}
