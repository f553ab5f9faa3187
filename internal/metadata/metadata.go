package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// Cargo executable used when [Loader.Cargo] is empty.
const defaultCargo = "cargo"

// Package layout of a Cargo manifest.
type Metadata struct {
	WorkspaceRoot   string   // Absolute path of the workspace root.
	TargetDirectory string   // Absolute path of the cargo target directory.
	RootPackage     *Package // Package owning the manifest. Nil for a virtual workspace.
}

// Single package of a workspace.
type Package struct {
	Name         string // Package name.
	ManifestPath string // Absolute path of the package's Cargo.toml.
}

// Returns the root package name and whether the manifest has one.
func (m *Metadata) RootPackageName() (string, bool) {
	if m.RootPackage == nil || m.RootPackage.Name == "" {
		return "", false
	}
	return m.RootPackage.Name, true
}

// Queries cargo for package metadata.
type Loader struct {
	Cargo string // Cargo executable. Empty uses "cargo" from PATH.
}

// Runs "cargo metadata" for the manifest and decodes its output.
//
// Failures are not retried; the returned error wraps [ErrQuery] and carries
// cargo's own diagnostics.
func (l Loader) Load(ctx context.Context, manifestPath string) (*Metadata, error) {
	cargo := l.Cargo
	if cargo == "" {
		cargo = defaultCargo
	}

	cmd := exec.CommandContext(ctx, cargo,
		"metadata",
		"--format-version", "1",
		"--no-deps",
		"--manifest-path", manifestPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("querying cargo metadata", "manifest", manifestPath)

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s: %w: %s", ErrQuery, manifestPath, err, msg)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, manifestPath, err)
	}

	return Parse(&stdout, manifestPath)
}

// Wire format of "cargo metadata --format-version 1", reduced to the fields
// in use.
type document struct {
	Packages []struct {
		Name         string `json:"name"`
		ManifestPath string `json:"manifest_path"`
	} `json:"packages"`
	WorkspaceRoot   string `json:"workspace_root"`
	TargetDirectory string `json:"target_directory"`
}

// Decodes cargo metadata JSON.
//
// The root package is the one whose manifest is manifestPath. Paths are
// compared after resolving symlinks where possible, because cargo reports
// canonical paths.
func Parse(r io.Reader, manifestPath string) (*Metadata, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if doc.TargetDirectory == "" || !filepath.IsAbs(doc.TargetDirectory) {
		return nil, fmt.Errorf("%w: target directory %q is not absolute", ErrInvalid, doc.TargetDirectory)
	}
	if doc.WorkspaceRoot == "" || !filepath.IsAbs(doc.WorkspaceRoot) {
		return nil, fmt.Errorf("%w: workspace root %q is not absolute", ErrInvalid, doc.WorkspaceRoot)
	}

	meta := &Metadata{
		WorkspaceRoot:   filepath.Clean(doc.WorkspaceRoot),
		TargetDirectory: filepath.Clean(doc.TargetDirectory),
	}

	want := canonical(manifestPath)
	for _, pkg := range doc.Packages {
		if canonical(pkg.ManifestPath) == want {
			meta.RootPackage = &Package{Name: pkg.Name, ManifestPath: pkg.ManifestPath}
			break
		}
	}

	return meta, nil
}

// Returns the absolute, symlink-free form of path, or its cleaned absolute
// form if it cannot be resolved.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
