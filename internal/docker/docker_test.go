package docker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/cruciblehq/zkbuild/internal/build"
	"github.com/cruciblehq/zkbuild/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates a workspace with a program subdirectory and returns both.
func workspace(t *testing.T) (root, program string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	program = filepath.Join(root, "program")
	require.NoError(t, os.MkdirAll(program, 0755))
	return root, program
}

func available() error { return nil }

func TestImage(t *testing.T) {
	image, err := Image(build.DefaultTag)
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/succinctlabs/sp1:v1.1.0", image)

	for _, tag := range []string{"", "bad tag", "v1/../x", "UPPER:case:colon"} {
		_, err := Image(tag)
		assert.True(t, errdefs.IsInvalidArgument(err), "tag %q: %v", tag, err)
	}
}

func TestBackendCommand(t *testing.T) {
	root, program := workspace(t)
	meta := &metadata.Metadata{
		WorkspaceRoot:   root,
		TargetDirectory: filepath.Join(root, "target"),
	}
	opts := build.DefaultOptions()
	opts.Docker = true
	opts.Binary = "fibonacci"
	opts.Locked = true

	cmd, err := Backend{Probe: available}.Command(opts, program, meta)
	require.NoError(t, err)

	assert.Equal(t, program, cmd.Dir)
	assert.Equal(t, "docker", cmd.Path)
	assert.Empty(t, cmd.Env)

	want := []string{
		"run", "--rm",
		"--platform", "linux/amd64",
		"-v", root + ":/root/program",
		"-w", "/root/program/program",
		"-e", "RUSTUP_TOOLCHAIN=succinct",
		"-e", "CARGO_ENCODED_RUSTFLAGS=" + build.EncodedRustFlags(),
		"-e", "CARGO_TARGET_DIR=/root/program/target/elf-compilation/docker",
		"ghcr.io/succinctlabs/sp1:v1.1.0",
		"cargo",
	}
	want = append(want, build.CargoArgs(opts)...)
	assert.Equal(t, want, cmd.Args)
}

func TestBackendCommandProgramAtWorkspaceRoot(t *testing.T) {
	root, _ := workspace(t)
	meta := &metadata.Metadata{WorkspaceRoot: root, TargetDirectory: filepath.Join(root, "target")}

	cmd, err := Backend{Docker: "/usr/local/bin/docker", Probe: available}.Command(build.DefaultOptions(), root, meta)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/docker", cmd.Path)
	assert.Contains(t, cmd.Args, "/root/program")
}

func TestBackendCommandOutsideWorkspace(t *testing.T) {
	root, _ := workspace(t)
	other, _ := workspace(t)
	meta := &metadata.Metadata{WorkspaceRoot: root, TargetDirectory: filepath.Join(root, "target")}

	_, err := Backend{Probe: available}.Command(build.DefaultOptions(), other, meta)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "must be a parent of the program directory")
}

func TestBackendCommandTargetOutsideWorkspace(t *testing.T) {
	root, program := workspace(t)
	meta := &metadata.Metadata{WorkspaceRoot: root, TargetDirectory: "/elsewhere/target"}

	_, err := Backend{Probe: available}.Command(build.DefaultOptions(), program, meta)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestBackendCommandDockerUnavailable(t *testing.T) {
	root, program := workspace(t)
	meta := &metadata.Metadata{WorkspaceRoot: root, TargetDirectory: filepath.Join(root, "target")}
	probeErr := errors.New("Cannot connect to the Docker daemon")

	_, err := Backend{Probe: func() error { return probeErr }}.Command(build.DefaultOptions(), program, meta)
	require.ErrorIs(t, err, probeErr)
	assert.True(t, errdefs.IsUnavailable(err))
}

func TestBackendCommandMissingDockerBinary(t *testing.T) {
	root, program := workspace(t)
	meta := &metadata.Metadata{WorkspaceRoot: root, TargetDirectory: filepath.Join(root, "target")}

	_, err := Backend{Docker: filepath.Join(root, "no-docker")}.Command(build.DefaultOptions(), program, meta)
	assert.True(t, errdefs.IsUnavailable(err))
}

func TestBackendCommandBadProgramDir(t *testing.T) {
	root, _ := workspace(t)
	meta := &metadata.Metadata{WorkspaceRoot: root, TargetDirectory: filepath.Join(root, "target")}

	_, err := Backend{Probe: available}.Command(build.DefaultOptions(), filepath.Join(root, "missing"), meta)
	require.ErrorIs(t, err, build.ErrConfiguration)
}

func TestWithin(t *testing.T) {
	tests := []struct {
		root, target, rel string
		ok                bool
	}{
		{"/w", "/w", ".", true},
		{"/w", "/w/a/b", "a/b", true},
		{"/w", "/w2", "", false},
		{"/w", "/", "", false},
		{"/w", "/w/..x", "..x", true},
		{"", "/w", "", false},
	}

	for _, tt := range tests {
		rel, ok := within(tt.root, tt.target)
		assert.Equal(t, tt.ok, ok, "within(%q, %q)", tt.root, tt.target)
		assert.Equal(t, tt.rel, rel, "within(%q, %q)", tt.root, tt.target)
	}
}
