package docker

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"
	"github.com/cruciblehq/zkbuild/internal/build"
	"github.com/cruciblehq/zkbuild/internal/metadata"
	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const (

	// Repository of the toolchain image.
	ImageRepository = "ghcr.io/succinctlabs/sp1"

	// Mount point of the workspace inside the container.
	containerRoot = "/root/program"

	// Docker executable used when [Backend.Docker] is empty.
	defaultDocker = "docker"
)

// Platform of the toolchain image. Only amd64 images are published.
var imagePlatform = ocispec.Platform{OS: "linux", Architecture: "amd64"}

// Produces containerized build commands.
type Backend struct {
	Docker string       // Docker executable. Empty uses "docker" from PATH.
	Probe  func() error // Checks that docker is usable. Nil runs "docker info".
}

// Returns the toolchain image reference for a tag.
func Image(tag string) (string, error) {
	ref, err := reference.ParseNormalizedNamed(ImageRepository + ":" + tag)
	if err != nil {
		return "", fmt.Errorf("%w: image tag %q: %w", errdefs.ErrInvalidArgument, tag, err)
	}
	if _, ok := ref.(reference.Tagged); !ok {
		return "", fmt.Errorf("%w: image tag %q", errdefs.ErrInvalidArgument, tag)
	}
	if _, ok := ref.(reference.Digested); ok {
		return "", fmt.Errorf("%w: image tag %q must not carry a digest", errdefs.ErrInvalidArgument, tag)
	}
	return ref.String(), nil
}

// Builds the "docker run" command compiling the program in programDir.
//
// The program directory must lie inside the workspace root, since only the
// workspace is mounted. Local path dependencies outside the workspace are
// not visible to the container.
func (b Backend) Command(opts build.Options, programDir string, meta *metadata.Metadata) (*build.Command, error) {
	if meta == nil {
		return nil, fmt.Errorf("%w: package metadata is missing", errdefs.ErrInvalidArgument)
	}

	dir, err := build.CanonicalDir(programDir)
	if err != nil {
		return nil, err
	}

	workspace := meta.WorkspaceRoot
	relProgram, ok := within(workspace, dir)
	if !ok {
		return nil, fmt.Errorf("%w: workspace root (%s) must be a parent of the program directory (%s)", errdefs.ErrInvalidArgument, workspace, dir)
	}

	targetDir := build.HelperTargetDir(meta.TargetDirectory, true)
	relTarget, ok := within(workspace, targetDir)
	if !ok {
		return nil, fmt.Errorf("%w: target directory (%s) must be inside the workspace root (%s)", errdefs.ErrInvalidArgument, meta.TargetDirectory, workspace)
	}

	image, err := Image(opts.Tag)
	if err != nil {
		return nil, err
	}

	if err := b.probe(); err != nil {
		return nil, fmt.Errorf("%w: docker is not installed or not running (https://docs.docker.com/get-docker/): %w", errdefs.ErrUnavailable, err)
	}

	inv := build.Translate(opts)
	args := []string{
		"run", "--rm",
		"--platform", platforms.Format(imagePlatform),
		"-v", workspace + ":" + containerRoot,
		"-w", path.Join(containerRoot, relProgram),
		"-e", build.EnvToolchain + "=" + inv.Env[build.EnvToolchain],
		"-e", build.EnvEncodedRustFlags + "=" + inv.Env[build.EnvEncodedRustFlags],
		"-e", build.EnvTargetDir + "=" + path.Join(containerRoot, relTarget),
		image,
		"cargo",
	}
	args = append(args, inv.Args...)

	slog.Debug("docker build command",
		"image", image,
		"workspace", workspace,
		"workdir", path.Join(containerRoot, relProgram),
	)

	return &build.Command{
		Dir:  dir,
		Path: b.docker(),
		Args: args,
	}, nil
}

// Returns the docker executable.
func (b Backend) docker() string {
	if b.Docker == "" {
		return defaultDocker
	}
	return b.Docker
}

// Checks that the docker daemon answers.
func (b Backend) probe() error {
	if b.Probe != nil {
		return b.Probe()
	}

	out, err := exec.Command(b.docker(), "info").CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, lastLine(msg))
		}
		return err
	}
	return nil
}

// Returns target relative to root in slash form, and whether target lies
// inside root.
func within(root, target string) (string, bool) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Returns the last line of s.
func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
