// Package docker builds programs inside the published toolchain image.
//
// A [Backend] produces a "docker run" command equivalent to a local build:
// the workspace is mounted at /root/program, the working directory is the
// program's location inside the mount, and the toolchain environment is
// passed with -e flags. Cargo's target directory is redirected to a
// container-only subdirectory so local and containerized builds never share
// state.
//
// The image is always run as linux/amd64. Errors are classified with the
// containerd errdefs package: a program outside its workspace or a malformed
// tag is [errdefs.ErrInvalidArgument], and a missing or stopped docker
// daemon is [errdefs.ErrUnavailable].
package docker
