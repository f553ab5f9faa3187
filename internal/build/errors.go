package build

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("invalid build configuration")
	ErrMetadata           = errors.New("failed to read package metadata")
	ErrSpawn              = errors.New("failed to start build command")
	ErrMissingPackageName = errors.New("no binary specified and workspace has no root package")
	ErrDirectoryCreation  = errors.New("failed to create output directory")
	ErrArtifactNotFound   = errors.New("compiled ELF not found")
	ErrCopy               = errors.New("failed to copy ELF")
)

// Build command that ran and exited unsuccessfully.
//
// The command's own diagnostics have already been relayed by the time this
// error is returned, so callers should exit with Code without printing it.
type ProcessFailure struct {
	Code int // Exit code of the command, or 1 if it was killed by a signal.
}

// Implements the error interface.
func (e *ProcessFailure) Error() string {
	return fmt.Sprintf("build command exited with code %d", e.Code)
}
