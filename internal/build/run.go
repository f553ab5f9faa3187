package build

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

const (

	// Tag prefixed to every relayed output line.
	outputTag = "[sp1] "

	// Additional tag for output of containerized builds.
	dockerTag = "[docker] "
)

// Runs build commands.
type Executor interface {
	Run(cmd *Command, docker bool) error
}

// Runs a build command on the host, relaying its output line by line.
//
// The zero value relays to the process's own stdout and stderr and starts
// the command from the process environment.
type Runner struct {
	Stdout  io.Writer       // Receives relayed standard output. Nil uses os.Stdout.
	Stderr  io.Writer       // Receives relayed standard error. Nil uses os.Stderr.
	Environ func() []string // Base environment for the command. Nil uses os.Environ.
}

// Starts the command and blocks until it exits.
//
// Both output streams are captured and relayed concurrently, each line
// prefixed with a tag identifying the backend. Ordering is preserved within
// each stream. A command that exits non-zero yields a [*ProcessFailure]; its
// diagnostics have already been relayed. The command is not cancellable
// once started.
func (r Runner) Run(cmd *Command, docker bool) error {
	stdoutW, stderrW := r.writers()

	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Environ(r.environ())

	stdout, err := c.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSpawn, cmd.Path, err)
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSpawn, cmd.Path, err)
	}

	slog.Debug("starting build command",
		"program", cmd.Path,
		"args", cmd.Args,
		"dir", cmd.Dir,
		"docker", docker,
	)

	if err := c.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSpawn, cmd.Path, err)
	}

	prefix := linePrefix(docker)

	// Stdout drains on its own goroutine while stderr drains here. Reading
	// one stream at a time could deadlock a child blocked on the other.
	var g errgroup.Group
	g.Go(func() error {
		return relay(stdoutW, stdout, prefix)
	})
	stderrErr := relay(stderrW, stderr, prefix)
	stdoutErr := g.Wait()

	waitErr := c.Wait()

	if relayErr := errors.Join(stdoutErr, stderrErr); relayErr != nil {
		slog.Warn("build output was not fully relayed", "error", relayErr)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				code = 1 // Killed by a signal.
			}
			return &ProcessFailure{Code: code}
		}
		return fmt.Errorf("%w: %s: %w", ErrSpawn, cmd.Path, waitErr)
	}

	return nil
}

// Returns the relay destinations, defaulting to the process streams.
func (r Runner) writers() (stdout, stderr io.Writer) {
	stdout, stderr = r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

// Returns the base environment for the command.
func (r Runner) environ() []string {
	if r.Environ == nil {
		return os.Environ()
	}
	return r.Environ()
}

// Returns the tag prefixed to relayed lines.
func linePrefix(docker bool) string {
	if docker {
		return outputTag + dockerTag
	}
	return outputTag
}

// Copies r to w line by line, prefixing each line.
//
// Each line is emitted with a single write so lines are never split. A
// final line without a newline is terminated. After a write error the
// reader is still drained to EOF so the child never blocks on a full pipe;
// the first write error is returned.
func relay(w io.Writer, r io.Reader, prefix string) error {
	br := bufio.NewReader(r)
	var writeErr error
	var buf []byte

	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 && writeErr == nil {
			buf = append(buf[:0], prefix...)
			buf = append(buf, line...)
			if buf[len(buf)-1] != '\n' {
				buf = append(buf, '\n')
			}
			if _, werr := w.Write(buf); werr != nil {
				writeErr = werr
			}
		}
		if err == io.EOF {
			return writeErr
		}
		if err != nil {
			return errors.Join(writeErr, err)
		}
	}
}
