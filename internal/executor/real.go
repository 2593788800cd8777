package executor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/xdg/hostmcp/internal/clog"
	"github.com/xdg/hostmcp/internal/elevation"
)

// RealRunner runs invocations with os/exec. There is no timeout: Run blocks
// until the child exits.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run starts inv, feeds and zeroes inv.Stdin if set, and waits for the
// child. A non-zero exit is not an error.
func (r *RealRunner) Run(inv elevation.Invocation) (Raw, error) {
	defer clear(inv.Stdin)

	cmd := exec.Command(inv.Path, inv.Args...)
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	configureSysProcAttr(cmd, inv.HideWindow)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var stdin io.WriteCloser
	if inv.Stdin != nil {
		pipe, err := cmd.StdinPipe()
		if err != nil {
			return Raw{ExitCode: -1}, &SpawnError{Program: inv.Path, Err: err}
		}
		stdin = pipe
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		// Start closes the pipes it created when it fails.
		return Raw{ExitCode: -1}, &SpawnError{Program: inv.Path, Err: err}
	}

	if stdin != nil {
		_, writeErr := stdin.Write(inv.Stdin)
		clear(inv.Stdin)
		if closeErr := stdin.Close(); writeErr == nil {
			writeErr = closeErr
		}
		if writeErr != nil {
			// The child may exit without reading its input.
			clog.Debug("executor: stdin for %s: %v", inv.Path, writeErr)
		}
	}

	waitErr := cmd.Wait()
	raw := Raw{
		ExitCode: -1,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		raw.ExitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return raw, &SpawnError{Program: inv.Path, Err: fmt.Errorf("wait: %w", waitErr)}
	}
	return raw, nil
}
