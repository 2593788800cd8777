package cmd

import (
	"errors"
	"fmt"

	"github.com/xdg/hostmcp/internal/elevation"
	"github.com/xdg/hostmcp/internal/executor"
	"github.com/xdg/hostmcp/internal/policy"
)

// ExitCodeError carries a process exit code out of a command. main exits
// with Code without printing anything further.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError returns an ExitCodeError for code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// Exit codes for exec and check failures that happen before or instead of
// the child running. They follow the shell's 126/127 convention.
const (
	exitRejected    = 1
	exitUnavailable = 126
	exitSpawnFailed = 127
)

// exitCodeFor maps a pipeline failure to the exit code reported by the CLI.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, policy.ErrNotAllowed), errors.Is(err, policy.ErrUnsafeTarget):
		return exitRejected
	case errors.Is(err, elevation.ErrMechanismUnavailable):
		return exitUnavailable
	case errors.Is(err, executor.ErrSpawnFailure):
		return exitSpawnFailed
	default:
		return 1
	}
}
