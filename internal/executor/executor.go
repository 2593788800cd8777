// Package executor spawns prepared invocations, captures their output and
// normalizes the outcome into a Result.
package executor

import (
	"errors"
	"fmt"
	"time"

	"github.com/xdg/hostmcp/internal/elevation"
)

// ErrSpawnFailure means the OS refused to create or wait on the child.
var ErrSpawnFailure = errors.New("spawn failed")

// SpawnError carries the OS error text for a failed spawn.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrSpawnFailure, e.Program, e.Err)
}

func (e *SpawnError) Unwrap() []error {
	return []error{ErrSpawnFailure, e.Err}
}

// Runner runs an invocation to completion. Implementations must reap the
// child and release every pipe on all return paths.
type Runner interface {
	Run(inv elevation.Invocation) (Raw, error)
}

// Raw is a child's outcome before normalization.
type Raw struct {
	// ExitCode is -1 when the process did not exit normally.
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Result is the uniform record handed back to callers.
type Result struct {
	Command         string `json:"command"`
	ElevationMethod string `json:"elevation_method"`
	ExitCode        int    `json:"exit_code"`
	Stdout          string `json:"stdout"`
	Stderr          string `json:"stderr"`
	Success         bool   `json:"success"`

	Duration time.Duration `json:"-"`
}
