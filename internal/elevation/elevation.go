// Package elevation chooses how a command gains privileges and prepares the
// process invocation for it.
//
// Each mechanism (direct, sudo, pkexec, UAC) implements Mechanism. A
// Selector maps request flags and the host platform to exactly one of them,
// probing for the helper binary so that a missing helper fails the request
// instead of silently running it unprivileged.
package elevation

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Labels reported in results and audit entries.
const (
	LabelNone   = "none"
	LabelSudo   = "sudo"
	LabelPolkit = "pkexec (PolicyKit)"
	LabelUAC    = "UAC"
)

// ErrMechanismUnavailable means the requested elevation helper is not
// installed or usable on this host.
var ErrMechanismUnavailable = errors.New("elevation mechanism unavailable")

// UnavailableError reports a missing helper along with what to install.
type UnavailableError struct {
	Mechanism string
	Helper    string
	Hint      string
	Err       error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("%s is not available: %s not found", e.Mechanism, e.Helper)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

func (e *UnavailableError) Unwrap() error {
	return ErrMechanismUnavailable
}

// Platform is the family of operating system the binary was built for.
type Platform string

const (
	POSIX   Platform = "posix"
	Windows Platform = "windows"
)

// CurrentPlatform returns the platform of the running binary.
func CurrentPlatform() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return POSIX
}

// Invocation is a fully prepared process launch.
type Invocation struct {
	// Path is the program to spawn, looked up on PATH if not absolute.
	Path string
	// Args follow Path in the child's argument vector.
	Args []string
	// Env holds KEY=VALUE entries layered over the inherited environment.
	Env []string
	// Stdin, if non-nil, is written to the child right after it starts and
	// then zeroed by the executor.
	Stdin []byte
	// HideWindow suppresses the console window on Windows.
	HideWindow bool
	// Display is a human-readable command line. It never holds Stdin.
	Display string
}

// Mechanism is one way of running a command.
type Mechanism interface {
	// Label names the mechanism for results and audit entries.
	Label() string
	// Probe checks that the mechanism can be used on this host.
	Probe() error
	// Prepare builds the invocation that runs program with args. It may
	// be called once; a mechanism holding a secret hands it over to the
	// returned Invocation.
	Prepare(program string, args []string) (Invocation, error)
}

func displayLine(parts ...[]string) string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return strings.Join(all, " ")
}
