// Package policy decides whether a command may run at all.
//
// The program must be on the allow-list. A file-removal utility must also
// name only targets under a safe root, and find may not use a primary that
// deletes, writes or runs something. All checks are lexical. Nothing here touches the filesystem, so the same input
// always gets the same verdict.
package policy

import (
	"errors"
	"fmt"
	"strings"
)

// Rejection kinds.
var (
	// ErrNotAllowed means the program is not on the allow-list.
	ErrNotAllowed = errors.New("not allowed")
	// ErrUnsafeTarget means a removal target is outside the safe roots, no
	// target was given, or find was asked to delete or execute.
	ErrUnsafeTarget = errors.New("unsafe target")
)

// Rejection describes why a command was refused. It unwraps to
// ErrNotAllowed or ErrUnsafeTarget.
type Rejection struct {
	Kind    error
	Program string
	// Target is the offending path for ErrUnsafeTarget. Empty when the
	// command had no targets.
	Target string
	// Action is the refused find primary, such as "-delete".
	Action string
}

func (r *Rejection) Error() string {
	switch {
	case errors.Is(r.Kind, ErrNotAllowed):
		return fmt.Sprintf("%v: %q is not in the allowed command list", r.Kind, r.Program)
	case r.Action != "":
		return fmt.Sprintf("%v: %s %s can delete files or run other programs", r.Kind, r.Program, r.Action)
	case r.Target == "":
		return fmt.Sprintf("%v: %s requires at least one explicit target", r.Kind, r.Program)
	default:
		return fmt.Sprintf("%v: %s target %q is outside the safe directories (%s)",
			r.Kind, r.Program, r.Target, strings.Join(safeRootNames, ", "))
	}
}

func (r *Rejection) Unwrap() error {
	return r.Kind
}

// Reason returns a short machine-friendly label for the rejection kind.
func (r *Rejection) Reason() string {
	if errors.Is(r.Kind, ErrNotAllowed) {
		return "not_allowed"
	}
	return "unsafe_target"
}

// Validator checks commands against an allow-list. It holds no mutable
// state and is safe for concurrent use.
type Validator struct {
	allow *AllowList
}

// NewValidator returns a Validator backed by allow.
func NewValidator(allow *AllowList) *Validator {
	return &Validator{allow: allow}
}

// Validate returns nil if command with args is admitted, or a *Rejection.
func (v *Validator) Validate(command string, args []string) error {
	program := ProgramName(command)
	if !v.allow.Allows(command) {
		return &Rejection{Kind: ErrNotAllowed, Program: program}
	}
	if removalPrograms[program] {
		if target, ok := checkRemovalTargets(args); !ok {
			return &Rejection{Kind: ErrUnsafeTarget, Program: program, Target: target}
		}
	}
	if program == "find" {
		if action := findAction(args); action != "" {
			return &Rejection{Kind: ErrUnsafeTarget, Program: program, Action: action}
		}
	}
	return nil
}

// ProgramName returns the final path segment of command, splitting on both
// forward and back slashes.
func ProgramName(command string) string {
	if i := strings.LastIndexAny(command, `/\`); i >= 0 {
		return command[i+1:]
	}
	return command
}
