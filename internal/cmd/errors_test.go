package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/xdg/hostmcp/internal/elevation"
	"github.com/xdg/hostmcp/internal/executor"
	"github.com/xdg/hostmcp/internal/policy"
)

func TestExitCodeError(t *testing.T) {
	t.Run("Error returns formatted message", func(t *testing.T) {
		err := NewExitCodeError(42)
		if err.Code != 42 {
			t.Errorf("Code = %d, want 42", err.Code)
		}
		if want := "exit code 42"; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("errors.As matches wrapped ExitCodeError", func(t *testing.T) {
		wrapped := fmt.Errorf("exec: %w", NewExitCodeError(5))
		var exitErr *ExitCodeError
		if !errors.As(wrapped, &exitErr) {
			t.Fatal("errors.As failed to match wrapped ExitCodeError")
		}
		if exitErr.Code != 5 {
			t.Errorf("Code = %d, want 5", exitErr.Code)
		}
	})
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not allowed", &policy.Rejection{Kind: policy.ErrNotAllowed, Program: "python3"}, exitRejected},
		{"unsafe target", &policy.Rejection{Kind: policy.ErrUnsafeTarget, Program: "rm"}, exitRejected},
		{"unavailable", &elevation.UnavailableError{Mechanism: elevation.LabelPolkit, Helper: "pkexec"}, exitUnavailable},
		{"spawn failure", &executor.SpawnError{Program: "x", Err: errors.New("enoent")}, exitSpawnFailed},
		{"other", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
