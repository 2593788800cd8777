package executor

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	raw := Raw{
		ExitCode: 1,
		Stdout:   []byte("ok\xff\xfeend"),
		Stderr:   []byte("warn"),
		Duration: time.Second,
	}

	got := Normalize("sudo ls", "sudo", raw)

	want := Result{
		Command:         "sudo ls",
		ElevationMethod: "sudo",
		ExitCode:        1,
		Stdout:          "ok\uFFFDend",
		Stderr:          "warn",
		Success:         false,
		Duration:        time.Second,
	}
	if got != want {
		t.Errorf("Normalize() =\n  %+v\nwant\n  %+v", got, want)
	}
}

func TestNormalize_UnknownExit(t *testing.T) {
	got := Normalize("x", "none", Raw{ExitCode: -1})
	if got.Success || got.ExitCode != -1 {
		t.Errorf("Success=%v ExitCode=%d", got.Success, got.ExitCode)
	}
}
