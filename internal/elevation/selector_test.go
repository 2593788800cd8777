package elevation

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

// fakePath resolves only the listed helper names.
func fakePath(present ...string) LookPathFunc {
	return func(file string) (string, error) {
		for _, p := range present {
			if p == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
	}
}

func noEnv(string) (string, bool) { return "", false }

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		platform  Platform
		elevated  bool
		present   []string
		flags     Flags
		wantLabel string
		wantErr   bool
	}{
		{"none", POSIX, false, nil, Flags{}, LabelNone, false},
		{"password", POSIX, false, []string{"sudo"}, Flags{Password: true}, LabelSudo, false},
		{"interactive", POSIX, false, []string{"pkexec"}, Flags{Interactive: true}, LabelPolkit, false},
		{"interactive wins", POSIX, false, []string{"pkexec", "sudo"}, Flags{Interactive: true, Password: true}, LabelPolkit, false},
		{"interactive helper absent", POSIX, false, []string{"sudo"}, Flags{Interactive: true}, "", true},
		{"password helper absent", POSIX, false, nil, Flags{Password: true}, "", true},
		{"already elevated interactive", POSIX, true, nil, Flags{Interactive: true}, LabelNone, false},
		{"already elevated password", POSIX, true, nil, Flags{Password: true, Secret: []byte("pw")}, LabelNone, false},
		{"windows interactive", Windows, false, []string{"powershell.exe"}, Flags{Interactive: true}, LabelUAC, false},
		{"windows interactive absent", Windows, false, nil, Flags{Interactive: true}, "", true},
		{"windows password", Windows, false, []string{"powershell.exe"}, Flags{Password: true}, "", true},
		{"windows elevated", Windows, true, nil, Flags{Interactive: true}, LabelNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Selector{
				Platform:        tt.platform,
				AlreadyElevated: func() bool { return tt.elevated },
				LookPath:        fakePath(tt.present...),
				Getenv:          noEnv,
			}
			m, err := s.Select(tt.flags)
			if tt.wantErr {
				if !errors.Is(err, ErrMechanismUnavailable) {
					t.Fatalf("Select() error = %v, want ErrMechanismUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if m.Label() != tt.wantLabel {
				t.Errorf("Label() = %q, want %q", m.Label(), tt.wantLabel)
			}
		})
	}
}

func TestSelect_PolkitMissingHint(t *testing.T) {
	s := &Selector{Platform: POSIX, LookPath: fakePath(), Getenv: noEnv}

	_, err := s.Select(Flags{Interactive: true})

	var ue *UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("error %T is not *UnavailableError", err)
	}
	if ue.Helper != "pkexec" {
		t.Errorf("Helper = %q", ue.Helper)
	}
	if !strings.Contains(err.Error(), "install the 'polkit' package") {
		t.Errorf("error %q lacks install guidance", err)
	}
}

func TestSelect_UnusedSecretZeroed(t *testing.T) {
	tests := []struct {
		name     string
		elevated bool
		flags    func([]byte) Flags
	}{
		{"interactive wins", false, func(b []byte) Flags { return Flags{Interactive: true, Password: true, Secret: b} }},
		{"already elevated", true, func(b []byte) Flags { return Flags{Password: true, Secret: b} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := []byte("hunter2")
			s := &Selector{
				Platform:        POSIX,
				AlreadyElevated: func() bool { return tt.elevated },
				LookPath:        fakePath("pkexec", "sudo"),
				Getenv:          noEnv,
			}
			if _, err := s.Select(tt.flags(secret)); err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if string(secret) != "\x00\x00\x00\x00\x00\x00\x00" {
				t.Errorf("secret not zeroed: %q", secret)
			}
		})
	}
}

func TestSelect_SudoProbeFailureZeroesSecret(t *testing.T) {
	secret := []byte("pw")
	s := &Selector{Platform: POSIX, LookPath: fakePath(), Getenv: noEnv}

	if _, err := s.Select(Flags{Password: true, Secret: secret}); err == nil {
		t.Fatal("Select() expected error")
	}
	if string(secret) != "\x00\x00" {
		t.Errorf("secret not zeroed: %q", secret)
	}
}
