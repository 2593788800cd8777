package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde only", "~", home},
		{"tilde with subpath", "~/Documents", filepath.Join(home, "Documents")},
		{"tilde with nested subpath", "~/foo/bar/baz", filepath.Join(home, "foo", "bar", "baz")},
		{"absolute path unchanged", "/usr/local/bin", "/usr/local/bin"},
		{"relative path unchanged", "relative/path", "relative/path"},
		{"empty string unchanged", "", ""},
		{"tilde user form unchanged", "~other/file", "~other/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.input); got != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	base := t.TempDir()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"relative joins base", "audit.log", filepath.Join(base, "audit.log")},
		{"absolute kept", "/var/log/hostmcp.log", "/var/log/hostmcp.log"},
		{"tilde expanded", "~/audit.log", filepath.Join(home, "audit.log")},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(base, tt.input); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestXDGBase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got := XDGBase("XDG_CONFIG_HOME", ".config"); got != dir {
		t.Errorf("XDGBase() = %q, want %q", got, dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "relative/dir")
	want := ExpandHome("~/.config")
	if got := XDGBase("XDG_CONFIG_HOME", ".config"); got != want {
		t.Errorf("XDGBase() with relative env = %q, want %q", got, want)
	}
}
