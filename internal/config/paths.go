package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xdg/hostmcp/internal/pathutil"
)

// Dir returns the hostmcp configuration directory. By default this is
// ~/.config/hostmcp; $XDG_CONFIG_HOME/hostmcp is used when XDG_CONFIG_HOME
// is set to an absolute path.
func Dir() string {
	return filepath.Join(pathutil.XDGBase("XDG_CONFIG_HOME", ".config"), "hostmcp")
}

// EnsureDir creates dir with user-only permissions if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return nil
}

// DefaultPath returns the default configuration file path, Dir()/config.yaml.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}
