package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfigExists is returned by WriteDefault when the file already exists
// and overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes the commented default configuration to path, creating
// the parent directory. An existing file is only replaced when force is set.
// The file is written with 0600 permissions.
func WriteDefault(path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
