package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xdg/hostmcp/internal/clog"
	"github.com/xdg/hostmcp/internal/pathutil"
)

// Load reads the configuration at path, or DefaultPath() when path is empty.
// If the file doesn't exist, the commented default file is written there
// and Default() is returned. Defaults are applied to missing fields, the
// result is validated, and paths are expanded: ~ is resolved everywhere and
// a relative audit_log is anchored at the config file's directory.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	path = pathutil.ExpandHome(path)
	clog.Debug("config: loading %s", path)

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		clog.Info("config: %s not found, writing defaults", path)
		if writeErr := WriteDefault(path, false); writeErr != nil {
			clog.Warn("config: failed to write default config: %v", writeErr)
		}
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		cfg, err = Parse(data)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		applyDefaults(cfg)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	expandPaths(cfg, filepath.Dir(path))
	return cfg, nil
}

func expandPaths(cfg *Config, base string) {
	cfg.AuditLog = pathutil.Resolve(base, cfg.AuditLog)
	cfg.Log.File = pathutil.ExpandHome(cfg.Log.File)
}
