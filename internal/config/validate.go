package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"unicode"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks a Config after defaults have been applied and returns an
// error naming the first invalid field. It rejects:
//   - empty allow-list entries or entries containing whitespace
//   - unknown log levels
//   - a worker bound below 1
//   - a metrics listen address that is not host:port with a valid port
//   - a tracing sample ratio outside [0, 1]
func Validate(cfg *Config) error {
	for i, name := range cfg.AllowedCommands {
		if name == "" {
			return fmt.Errorf("allowed_commands[%d]: must not be empty", i)
		}
		if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
			return fmt.Errorf("allowed_commands[%d]: %q must be a single program name", i, name)
		}
	}

	if cfg.Log.Level != "" && !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("log.level: invalid value %q, must be one of: debug, info, warn, error", cfg.Log.Level)
	}

	if cfg.Execution.MaxConcurrent < 1 {
		return fmt.Errorf("execution.max_concurrent: must be at least 1, got %d", cfg.Execution.MaxConcurrent)
	}

	if cfg.Metrics.Listen != "" {
		if err := validateListenAddr(cfg.Metrics.Listen, "metrics.listen"); err != nil {
			return err
		}
	}

	if r := cfg.Tracing.SampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("tracing.sample_ratio: must be between 0 and 1, got %g", r)
	}
	return nil
}

// validateListenAddr accepts ":port" or "host:port" with port 1-65535.
func validateListenAddr(addr, field string) error {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%s: invalid format %q, expected host:port or :port", field, addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("%s: invalid port %q in %q", field, portStr, addr)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s: invalid port number %d, must be 1-65535", field, port)
	}
	return nil
}
