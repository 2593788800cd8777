package config

// DefaultMaxConcurrent is the worker pool bound used when none is configured.
const DefaultMaxConcurrent = 4

// DefaultAuditLog is the audit log file name, relative to the config directory.
const DefaultAuditLog = "audit.log"

// DefaultAllowedCommands is the baseline allow-list: read-only inspection
// tools, service and package managers, and rm (which is additionally
// restricted to safe target directories). Interpreters, shells and find
// are absent since each can run other programs or delete files.
func DefaultAllowedCommands() []string {
	return []string{
		// Files and text
		"ls", "cat", "head", "tail", "grep", "wc", "stat", "file",
		// System state
		"df", "du", "free", "uptime", "ps", "top", "uname", "hostname",
		"whoami", "id", "date", "lsblk", "lscpu", "lsof", "dmesg",
		// Services and logs
		"journalctl", "systemctl",
		// Network
		"ip", "ss", "ping",
		// Packages
		"apt", "apt-get", "dnf", "yum", "pacman",
		// Cleanup
		"rm",
		// Windows
		"ipconfig", "tasklist", "systeminfo",
	}
}

// Default returns a Config with every default populated.
func Default() *Config {
	cfg := &Config{AllowedCommands: DefaultAllowedCommands()}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills zero-valued fields. An explicitly empty allow-list is
// kept: it admits nothing.
func applyDefaults(cfg *Config) {
	if cfg.AuditLog == "" {
		cfg.AuditLog = DefaultAuditLog
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Execution.MaxConcurrent == 0 {
		cfg.Execution.MaxConcurrent = DefaultMaxConcurrent
	}
}

// defaultConfigTemplate is written on first run. It parses to Default()
// except for the audit log path, which Load resolves.
const defaultConfigTemplate = `# hostmcp configuration
#
# Commands an agent may run. A command is admitted when its name, or the
# last segment of its path, matches an entry exactly (case-sensitive).
# rm is only ever admitted for targets under /tmp, /var/tmp, /var/log,
# ~/.cache or ~/.local/share/Trash.
allowed_commands:
  - ls
  - cat
  - head
  - tail
  - grep
  - wc
  - stat
  - file
  - df
  - du
  - free
  - uptime
  - ps
  - top
  - uname
  - hostname
  - whoami
  - id
  - date
  - lsblk
  - lscpu
  - lsof
  - dmesg
  - journalctl
  - systemctl
  - ip
  - ss
  - ping
  - apt
  - apt-get
  - dnf
  - yum
  - pacman
  - rm
  - ipconfig
  - tasklist
  - systeminfo

# Append-only audit trail, one line per execution attempt.
# Relative paths are resolved against this file's directory.
audit_log: audit.log

log:
  # Operational log file (default: ~/.local/state/hostmcp/hostmcp.log)
  # file: ~/.local/state/hostmcp/hostmcp.log
  level: info

execution:
  # Maximum number of commands running at once.
  max_concurrent: 4

metrics:
  # Prometheus endpoint, e.g. "127.0.0.1:9464". Empty disables it.
  # listen: 127.0.0.1:9464

tracing:
  # OTLP/gRPC collector for execution spans, e.g. "localhost:4317".
  # Empty disables tracing.
  # endpoint: localhost:4317
  # insecure: true
  # sample_ratio: 1.0
`
