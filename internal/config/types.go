// Package config loads, validates and writes the hostmcp configuration file.
package config

// Config is the top-level hostmcp configuration, loaded once at start.
type Config struct {
	// AllowedCommands is the ordered allow-list of program names. A command
	// is admitted when it, or its final path segment, equals an entry.
	AllowedCommands []string `yaml:"allowed_commands"`

	// AuditLog is the audit trail path. Relative paths are resolved against
	// the directory holding the configuration file.
	AuditLog string `yaml:"audit_log,omitempty"`

	Log       LogConfig       `yaml:"log,omitempty"`
	Execution ExecutionConfig `yaml:"execution,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	Tracing   TracingConfig   `yaml:"tracing,omitempty"`
}

// LogConfig configures the operational log.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// ExecutionConfig configures the worker pool that runs child processes.
type ExecutionConfig struct {
	// MaxConcurrent bounds how many children may run at once.
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	// Listen is a host:port address. Empty disables the endpoint.
	Listen string `yaml:"listen,omitempty"`
}

// TracingConfig configures OpenTelemetry span export.
type TracingConfig struct {
	// Endpoint is an OTLP/gRPC collector address. Empty disables tracing.
	Endpoint string `yaml:"endpoint,omitempty"`
	Insecure bool   `yaml:"insecure,omitempty"`
	// SampleRatio is the fraction of requests traced, in [0, 1]. Zero
	// traces everything.
	SampleRatio float64 `yaml:"sample_ratio,omitempty"`
}
