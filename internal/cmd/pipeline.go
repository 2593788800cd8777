package cmd

import (
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/xdg/hostmcp/internal/audit"
	"github.com/xdg/hostmcp/internal/config"
	"github.com/xdg/hostmcp/internal/elevation"
	"github.com/xdg/hostmcp/internal/executor"
	"github.com/xdg/hostmcp/internal/hostexec"
	"github.com/xdg/hostmcp/internal/metrics"
	"github.com/xdg/hostmcp/internal/policy"
	"github.com/xdg/hostmcp/internal/prompt"
)

// Seams replaced by tests.
var (
	newRunner   = func() executor.Runner { return executor.NewRealRunner() }
	newSelector = func() hostexec.Selector { return elevation.NewSelector() }

	secretReader prompt.SecretReader = prompt.NewTerminalSecretReader(os.Stdin, os.Stderr)
	confirmer    prompt.Confirmer    = prompt.NewLineConfirmer(os.Stdin, os.Stderr)
)

// buildService wires the execution pipeline from cfg. m and tracer may be nil.
func buildService(cfg *config.Config, m *metrics.Metrics, tracer trace.Tracer) *hostexec.Service {
	return hostexec.New(hostexec.Options{
		Validator: policy.NewValidator(policy.NewAllowList(cfg.AllowedCommands)),
		Selector:  newSelector(),
		Runner:    newRunner(),
		Pool:      executor.NewPool(cfg.Execution.MaxConcurrent),
		Audit:     audit.NewLogger(audit.NewFileWriter(cfg.AuditLog)),
		Metrics:   m,
		Tracer:    tracer,
	})
}
