package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/xdg/hostmcp/internal/clog"
	"github.com/xdg/hostmcp/internal/config"
	"github.com/xdg/hostmcp/internal/mcpserver"
	"github.com/xdg/hostmcp/internal/metrics"
	"github.com/xdg/hostmcp/internal/tracing"
	"github.com/xdg/hostmcp/internal/version"
)

// drainTimeout bounds how long serve waits for running children to exit
// and be audited after the client disconnects.
const drainTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP on stdin/stdout",
	Long: `Serve the Model Context Protocol on stdin and stdout.

This is the command an MCP client launches. Operational logs go to the log file
(log.file in the config, or $XDG_STATE_HOME/hostmcp/hostmcp.log), never to the
terminal, since stdout carries the protocol.

If metrics.listen is set, Prometheus metrics are served on /metrics at that address.
If tracing.endpoint is set, one span per execution request is exported over OTLP/gRPC.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, true); err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = clog.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.NewRegistry())
	if cfg.Metrics.Listen != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Listen); err != nil {
				clog.Error("metrics server: %v", err)
			}
		}()
	}

	tp, shutdownTracing, err := tracing.New(ctx, tracingConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			clog.Warn("tracing shutdown: %v", err)
		}
	}()

	svc := buildService(cfg, m, tracing.Tracer(tp))
	srv := mcpserver.New(mcpserver.Options{Exec: svc})

	clog.Info("hostmcp serving: %d allowed commands, audit log %s, max %d concurrent",
		len(cfg.AllowedCommands), cfg.AuditLog, cfg.Execution.MaxConcurrent)

	err = srv.Serve(ctx, os.Stdin, os.Stdout)
	drain(svc.Drain, drainTimeout)
	clog.Info("hostmcp stopped")

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func tracingConfig(cfg *config.Config) tracing.Config {
	return tracing.Config{
		ServiceName:    "hostmcp",
		ServiceVersion: version.Version,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SampleRatio:    cfg.Tracing.SampleRatio,
	}
}

// drain calls wait and returns when it does or after timeout, whichever is
// first. Children still running past the timeout are left to finish.
func drain(wait func(), timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		clog.Warn("shutdown: children still running after %s; their audit entries may be lost", timeout)
	}
}
