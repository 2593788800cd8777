// Package metrics exposes Prometheus counters for command execution.
//
// Metrics live on their own registry rather than the global default, so
// tests and multiple servers in one process don't collide.
//
// Usage:
//
//	m := metrics.New(prometheus.NewRegistry())
//	m.Execution("sudo", "COMPLETED", time.Since(start))
//	m.Rejection("not_allowed")
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xdg/hostmcp/internal/clog"
)

// Metrics holds the execution metrics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// Executions counts finished requests.
	// Labels: method (none|sudo|pkexec (PolicyKit)|UAC), status (audit status)
	Executions *prometheus.CounterVec

	// Rejections counts requests refused by validation.
	// Labels: reason (not_allowed|unsafe_target)
	Rejections *prometheus.CounterVec

	// AuditFailures counts audit entries that could not be written.
	AuditFailures prometheus.Counter

	// Duration measures child run time in seconds.
	// Labels: method
	// Buckets: 0.01s to 300s; interactive elevation waits on a human.
	Duration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the metrics and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Executions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostmcp_executions_total",
				Help: "Total number of execution requests by elevation method and outcome status",
			},
			[]string{"method", "status"},
		),
		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostmcp_rejections_total",
				Help: "Total number of commands rejected by validation, by reason",
			},
			[]string{"reason"},
		),
		AuditFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hostmcp_audit_failures_total",
				Help: "Total number of audit entries that could not be written",
			},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hostmcp_execution_duration_seconds",
				Help:    "Duration of executed commands in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"method"},
		),
		gatherer: reg,
	}
}

// Execution records a finished request. The duration is only observed for
// requests that spawned a child.
func (m *Metrics) Execution(method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.Executions.WithLabelValues(method, status).Inc()
	if d > 0 {
		m.Duration.WithLabelValues(method).Observe(d.Seconds())
	}
}

// Rejection records a validation rejection.
func (m *Metrics) Rejection(reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(reason).Inc()
}

// AuditFailure records a failed audit write.
func (m *Metrics) AuditFailure() {
	if m == nil {
		return
	}
	m.AuditFailures.Inc()
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	clog.Info("metrics: serving on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
