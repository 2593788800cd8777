// Package hostexec runs agent-supplied commands on the host.
//
// A request passes through validation, elevation selection, a bounded
// worker pool, the process runner and normalization, and exactly one audit
// entry is written for it. Every failure comes back as a typed error in
// the Outcome; nothing panics past Execute.
package hostexec

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/xdg/hostmcp/internal/audit"
	"github.com/xdg/hostmcp/internal/clog"
	"github.com/xdg/hostmcp/internal/elevation"
	"github.com/xdg/hostmcp/internal/executor"
	"github.com/xdg/hostmcp/internal/metrics"
	"github.com/xdg/hostmcp/internal/policy"
	"github.com/xdg/hostmcp/internal/tracing"
)

// ErrAbandoned means the caller's context ended before the request
// finished. A child that was already running is not killed; its audit
// entry is written when it exits.
var ErrAbandoned = errors.New("request abandoned by caller")

// Request is a decoded execution request.
type Request struct {
	Command string
	// Args are passed to the program verbatim. If nil and Command contains
	// whitespace, Command is split on whitespace instead.
	Args  []string
	Flags elevation.Flags
}

// Outcome is the result of one request.
type Outcome struct {
	RequestID string
	Status    audit.Status
	// Result is set for COMPLETED and FAILED outcomes.
	Result executor.Result
	// Err is the primary failure, or nil when the child ran to completion.
	Err error
	// AuditErr is set when the audit entry could not be written. It never
	// replaces Err or Result.
	AuditErr error
}

// Validator decides whether a command may run.
type Validator interface {
	Validate(command string, args []string) error
}

// Selector picks the elevation mechanism for a request.
type Selector interface {
	Select(flags elevation.Flags) (elevation.Mechanism, error)
}

// Recorder writes audit entries.
type Recorder interface {
	Log(e *audit.Entry) error
}

// Options configures a Service. Metrics and Tracer may be nil.
type Options struct {
	Validator Validator
	Selector  Selector
	Runner    executor.Runner
	Pool      *executor.Pool
	Audit     Recorder
	Metrics   *metrics.Metrics
	Tracer    trace.Tracer
}

// Service executes requests. It is safe for concurrent use.
type Service struct {
	validator Validator
	selector  Selector
	runner    executor.Runner
	pool      *executor.Pool
	audit     Recorder
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	newID     func() string
}

// New creates a Service.
func New(opts Options) *Service {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.Tracer(nil)
	}
	return &Service{
		validator: opts.Validator,
		selector:  opts.Selector,
		runner:    opts.Runner,
		pool:      opts.Pool,
		audit:     opts.Audit,
		metrics:   opts.Metrics,
		tracer:    tracer,
		newID:     uuid.NewString,
	}
}

// Check validates a request without running or auditing it.
func (s *Service) Check(req Request) error {
	command, args := Tokenize(req.Command, req.Args)
	return s.validator.Validate(command, args)
}

// Execute runs req and blocks until it completes or ctx ends. The secret
// in req.Flags is zeroed on every path.
func (s *Service) Execute(ctx context.Context, req Request) Outcome {
	id := s.newID()
	command, args := Tokenize(req.Command, req.Args)
	plain := displayLine(command, args)
	requested := requestedMethod(req.Flags)

	// The span ends when the audit entry is written, which for an abandoned
	// request happens on the worker after Execute has returned.
	ctx, span := s.tracer.Start(ctx, "hostexec.Execute", trace.WithAttributes(
		tracing.KeyRequestID.String(id),
		tracing.KeyProgram.String(policy.ProgramName(command)),
	))
	log := requestLog(id, span)

	if err := s.validator.Validate(command, args); err != nil {
		clear(req.Flags.Secret)
		log.Warn("exec: rejected %q: %v", plain, err)
		var rej *policy.Rejection
		if errors.As(err, &rej) {
			s.metrics.Rejection(rej.Reason())
		}
		return s.finish(span, id, audit.StatusRejected, requested, plain, err, executor.Result{})
	}

	mech, err := s.selector.Select(req.Flags)
	if err != nil {
		log.Warn("exec: elevation unavailable for %q: %v", plain, err)
		return s.finish(span, id, audit.StatusUnavailable, requested, plain, err, executor.Result{})
	}

	inv, err := mech.Prepare(command, args)
	if err != nil {
		clear(inv.Stdin)
		return s.finish(span, id, audit.StatusFailed, mech.Label(), plain, err, executor.Result{ExitCode: -1})
	}

	done := make(chan Outcome, 1)
	err = s.pool.Go(ctx, func() {
		done <- s.run(span, id, mech.Label(), inv)
	})
	if err != nil {
		clear(inv.Stdin)
		log.Info("exec: canceled before start: %v", err)
		o := s.finish(span, id, audit.StatusCanceled, mech.Label(), inv.Display, err, executor.Result{})
		o.Err = fmt.Errorf("%w: %w", ErrAbandoned, err)
		return o
	}

	select {
	case o := <-done:
		return o
	case <-ctx.Done():
		select {
		case o := <-done:
			return o
		default:
		}
		log.Warn("exec: caller gave up on running %q; it will be audited when it exits", inv.Display)
		return Outcome{
			RequestID: id,
			Err:       fmt.Errorf("%w: %w", ErrAbandoned, ctx.Err()),
		}
	}
}

// Drain stops accepting requests and blocks until all running children have
// exited and been audited. Requests arriving afterwards are audited as
// CANCELED with executor.ErrPoolClosed.
func (s *Service) Drain() {
	s.pool.Close()
	s.pool.Wait()
}

// run executes inv on a worker and audits the outcome.
func (s *Service) run(span trace.Span, id, method string, inv elevation.Invocation) Outcome {
	log := requestLog(id, span)
	log.Info("exec: running %q via %s", inv.Display, method)
	raw, err := s.runner.Run(inv)
	res := executor.Normalize(inv.Display, method, raw)

	if err != nil {
		log.Error("exec: %v", err)
		return s.finish(span, id, audit.StatusFailed, method, inv.Display, err, res)
	}
	log.Info("exec: exit %d after %s", res.ExitCode, res.Duration.Round(time.Millisecond))
	return s.finish(span, id, audit.StatusCompleted, method, inv.Display, nil, res)
}

// finish writes the single audit entry for a request and builds its Outcome.
func (s *Service) finish(span trace.Span, id string, status audit.Status, method, display string, err error, res executor.Result) Outcome {
	entry := &audit.Entry{
		Status:    status,
		RequestID: id,
		Method:    method,
		Cmd:       display,
		ExitCode:  res.ExitCode,
		Duration:  res.Duration,
	}
	if err != nil {
		entry.Details = err.Error()
	}

	auditErr := s.audit.Log(entry)
	if auditErr != nil {
		requestLog(id, span).Error("exec: %v", auditErr)
		s.metrics.AuditFailure()
	}
	s.metrics.Execution(method, string(status), res.Duration)

	span.SetAttributes(
		tracing.KeyMethod.String(method),
		tracing.KeyStatus.String(string(status)),
		tracing.KeyExitCode.Int(res.ExitCode),
	)
	tracing.RecordError(span, err)
	span.End()

	return Outcome{RequestID: id, Status: status, Result: res, Err: err, AuditErr: auditErr}
}

// Tokenize returns the program and arguments for a request. When args is
// nil, command is split on whitespace; no quoting or other shell syntax is
// interpreted.
func Tokenize(command string, args []string) (string, []string) {
	if args != nil {
		return strings.TrimSpace(command), args
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// requestLog binds the request ID, and the trace ID when the span is
// sampled, to operational log lines.
func requestLog(id string, span trace.Span) *clog.Fields {
	if sc := span.SpanContext(); sc.IsValid() {
		return clog.With("id", id, "trace", sc.TraceID().String())
	}
	return clog.With("id", id)
}

func requestedMethod(f elevation.Flags) string {
	switch {
	case f.Interactive:
		return "interactive"
	case f.Password:
		return elevation.LabelSudo
	default:
		return elevation.LabelNone
	}
}

func displayLine(command string, args []string) string {
	return strings.Join(append([]string{command}, args...), " ")
}
