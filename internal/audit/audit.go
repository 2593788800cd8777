// Package audit records one line per command execution attempt.
// Entries follow a key=value format suitable for parsing and analysis:
//
//	2024-01-15T14:32:05Z EXEC COMPLETED id=5f0c... method="sudo" cmd="sudo apt update" exit=0 duration=2.3s
//	2024-01-15T14:32:06Z EXEC REJECTED id=9a1e... method="none" cmd="python3 x.py" details="not allowed: ..."
//
// The trail is append-only. Secrets are never passed to this package.
package audit

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrWriteFailure is returned when an entry could not be appended. It is a
// secondary error: the execution outcome it describes still stands.
var ErrWriteFailure = errors.New("audit write failed")

// Status is the outcome tag of an execution attempt.
type Status string

// Statuses, one per terminal state of a request.
const (
	// StatusRejected means validation refused the command. Nothing ran.
	StatusRejected Status = "REJECTED"
	// StatusUnavailable means the requested elevation helper is missing.
	StatusUnavailable Status = "UNAVAILABLE"
	// StatusCompleted means the child ran to completion, whatever its exit code.
	StatusCompleted Status = "COMPLETED"
	// StatusFailed means the child could not be spawned or waited on.
	StatusFailed Status = "FAILED"
	// StatusCanceled means the caller gave up before a worker picked the
	// request up. Nothing ran.
	StatusCanceled Status = "CANCELED"
)

// Entry is a single audit record.
type Entry struct {
	Timestamp time.Time
	Status    Status

	// RequestID correlates the entry with operational log lines.
	RequestID string

	// Method is the elevation label (none, sudo, ...).
	Method string

	// Cmd is the display command. It never contains a secret.
	Cmd string

	// ExitCode and Duration are only written for COMPLETED entries.
	ExitCode int
	Duration time.Duration

	// Details is optional free text, such as a rejection reason.
	Details string
}

// Format returns the entry as a single line without a trailing newline.
func (e *Entry) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" EXEC ")
	b.WriteString(string(e.Status))

	writeOptionalRaw(&b, "id", e.RequestID)
	writeOptionalField(&b, "method", e.Method)
	b.WriteString(" cmd=")
	b.WriteString(quoteValue(e.Cmd))

	if e.Status == StatusCompleted {
		b.WriteString(" exit=")
		b.WriteString(strconv.Itoa(e.ExitCode))
		b.WriteString(" duration=")
		b.WriteString(formatDuration(e.Duration))
	}
	writeOptionalField(&b, "details", e.Details)

	return b.String()
}

func writeOptionalRaw(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(value)
}

func writeOptionalField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	writeOptionalRaw(b, key, quoteValue(value))
}

// quoteValue quotes s with Go escaping, so embedded newlines cannot break
// the one-line-per-entry layout.
func quoteValue(s string) string {
	return strconv.Quote(s)
}

// formatDuration formats a duration as a short human-readable string
// (e.g., "4.2ms", "2.3s", "1m30s").
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// Logger serializes entries onto an io.Writer, one Write call per line.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewLogger creates a new audit logger that writes to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Log writes e, stamping it with the current time if Timestamp is zero.
// A nil Logger discards entries.
func (l *Logger) Log(e *Entry) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}
	line := e.Format() + "\n"
	if _, err := io.WriteString(l.w, line); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return nil
}

// record appends a minimal entry with a status, command text and optional
// details.
func (l *Logger) record(cmd string, status Status, details string) error {
	return l.Log(&Entry{Status: status, Cmd: cmd, Details: details})
}
