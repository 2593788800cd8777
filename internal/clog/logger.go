// Package clog is the hostmcp operational log.
//
// It is separate from the audit trail in internal/audit, which records one
// line per execution attempt, and from CLI output in internal/term.
// Lines at or above the configured level go to the log file. Warnings and
// errors are echoed to stderr unless the process is serving over stdio
// (daemon mode). Nothing is written to stdout.
package clog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xdg/hostmcp/internal/pathutil"
)

// Level is a message severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a config value onto a Level. Unrecognized values mean
// LevelInfo, since config validation has already rejected bad input.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error", "err":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes leveled lines. The zero value is not usable; call NewLogger.
type Logger struct {
	mu     sync.Mutex
	level  Level
	file   io.Writer
	stderr io.Writer
	daemon bool
	now    func() time.Time
}

// NewLogger returns a Logger at LevelInfo that echoes warnings to
// os.Stderr and has no file.
func NewLogger() *Logger {
	return &Logger{level: LevelInfo, stderr: os.Stderr, now: time.Now}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// SetFileOutput replaces the file writer. nil disables file output.
func (l *Logger) SetFileOutput(w io.Writer) {
	l.mu.Lock()
	l.file = w
	l.mu.Unlock()
}

// SetErrOutput replaces the stderr writer. nil disables it.
func (l *Logger) SetErrOutput(w io.Writer) {
	l.mu.Lock()
	l.stderr = w
	l.mu.Unlock()
}

// SetDaemonMode turns the stderr echo off (true) or on (false).
func (l *Logger) SetDaemonMode(daemon bool) {
	l.mu.Lock()
	l.daemon = daemon
	l.mu.Unlock()
}

func (l *Logger) Debug(format string, args ...any) { l.write(LevelDebug, fmt.Sprintf(format, args...)) }
func (l *Logger) Info(format string, args ...any)  { l.write(LevelInfo, fmt.Sprintf(format, args...)) }
func (l *Logger) Warn(format string, args ...any)  { l.write(LevelWarn, fmt.Sprintf(format, args...)) }
func (l *Logger) Error(format string, args ...any) { l.write(LevelError, fmt.Sprintf(format, args...)) }

// With returns a view of l that appends the key/value pairs in kv to every
// message.
func (l *Logger) With(kv ...any) *Fields {
	return &Fields{l: l, suffix: formatFields(kv)}
}

func (l *Logger) write(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	if l.file != nil {
		_, _ = fmt.Fprintf(l.file, "%s [%s] %s\n", l.now().UTC().Format(time.RFC3339), level, msg)
	}
	if l.stderr != nil && !l.daemon && level >= LevelWarn {
		_, _ = fmt.Fprintf(l.stderr, "[%s] %s\n", level, msg)
	}
}

// Fields is a Logger bound to a fixed set of key=value pairs, such as the
// request ID of one execution.
type Fields struct {
	l      *Logger
	suffix string
}

// With returns a view carrying f's pairs followed by kv.
func (f *Fields) With(kv ...any) *Fields {
	return &Fields{l: f.l, suffix: f.suffix + formatFields(kv)}
}

func (f *Fields) Debug(format string, args ...any) { f.emit(LevelDebug, format, args) }
func (f *Fields) Info(format string, args ...any)  { f.emit(LevelInfo, format, args) }
func (f *Fields) Warn(format string, args ...any)  { f.emit(LevelWarn, format, args) }
func (f *Fields) Error(format string, args ...any) { f.emit(LevelError, format, args) }

func (f *Fields) emit(level Level, format string, args []any) {
	f.l.write(level, fmt.Sprintf(format, args...)+f.suffix)
}

// formatFields renders pairs as " k=v k=v". Values containing spaces or
// quotes are quoted. A trailing key without a value is dropped.
func formatFields(kv []any) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		v := fmt.Sprint(kv[i+1])
		if v == "" || strings.ContainsAny(v, " \t\n\"=") {
			v = strconv.Quote(v)
		}
		fmt.Fprintf(&b, " %v=%s", kv[i], v)
	}
	return b.String()
}

// OpenLogFile opens path for appending, creating parent directories.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// DefaultLogPath is $XDG_STATE_HOME/hostmcp/hostmcp.log, or
// ~/.local/state/hostmcp/hostmcp.log when the variable is unset.
func DefaultLogPath() string {
	return filepath.Join(pathutil.XDGBase("XDG_STATE_HOME", ".local/state"), "hostmcp", "hostmcp.log")
}
