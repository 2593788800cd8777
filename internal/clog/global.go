package clog

import (
	"io"
	"log"
	"os"
	"strings"
)

var std = NewLogger()

func init() {
	std.SetErrOutput(os.Stderr)
}

// Options configures the process-wide logger.
type Options struct {
	// Path is the log file. Empty means no file.
	Path  string
	Level Level
	// Daemon silences stderr. Set it whenever stdio carries a protocol.
	Daemon bool
}

// Configure applies opts to the process-wide logger, closing any log file
// opened by an earlier call.
func Configure(opts Options) error {
	if err := Close(); err != nil {
		return err
	}
	std.SetLevel(opts.Level)
	std.SetDaemonMode(opts.Daemon)
	if opts.Path == "" {
		return nil
	}
	f, err := OpenLogFile(opts.Path)
	if err != nil {
		return err
	}
	std.SetFileOutput(f)
	return nil
}

func Debug(format string, args ...any) { std.Debug(format, args...) }
func Info(format string, args ...any)  { std.Info(format, args...) }
func Warn(format string, args ...any)  { std.Warn(format, args...) }
func Error(format string, args ...any) { std.Error(format, args...) }

// With binds key/value pairs on the process-wide logger.
func With(kv ...any) *Fields { return std.With(kv...) }

// Close closes the log file, if one is open.
func Close() error {
	std.mu.Lock()
	defer std.mu.Unlock()

	c, ok := std.file.(io.Closer)
	std.file = nil
	if !ok {
		return nil
	}
	return c.Close()
}

// Reset restores a fresh process-wide logger. Tests use it in cleanup.
func Reset() {
	std = NewLogger()
}

// ReplaceGlobal installs l as the process-wide logger and returns the old one.
func ReplaceGlobal(l *Logger) *Logger {
	old := std
	std = l
	return old
}

// StdLogger adapts clog to libraries that want a *log.Logger. Every line
// they print is logged at level.
func StdLogger(level Level) *log.Logger {
	return log.New(levelWriter(level), "", 0)
}

type levelWriter Level

func (w levelWriter) Write(p []byte) (int, error) {
	std.write(Level(w), strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
