// Package term writes what the hostmcp CLI shows the operator. Operational
// logging lives in internal/clog, and `serve` never uses this package
// because its stdout carries the protocol.
//
// Output meant for stdout is dropped under --silent. Warnings, errors and
// a child's stderr always reach stderr.
package term

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

type console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	silent bool
}

var con = &console{out: os.Stdout, errOut: os.Stderr}

// toOut runs fn against stdout unless silent.
func (c *console) toOut(fn func(w io.Writer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.silent {
		fn(c.out)
	}
}

func (c *console) toErr(fn func(w io.Writer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.errOut)
}

func SetSilent(s bool) {
	con.mu.Lock()
	con.silent = s
	con.mu.Unlock()
}

// SetOutput redirects stdout output. nil restores os.Stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	con.mu.Lock()
	con.out = w
	con.mu.Unlock()
}

// SetErrOutput redirects stderr output. nil restores os.Stderr.
func SetErrOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	con.mu.Lock()
	con.errOut = w
	con.mu.Unlock()
}

func Printf(format string, a ...any) {
	con.toOut(func(w io.Writer) { _, _ = fmt.Fprintf(w, format, a...) })
}

func Println(a ...any) {
	con.toOut(func(w io.Writer) { _, _ = fmt.Fprintln(w, a...) })
}

// PrintJSON writes v as indented JSON and a newline. Encoding errors are
// returned even when silent.
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	con.toOut(func(w io.Writer) { _, err = fmt.Fprintf(w, "%s\n", data) })
	return err
}

// Passthrough relays a child's captured streams unchanged.
func Passthrough(stdout, stderr string) {
	con.toOut(func(w io.Writer) { _, _ = io.WriteString(w, stdout) })
	con.toErr(func(w io.Writer) { _, _ = io.WriteString(w, stderr) })
}

func Warn(format string, a ...any) {
	con.toErr(func(w io.Writer) { _, _ = fmt.Fprintf(w, "Warning: "+format+"\n", a...) })
}

func Error(format string, a ...any) {
	con.toErr(func(w io.Writer) { _, _ = fmt.Fprintf(w, "Error: "+format+"\n", a...) })
}

// Reset restores os.Stdout, os.Stderr and non-silent output.
func Reset() {
	con.mu.Lock()
	con.out, con.errOut, con.silent = os.Stdout, os.Stderr, false
	con.mu.Unlock()
}
