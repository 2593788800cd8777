package audit

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter appends to a file, opening it for every write. Each Write is a
// single O_APPEND write, so lines from concurrent processes do not interleave,
// and a rotated or deleted file is recreated on the next entry.
type FileWriter struct {
	path string
}

// NewFileWriter returns a writer appending to path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write appends p to the file, creating it and its directory if absent.
func (w *FileWriter) Write(p []byte) (int, error) {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o700); err != nil {
		return 0, fmt.Errorf("create audit directory: %w", err)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(p)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}
