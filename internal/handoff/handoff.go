// Package handoff implements the single-slot URL handoff channel consumed by
// the external browser restart loop.
package handoff

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileHandoff writes the slot to a fixed-path scratch file. Every write is a
// full overwrite of the raw URL bytes: no trailing newline, no escaping, no
// locking. Last writer wins; the restart loop only ever cares about the
// newest value. The file outlives this process on purpose — it is the
// restart signal.
type FileHandoff struct {
	path string
}

// NewFileHandoff creates a FileHandoff at path, ensuring the parent
// directory exists.
func NewFileHandoff(path string) (*FileHandoff, error) {
	if path == "" {
		return nil, fmt.Errorf("handoff path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure handoff dir %s: %w", dir, err)
		}
	}
	return &FileHandoff{path: path}, nil
}

// Write implements interfaces.HandoffWriter.
func (h *FileHandoff) Write(url string) error {
	if err := os.WriteFile(h.path, []byte(url), 0o644); err != nil {
		return fmt.Errorf("write handoff %s: %w", h.path, err)
	}
	return nil
}

// Path implements interfaces.HandoffWriter.
func (h *FileHandoff) Path() string {
	return h.path
}
