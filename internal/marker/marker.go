// Package marker manages the sentinel file whose presence means the
// local-to-server migration has been performed. Content is informational only.
package marker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Marker is the completion sentinel at a fixed path
type Marker struct {
	path string
	now  func() time.Time
}

// New returns a marker stored at path
func New(path string) *Marker {
	return &Marker{path: path, now: time.Now}
}

// WithClock replaces the time source used for the written timestamp
func (m *Marker) WithClock(now func() time.Time) *Marker {
	m.now = now
	return m
}

// Path returns the marker location
func (m *Marker) Path() string {
	return m.path
}

// Exists reports whether the marker file is present
func (m *Marker) Exists() (bool, error) {
	_, err := os.Stat(m.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat migration marker: %w", err)
}

// Write records completion with the current UTC time in RFC 3339 form. The
// file is written to a temp name and renamed so a crash never leaves a
// half-written marker.
func (m *Marker) Write() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create marker directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(m.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create marker: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	stamp := m.now().UTC().Format(time.RFC3339Nano)
	if _, err := tmp.WriteString(stamp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write marker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write marker: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to write marker: %w", err)
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		return fmt.Errorf("failed to persist marker: %w", err)
	}
	return nil
}
