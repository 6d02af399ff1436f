// Package workspace manages ephemeral scratch directories for generated
// bundler configuration.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/distbuild/internal/logfields"
)

// Manager owns one ephemeral timestamped scratch directory.
type Manager struct {
	baseDir string
	dir     string
}

// NewManager creates a workspace manager rooted at baseDir (os.TempDir when
// empty). The directory itself is created by Create.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// Create creates the timestamped workspace directory.
func (m *Manager) Create() error {
	timestamp := time.Now().Format("20060102-150405")
	dir := filepath.Join(m.baseDir, fmt.Sprintf("distbuild-%s", timestamp))

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// Path returns the workspace directory, empty before Create.
func (m *Manager) Path() string {
	return m.dir
}

// WriteFile writes a file into the workspace and returns its absolute path.
func (m *Manager) WriteFile(name string, data []byte) (string, error) {
	if m.dir == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write workspace file: %w", err)
	}
	return path, nil
}

// Cleanup removes the workspace directory.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
