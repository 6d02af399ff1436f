// Package clean removes the build output directory before a fresh build.
//
// The delete is delegated to the platform shell so that the semantics match
// what package maintainers run by hand: `rm -rf` on POSIX systems and
// `rd /s /q` on Windows. A missing directory is not an error.
package clean

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"git.home.luguber.info/inful/distbuild/internal/logfields"
)

// Cleaner deletes a directory tree using the platform shell.
type Cleaner struct {
	// goos overrides runtime.GOOS in tests.
	goos string
}

// New returns a Cleaner for the current platform.
func New() *Cleaner {
	return &Cleaner{goos: runtime.GOOS}
}

// Remove recursively and forcibly deletes dir. It is a silent no-op when the
// directory does not exist. Any shell failure is returned unwrapped in
// meaning: the pipeline treats it as fatal.
func (c *Cleaner) Remove(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	cmd := c.command(dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("remove %s: %w: %s", dir, err, out)
	}

	slog.Debug("Removed output directory", logfields.Path(dir))
	return nil
}

// command selects the platform delete command.
func (c *Cleaner) command(dir string) *exec.Cmd {
	if c.goos == "windows" {
		return exec.Command("cmd", "/c", "rd", "/s", "/q", dir)
	}
	return exec.Command("rm", "-rf", dir)
}
