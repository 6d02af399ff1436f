package clean

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRemoveDeletesTree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "index.cjs"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := New().Remove(dir); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("directory still exists: %s", dir)
	}
}

func TestRemoveMissingDirIsNoop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	if err := New().Remove(dir); err != nil {
		t.Errorf("Remove() on missing dir should be a no-op, got: %v", err)
	}
}

func TestCommandSelection(t *testing.T) {
	posix := &Cleaner{goos: "linux"}
	if got := posix.command("/tmp/x").Args; got[0] != "rm" {
		t.Errorf("posix delete command = %v, want rm -rf", got)
	}

	win := &Cleaner{goos: "windows"}
	args := win.command(`C:\tmp\x`).Args
	if runtime.GOOS != "windows" {
		// exec.Command resolves the binary lazily; only the argv matters here.
		if args[0] != "cmd" || args[2] != "rd" {
			t.Errorf("windows delete command = %v, want cmd /c rd /s /q", args)
		}
	}
}
