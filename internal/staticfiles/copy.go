// Package staticfiles copies auxiliary publication files (manifest, readme,
// npm config files) from the project root into the output directory.
package staticfiles

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/distbuild/internal/logfields"
)

// Spec describes one file to copy. Paths are relative to the project root and
// output directory respectively.
type Spec struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source,omitempty"`      // defaults to Name
	Dest     string `yaml:"destination,omitempty"` // defaults to Name
	Optional bool   `yaml:"optional,omitempty"`
}

// SourcePath resolves the absolute source path for the spec.
func (s Spec) SourcePath(projectRoot string) string {
	src := s.Source
	if src == "" {
		src = s.Name
	}
	return filepath.Join(projectRoot, src)
}

// DestPath resolves the absolute destination path for the spec.
func (s Spec) DestPath(outputDir string) string {
	dst := s.Dest
	if dst == "" {
		dst = s.Name
	}
	return filepath.Join(outputDir, dst)
}

// Result summarizes a copy pass.
type Result struct {
	Copied  []string
	Skipped []string
}

// Copy runs the specs in order. A failed optional copy is logged and skipped;
// a failed required copy aborts immediately. Order matters only for log
// readability, the copies are independent of each other.
func Copy(projectRoot, outputDir string, specs []Spec) (Result, error) {
	var res Result
	for _, spec := range specs {
		src := spec.SourcePath(projectRoot)
		dst := spec.DestPath(outputDir)

		if err := copyFile(src, dst); err != nil {
			if spec.Optional {
				slog.Info("Skipping optional file", logfields.File(spec.Name), logfields.Error(err))
				res.Skipped = append(res.Skipped, spec.Name)
				continue
			}
			return res, fmt.Errorf("copy %s: file must exist: %w", spec.Name, err)
		}

		slog.Debug("Copied static file", logfields.File(spec.Name), logfields.Path(dst))
		res.Copied = append(res.Copied, spec.Name)
	}
	return res, nil
}

// copyFile copies a single file from src to dst, creating parent directories.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	return dstFile.Sync()
}
