// Package stamp rewrites the version placeholder in a built artifact.
package stamp

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/distbuild/internal/logfields"
)

// DefaultToken is the placeholder the bundled source carries in place of the
// real package version.
const DefaultToken = "{{version}}"

// File replaces the first occurrence of token in the artifact at path with
// version and writes the result back to the same path. A missing artifact is
// an error; an artifact without the token is left untouched (logged at warn).
func File(path, token, version string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	content := string(data)
	if !strings.Contains(content, token) {
		slog.Warn("Version placeholder not found in artifact", logfields.Artifact(path))
		return nil
	}

	// First occurrence only. Repeated tokens further down are the artifact's
	// own business (string literals in bundled dependency code, for example).
	updated := strings.Replace(content, token, version, 1)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	slog.Debug("Stamped version into artifact", logfields.Artifact(path), slog.String("version", version))
	return nil
}
