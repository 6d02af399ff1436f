package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyArtifact   = "artifact"
	KeyFormat     = "format"
	KeyBundler    = "bundler"
	KeyMode       = "mode"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Artifact(p string) slog.Attr     { return slog.String(KeyArtifact, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Bundler(b string) slog.Attr      { return slog.String(KeyBundler, b) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
