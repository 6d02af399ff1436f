package pipeline

import (
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/distbuild/internal/bundler"
	"git.home.luguber.info/inful/distbuild/internal/config"
)

// manifestFile is the package manifest filename at the project root and in
// the output directory.
const manifestFile = "package.json"

// BuildState carries mutable state across stages of one run.
type BuildState struct {
	Config  *config.Config
	Bundler bundler.Bundler
	Opts    bundler.Options
	RunID   string
	Report  *BuildReport

	// Artifacts is populated by the bundle stage.
	Artifacts bundler.Result
}

// newBuildState constructs a BuildState with a fresh run ID.
func newBuildState(cfg *config.Config, b bundler.Bundler, opts bundler.Options) *BuildState {
	runID := uuid.NewString()
	return &BuildState{
		Config:  cfg,
		Bundler: b,
		Opts:    opts,
		RunID:   runID,
		Report:  newBuildReport(runID, b.Name(), cfg.Build.Mode),
	}
}

// SourceManifestPath is the manifest at the project root (read-only input).
func (bs *BuildState) SourceManifestPath() string {
	return filepath.Join(bs.Opts.ProjectRoot, manifestFile)
}

// OutputManifestPath is the copied manifest inside the output directory.
func (bs *BuildState) OutputManifestPath() string {
	return filepath.Join(bs.Opts.OutDir, manifestFile)
}

// StampArtifactPath resolves which artifact the version stamp applies to:
// the configured override when set, else the bundler's primary artifact.
func (bs *BuildState) StampArtifactPath() string {
	if a := bs.Config.Stamp.Artifact; a != "" {
		if filepath.IsAbs(a) {
			return a
		}
		return filepath.Join(bs.Opts.ProjectRoot, a)
	}
	return bs.Artifacts.Primary
}
