// Package pipeline runs the publication build as a strict sequential chain
// of typed stages: clean the output directory, bundle the entry point, copy
// static publication files, stamp the version placeholder, sanitize the
// copied manifest. The first fatal error aborts the remaining stages and
// leaves the output directory in whatever partial state it reached.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/distbuild/internal/bundler"
	"git.home.luguber.info/inful/distbuild/internal/clean"
	"git.home.luguber.info/inful/distbuild/internal/config"
	"git.home.luguber.info/inful/distbuild/internal/logfields"
	"git.home.luguber.info/inful/distbuild/internal/manifest"
	"git.home.luguber.info/inful/distbuild/internal/stamp"
	"git.home.luguber.info/inful/distbuild/internal/staticfiles"
)

// Pipeline wires a configuration and a bundler into a runnable build.
type Pipeline struct {
	cfg *config.Config
	b   bundler.Bundler
}

// New constructs a Pipeline. The bundler is injected so callers (and tests)
// control which realization runs.
func New(cfg *config.Config, b bundler.Bundler) *Pipeline {
	return &Pipeline{cfg: cfg, b: b}
}

// FromConfig constructs a Pipeline with the bundler the config selects.
func FromConfig(cfg *config.Config) (*Pipeline, error) {
	b, err := bundler.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(cfg, b), nil
}

// Run executes all stages in order and reports elapsed wall-clock time. The
// returned report is valid even when err is non-nil.
func (p *Pipeline) Run(ctx context.Context) (*BuildReport, error) {
	opts, err := bundler.OptionsFromConfig(p.cfg)
	if err != nil {
		return nil, err
	}

	bs := newBuildState(p.cfg, p.b, opts)
	slog.Info("Starting build",
		logfields.RunID(bs.RunID),
		logfields.Bundler(p.b.Name()),
		logfields.Mode(p.cfg.Build.Mode),
		logfields.Path(opts.OutDir))

	start := time.Now()
	runErr := runStages(ctx, bs, orderedStages())
	bs.Report.Elapsed = time.Since(start)

	if runErr != nil {
		return bs.Report, runErr
	}

	slog.Info(fmt.Sprintf("Build completed in %s", FormatElapsed(bs.Report.Elapsed)),
		logfields.RunID(bs.RunID),
		slog.Int("artifacts", len(bs.Report.Artifacts)))
	return bs.Report, nil
}

// orderedStages is the canonical stage chain. Ordering is the only mutual
// exclusion discipline: stamp_version needs the bundle artifact, and
// sanitize_manifest needs the manifest copied by copy_static.
func orderedStages() []StageDef {
	return []StageDef{
		{Name: StageCleanOutput, Fn: stageCleanOutput},
		{Name: StageBundle, Fn: stageBundle},
		{Name: StageCopyStatic, Fn: stageCopyStatic},
		{Name: StageStampVersion, Fn: stageStampVersion},
		{Name: StageSanitizeManifest, Fn: stageSanitizeManifest},
	}
}

// Individual stage implementations.

func stageCleanOutput(_ context.Context, bs *BuildState) error {
	if err := clean.New().Remove(bs.Opts.OutDir); err != nil {
		return newFatalStageError(StageCleanOutput, fmt.Errorf("%w: %v", ErrClean, err))
	}
	return nil
}

func stageBundle(ctx context.Context, bs *BuildState) error {
	res, err := bs.Bundler.Bundle(ctx, bs.Opts)
	if err != nil {
		return newFatalStageError(StageBundle, fmt.Errorf("%w: %v", ErrBundle, err))
	}
	bs.Artifacts = res
	for _, f := range bs.Opts.Formats {
		bs.Report.Artifacts = append(bs.Report.Artifacts, res.Artifacts[f])
	}
	return nil
}

func stageCopyStatic(_ context.Context, bs *BuildState) error {
	res, err := staticfiles.Copy(bs.Opts.ProjectRoot, bs.Opts.OutDir, bs.Config.StaticFiles)
	bs.Report.CopiedFiles = res.Copied
	bs.Report.SkippedFiles = res.Skipped
	if err != nil {
		return newFatalStageError(StageCopyStatic, fmt.Errorf("%w: %v", ErrCopy, err))
	}
	return nil
}

// stageStampVersion reads the version from the SOURCE manifest, not the
// copy in the output directory.
func stageStampVersion(_ context.Context, bs *BuildState) error {
	m, err := manifest.Load(bs.SourceManifestPath())
	if err != nil {
		return newFatalStageError(StageStampVersion, fmt.Errorf("%w: %v", ErrStamp, err))
	}
	version, err := m.Version()
	if err != nil {
		return newFatalStageError(StageStampVersion, fmt.Errorf("%w: %v", ErrStamp, err))
	}

	artifact := bs.StampArtifactPath()
	if artifact == "" {
		return newFatalStageError(StageStampVersion, fmt.Errorf("%w: no artifact to stamp", ErrStamp))
	}
	token := bs.Config.Stamp.Token
	if token == "" {
		token = stamp.DefaultToken
	}
	if err := stamp.File(artifact, token, version); err != nil {
		return newFatalStageError(StageStampVersion, fmt.Errorf("%w: %v", ErrStamp, err))
	}
	return nil
}

// stageSanitizeManifest rewrites the COPIED manifest in place for publication.
func stageSanitizeManifest(_ context.Context, bs *BuildState) error {
	path := bs.OutputManifestPath()
	m, err := manifest.Load(path)
	if err != nil {
		return newFatalStageError(StageSanitizeManifest, fmt.Errorf("%w: %v", ErrManifest, err))
	}
	m.Sanitize()
	if err := m.Save(path); err != nil {
		return newFatalStageError(StageSanitizeManifest, fmt.Errorf("%w: %v", ErrManifest, err))
	}
	slog.Debug("Sanitized manifest for publication", logfields.Path(path))
	return nil
}
