// Package watch reruns the build pipeline when source files change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/distbuild/internal/config"
	"git.home.luguber.info/inful/distbuild/internal/logfields"
	"git.home.luguber.info/inful/distbuild/internal/pipeline"
)

// Watcher debounces filesystem events over the configured paths and reruns
// the pipeline on each flush. A failing rebuild is logged, never fatal: the
// watcher must outlive broken intermediate states of the source tree.
type Watcher struct {
	cfg *config.Config
	p   *pipeline.Pipeline
}

// New constructs a Watcher around an already-wired pipeline.
func New(cfg *config.Config, p *pipeline.Pipeline) *Watcher {
	return &Watcher{cfg: cfg, p: p}
}

// Run performs one initial build, then watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = fsw.Close()
	}()

	root, err := filepath.Abs(w.cfg.ProjectRoot)
	if err != nil {
		return err
	}
	outDir := filepath.Join(root, w.cfg.Output.Directory)

	for _, p := range w.cfg.Watch.Paths {
		if err := addRecursive(fsw, filepath.Join(root, p), outDir); err != nil {
			return err
		}
	}

	w.build(ctx)

	debounce := time.Duration(w.cfg.Watch.DebounceMS) * time.Millisecond
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	slog.Info("Watching for changes", slog.Any("paths", w.cfg.Watch.Paths))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			// New directories must join the watch set before their
			// contents change.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(fsw, event.Name, outDir)
				}
			}
			timer.Reset(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-timer.C:
			w.build(ctx)
		}
	}
}

func (w *Watcher) build(ctx context.Context) {
	if _, err := w.p.Run(ctx); err != nil {
		slog.Error("Rebuild failed", logfields.Error(err))
	}
}

// addRecursive watches dir and every subdirectory, skipping the output
// directory and node_modules.
func addRecursive(fsw *fsnotify.Watcher, dir, outDir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path == outDir || d.Name() == "node_modules" {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
