package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/distbuild/internal/pipeline"
	"git.home.luguber.info/inful/distbuild/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Mode    string `help:"Build mode (production|development)" enum:"production,development," default:"development"`
	Bundler string `help:"Override the bundler (esbuild|rollup)" enum:"esbuild,rollup,"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, w.Mode, w.Bundler, "")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	p, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return watch.New(cfg, p).Run(ctx)
}
