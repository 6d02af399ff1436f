package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/distbuild/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Override the output directory"`
	Mode    string `help:"Build mode (production|development). Precedence: flag > DISTBUILD_MODE > config." enum:"production,development,"`
	Bundler string `help:"Override the bundler (esbuild|rollup)" enum:"esbuild,rollup,"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, b.Mode, b.Bundler, b.Output)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	p, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}

	// Run to completion; the pipeline has no cancellation points of its own.
	_, err = p.Run(context.Background())
	return err
}
