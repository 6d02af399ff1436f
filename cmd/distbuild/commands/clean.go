package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/distbuild/internal/clean"
	"git.home.luguber.info/inful/distbuild/internal/logfields"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, "", "", "")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dir, err := filepath.Abs(filepath.Join(cfg.ProjectRoot, cfg.Output.Directory))
	if err != nil {
		return err
	}
	if err := clean.New().Remove(dir); err != nil {
		return err
	}
	slog.Info("Output directory removed", logfields.Path(dir))
	return nil
}
