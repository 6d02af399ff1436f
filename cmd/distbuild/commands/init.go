package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/distbuild/internal/config"
	"git.home.luguber.info/inful/distbuild/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	slog.Info("Configuration file created", logfields.Path(root.Config))
	return nil
}
