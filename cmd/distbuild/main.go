package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/distbuild/cmd/distbuild/commands"
	"git.home.luguber.info/inful/distbuild/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("distbuild"),
		kong.Description("Publication build driver for dual-format (ESM + CJS) packages"),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{}, cli)
	ctx.FatalIfErrorf(err)
}
