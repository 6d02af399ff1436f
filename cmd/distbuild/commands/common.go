package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/distbuild/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"distbuild.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Run the publication build pipeline"`
	Clean CleanCmd `cmd:"" help:"Remove the output directory"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
	Watch WatchCmd `cmd:"" help:"Rebuild on source changes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration and applies command-line overrides,
// which take precedence over both the config file and environment.
func loadConfig(path, mode, bundlerName, output string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if mode != "" {
		cfg.Build.Mode = mode
	}
	if bundlerName != "" {
		cfg.Build.Bundler = bundlerName
	}
	if output != "" {
		cfg.Output.Directory = output
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
