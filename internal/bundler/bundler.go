// Package bundler abstracts the tool that turns the entry point into
// distributable artifacts. The pipeline treats a bundler as opaque: options
// in, artifacts or a fatal error out.
package bundler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/distbuild/internal/config"
)

// Format is a distributable module format.
type Format string

const (
	FormatESM Format = "esm"
	FormatCJS Format = "cjs"
)

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	if f == FormatCJS {
		return ".cjs"
	}
	return ".mjs"
}

// Options is the bundler-independent build configuration.
type Options struct {
	ProjectRoot string // working directory for external tools
	EntryPoint  string // absolute path to the entry source file
	OutDir      string // absolute path to the output directory
	Formats     []Format

	Minify           bool
	Sourcemap        bool
	ExternalPackages bool // keep third-party dependencies out of the bundle
	TreeShaking      bool
	Tsconfig         string // type-stripping rules, relative to ProjectRoot
	MainFields       []string
	Conditions       []string
}

// Result reports the artifacts a bundle run produced.
type Result struct {
	// Artifacts maps each requested format to its output path.
	Artifacts map[Format]string
	// Primary is the artifact the version stamp applies to: the CJS output
	// when built, otherwise the first requested format.
	Primary string
}

// Bundler produces artifacts from one entry point. Implementations must not
// recover from tool failures; any error aborts the pipeline.
type Bundler interface {
	Name() string
	Bundle(ctx context.Context, opts Options) (Result, error)
}

// OutFile returns the output path for the entry point in the given format:
// the entry basename with the format extension, inside OutDir.
func (o Options) OutFile(f Format) string {
	base := filepath.Base(o.EntryPoint)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(o.OutDir, base+f.Extension())
}

// newResult assembles a Result for the requested formats.
func newResult(opts Options) Result {
	res := Result{Artifacts: make(map[Format]string, len(opts.Formats))}
	for _, f := range opts.Formats {
		res.Artifacts[f] = opts.OutFile(f)
	}
	if p, ok := res.Artifacts[FormatCJS]; ok {
		res.Primary = p
	} else if len(opts.Formats) > 0 {
		res.Primary = res.Artifacts[opts.Formats[0]]
	}
	return res
}

// FromConfig selects the configured bundler implementation.
func FromConfig(cfg *config.Config) (Bundler, error) {
	switch cfg.Build.Bundler {
	case config.BundlerESBuild:
		return NewESBuild(), nil
	case config.BundlerRollup:
		return NewRollup(cfg.Build.RollupConfig), nil
	default:
		return nil, fmt.Errorf("unknown bundler: %s", cfg.Build.Bundler)
	}
}

// OptionsFromConfig resolves config into bundler options with absolute paths.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return Options{}, fmt.Errorf("resolve project root: %w", err)
	}

	formats := make([]Format, 0, len(cfg.Build.Formats))
	for _, f := range cfg.Build.Formats {
		formats = append(formats, Format(f))
	}

	return Options{
		ProjectRoot:      root,
		EntryPoint:       filepath.Join(root, cfg.Entry),
		OutDir:           filepath.Join(root, cfg.Output.Directory),
		Formats:          formats,
		Minify:           cfg.Build.Minify(),
		Sourcemap:        cfg.Build.Sourcemap(),
		ExternalPackages: cfg.Build.ExternalPackagesEnabled(),
		TreeShaking:      cfg.Build.TreeShakingEnabled(),
		Tsconfig:         cfg.Build.Tsconfig,
		MainFields:       cfg.Build.MainFields,
		Conditions:       cfg.Build.Conditions,
	}, nil
}
