package bundler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"git.home.luguber.info/inful/distbuild/internal/logfields"
)

// ESBuild bundles in-process through the esbuild library API. One build call
// runs per requested format; esbuild emits a single format per call.
type ESBuild struct{}

// NewESBuild returns the in-process bundler.
func NewESBuild() *ESBuild {
	return &ESBuild{}
}

func (e *ESBuild) Name() string { return "esbuild" }

// Bundle builds every requested format. The first failing format aborts;
// already-written artifacts are left in place (no partial-output cleanup).
func (e *ESBuild) Bundle(ctx context.Context, opts Options) (Result, error) {
	res := newResult(opts)

	for _, format := range opts.Formats {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		outfile := res.Artifacts[format]
		slog.Debug("Bundling", logfields.Format(string(format)), logfields.Artifact(outfile))

		buildOpts := api.BuildOptions{
			EntryPoints:       []string{opts.EntryPoint},
			Outfile:           outfile,
			Bundle:            true,
			Write:             true,
			Platform:          api.PlatformNode,
			Format:            esbuildFormat(format),
			MinifyWhitespace:  opts.Minify,
			MinifyIdentifiers: opts.Minify,
			MinifySyntax:      opts.Minify,
			Tsconfig:          opts.Tsconfig,
			MainFields:        opts.MainFields,
			Conditions:        opts.Conditions,
			LogLevel:          api.LogLevelWarning,
		}
		if opts.Sourcemap {
			buildOpts.Sourcemap = api.SourceMapLinked
		}
		if opts.ExternalPackages {
			buildOpts.Packages = api.PackagesExternal
		}
		if opts.TreeShaking {
			buildOpts.TreeShaking = api.TreeShakingTrue
		} else {
			buildOpts.TreeShaking = api.TreeShakingFalse
		}
		if opts.Tsconfig != "" && !filepath.IsAbs(opts.Tsconfig) {
			buildOpts.Tsconfig = filepath.Join(opts.ProjectRoot, opts.Tsconfig)
		}

		result := api.Build(buildOpts)
		if len(result.Errors) > 0 {
			return Result{}, fmt.Errorf("esbuild %s build failed: %s", format, joinMessages(result.Errors))
		}
	}

	return res, nil
}

// esbuildFormat maps the format to the esbuild API constant.
func esbuildFormat(f Format) api.Format {
	if f == FormatCJS {
		return api.FormatCommonJS
	}
	return api.FormatESModule
}

// joinMessages flattens esbuild diagnostics into one error string.
func joinMessages(msgs []api.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			parts = append(parts, fmt.Sprintf("%s:%d: %s", m.Location.File, m.Location.Line, m.Text))
			continue
		}
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "; ")
}
