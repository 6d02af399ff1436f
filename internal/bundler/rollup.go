package bundler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/distbuild/internal/logfields"
	"git.home.luguber.info/inful/distbuild/internal/workspace"
)

// Rollup shells out to the external `rollup` CLI. When the project does not
// provide its own config file, a declarative config fanning out to one CJS
// and one ESM output is generated into a scratch workspace.
type Rollup struct {
	// configPath is a project-provided rollup config; empty means generate.
	configPath string
}

// NewRollup returns the external-process bundler. configPath may be empty.
func NewRollup(configPath string) *Rollup {
	return &Rollup{configPath: configPath}
}

func (r *Rollup) Name() string { return "rollup" }

// Bundle runs `rollup -c` in the project root. A non-zero exit is fatal; the
// process inherits stdout/stderr so tool diagnostics reach the user directly.
// No timeout applies beyond ctx cancellation.
func (r *Rollup) Bundle(ctx context.Context, opts Options) (Result, error) {
	bin, err := exec.LookPath("rollup")
	if err != nil {
		return Result{}, fmt.Errorf("rollup binary not found in PATH: %w", err)
	}

	configPath := r.configPath
	if configPath == "" {
		ws := workspace.NewManager("")
		if err := ws.Create(); err != nil {
			return Result{}, err
		}
		defer func() {
			if err := ws.Cleanup(); err != nil {
				slog.Warn("Failed to cleanup workspace", logfields.Error(err))
			}
		}()

		configPath, err = ws.WriteFile("rollup.config.mjs", []byte(GenerateConfig(opts)))
		if err != nil {
			return Result{}, err
		}
	}

	cmd := exec.CommandContext(ctx, bin, "-c", configPath)
	cmd.Dir = opts.ProjectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	slog.Info("Running rollup", logfields.Path(configPath))
	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("rollup command failed: %w", err)
	}

	return newResult(opts), nil
}

// GenerateConfig renders a rollup config for the requested outputs: one entry
// in, one file per format out, terser for minification and the typescript
// plugin for type stripping.
func GenerateConfig(opts Options) string {
	var b strings.Builder

	b.WriteString("import typescript from '@rollup/plugin-typescript';\n")
	if opts.Minify {
		b.WriteString("import terser from '@rollup/plugin-terser';\n")
	}
	b.WriteString("\nexport default {\n")
	fmt.Fprintf(&b, "  input: %q,\n", opts.EntryPoint)
	if opts.ExternalPackages {
		// Anything that is not a relative or absolute path resolves at
		// install time instead of being inlined.
		b.WriteString("  external: (id) => !id.startsWith('.') && !id.startsWith('/'),\n")
	}
	fmt.Fprintf(&b, "  treeshake: %t,\n", opts.TreeShaking)
	b.WriteString("  output: [\n")
	for _, format := range opts.Formats {
		name := "es"
		if format == FormatCJS {
			name = "cjs"
		}
		fmt.Fprintf(&b, "    { file: %q, format: %q, sourcemap: %t", opts.OutFile(format), name, opts.Sourcemap)
		if opts.Minify {
			b.WriteString(", plugins: [terser()]")
		}
		b.WriteString(" },\n")
	}
	b.WriteString("  ],\n")
	if opts.Tsconfig != "" {
		fmt.Fprintf(&b, "  plugins: [typescript({ tsconfig: %q })],\n", opts.Tsconfig)
	} else {
		b.WriteString("  plugins: [typescript()],\n")
	}
	b.WriteString("};\n")

	return b.String()
}
