package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# distbuild configuration
# Build driver for publishing a dual-format (ESM + CJS) package.

# Entry point source file, relative to project_root.
entry: src/index.ts

output:
  directory: dist

build:
  # esbuild bundles in-process; rollup shells out to the rollup CLI.
  bundler: esbuild
  formats: [esm, cjs]
  # production minifies without sourcemaps; development is the inverse.
  # Overridable with the DISTBUILD_MODE environment variable.
  mode: production
  tsconfig: tsconfig.json
  # Third-party dependencies stay out of the bundle and resolve at install time.
  external_packages: true
  tree_shaking: true

# Files copied verbatim into the output directory. Optional files may be
# absent from the project without failing the build.
static_files:
  - name: package.json
  - name: README.md
  - name: LICENSE
    optional: true
  - name: .npmrc
    optional: true

stamp:
  token: "{{version}}"

watch:
  paths: [src]
  debounce_ms: 250
`

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
