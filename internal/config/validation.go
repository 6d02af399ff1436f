package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for inconsistencies a build cannot
// recover from. It runs after defaults have been applied.
func (c *Config) Validate() error {
	var problems []string

	if c.Entry == "" {
		problems = append(problems, "entry: entry point source file is required")
	}
	if c.Output.Directory == "" {
		problems = append(problems, "output.directory: output directory is required")
	}

	switch c.Build.Bundler {
	case BundlerESBuild, BundlerRollup:
	default:
		problems = append(problems, fmt.Sprintf("build.bundler: unknown bundler %q (expected %s or %s)", c.Build.Bundler, BundlerESBuild, BundlerRollup))
	}

	switch c.Build.Mode {
	case ModeProduction, ModeDevelopment:
	default:
		problems = append(problems, fmt.Sprintf("build.mode: unknown mode %q (expected %s or %s)", c.Build.Mode, ModeProduction, ModeDevelopment))
	}

	for _, f := range c.Build.Formats {
		if f != "esm" && f != "cjs" {
			problems = append(problems, fmt.Sprintf("build.formats: unknown format %q (expected esm or cjs)", f))
		}
	}

	for i, spec := range c.StaticFiles {
		if spec.Name == "" {
			problems = append(problems, fmt.Sprintf("static_files[%d]: name is required", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
