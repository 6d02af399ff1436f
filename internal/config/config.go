package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/distbuild/internal/staticfiles"
)

// Build modes. Production implies minified output without sourcemaps;
// development the inverse.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Bundler selection values.
const (
	BundlerESBuild = "esbuild"
	BundlerRollup  = "rollup"
)

// EnvMode is the environment variable overriding the configured build mode.
const EnvMode = "DISTBUILD_MODE"

// Config represents the application configuration.
type Config struct {
	ProjectRoot string             `yaml:"project_root,omitempty"`
	Entry       string             `yaml:"entry"`
	Output      OutputConfig       `yaml:"output"`
	Build       BuildConfig        `yaml:"build"`
	StaticFiles []staticfiles.Spec `yaml:"static_files,omitempty"`
	Stamp       StampConfig        `yaml:"stamp,omitempty"`
	Watch       WatchConfig        `yaml:"watch,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// BuildConfig represents bundler configuration.
type BuildConfig struct {
	Bundler          string   `yaml:"bundler,omitempty"`       // esbuild | rollup
	Formats          []string `yaml:"formats,omitempty"`       // esm, cjs
	Mode             string   `yaml:"mode,omitempty"`          // production | development
	Tsconfig         string   `yaml:"tsconfig,omitempty"`      // type-stripping rules
	ExternalPackages *bool    `yaml:"external_packages,omitempty"`
	TreeShaking      *bool    `yaml:"tree_shaking,omitempty"`
	MainFields       []string `yaml:"main_fields,omitempty"`
	Conditions       []string `yaml:"conditions,omitempty"`
	RollupConfig     string   `yaml:"rollup_config,omitempty"` // use this config instead of generating one
}

// StampConfig controls the version placeholder rewrite.
type StampConfig struct {
	Token    string `yaml:"token,omitempty"`    // defaults to {{version}}
	Artifact string `yaml:"artifact,omitempty"` // defaults to the primary build artifact
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Paths      []string `yaml:"paths,omitempty"`
	DebounceMS int      `yaml:"debounce_ms,omitempty"`
}

// ExternalPackagesEnabled reports whether third-party dependencies are kept
// out of the bundle (default true).
func (b BuildConfig) ExternalPackagesEnabled() bool {
	return b.ExternalPackages == nil || *b.ExternalPackages
}

// TreeShakingEnabled reports whether dead-code elimination is on (default true).
func (b BuildConfig) TreeShakingEnabled() bool {
	return b.TreeShaking == nil || *b.TreeShaking
}

// Minify reports whether output is minified for the resolved mode.
func (b BuildConfig) Minify() bool {
	return b.Mode == ModeProduction
}

// Sourcemap reports whether sourcemaps are emitted; inverse of Minify.
func (b BuildConfig) Sourcemap() bool {
	return !b.Minify()
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; its absence is fine.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills unset fields after unmarshal.
func (c *Config) applyDefaults() {
	if c.ProjectRoot == "" {
		c.ProjectRoot = "."
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "dist"
	}
	if c.Build.Bundler == "" {
		c.Build.Bundler = BundlerESBuild
	}
	if len(c.Build.Formats) == 0 {
		c.Build.Formats = []string{"esm", "cjs"}
	}
	if c.Build.Mode == "" {
		c.Build.Mode = ModeProduction
	}
	if env := os.Getenv(EnvMode); env == ModeProduction || env == ModeDevelopment {
		c.Build.Mode = env
	}
	if len(c.StaticFiles) == 0 {
		c.StaticFiles = DefaultStaticFiles()
	}
	if c.Stamp.Token == "" {
		c.Stamp.Token = "{{version}}"
	}
	if len(c.Watch.Paths) == 0 {
		c.Watch.Paths = []string{"src"}
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = 250
	}
}

// DefaultStaticFiles is the conventional npm publication file set. The
// manifest and readme must exist; npm configuration files are optional.
func DefaultStaticFiles() []staticfiles.Spec {
	return []staticfiles.Spec{
		{Name: "package.json"},
		{Name: "README.md"},
		{Name: "LICENSE", Optional: true},
		{Name: ".npmrc", Optional: true},
	}
}
