package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "distbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "entry: src/index.ts\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.ProjectRoot)
	assert.Equal(t, "dist", cfg.Output.Directory)
	assert.Equal(t, BundlerESBuild, cfg.Build.Bundler)
	assert.Equal(t, []string{"esm", "cjs"}, cfg.Build.Formats)
	assert.Equal(t, ModeProduction, cfg.Build.Mode)
	assert.Equal(t, "{{version}}", cfg.Stamp.Token)
	assert.True(t, cfg.Build.ExternalPackagesEnabled())
	assert.True(t, cfg.Build.TreeShakingEnabled())
	assert.Equal(t, 250, cfg.Watch.DebounceMS)

	// Default publication file set: manifest and readme required.
	require.Len(t, cfg.StaticFiles, 4)
	assert.Equal(t, "package.json", cfg.StaticFiles[0].Name)
	assert.False(t, cfg.StaticFiles[0].Optional)
	assert.Equal(t, "README.md", cfg.StaticFiles[1].Name)
	assert.False(t, cfg.StaticFiles[1].Optional)
}

func TestLoadModeFromEnv(t *testing.T) {
	path := writeConfig(t, "entry: src/index.ts\nbuild:\n  mode: production\n")

	t.Setenv(EnvMode, ModeDevelopment)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeDevelopment, cfg.Build.Mode)

	// Unrecognized values are ignored rather than failing the load.
	t.Setenv(EnvMode, "staging")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeProduction, cfg.Build.Mode)
}

func TestModeDerivedFlags(t *testing.T) {
	prod := BuildConfig{Mode: ModeProduction}
	assert.True(t, prod.Minify())
	assert.False(t, prod.Sourcemap())

	dev := BuildConfig{Mode: ModeDevelopment}
	assert.False(t, dev.Minify())
	assert.True(t, dev.Sourcemap())
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("PKG_ENTRY", "src/main.ts")
	path := writeConfig(t, "entry: ${PKG_ENTRY}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "src/main.ts", cfg.Entry)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing entry", func(c *Config) { c.Entry = "" }, "entry point source file is required"},
		{"bad bundler", func(c *Config) { c.Build.Bundler = "webpack" }, "unknown bundler"},
		{"bad mode", func(c *Config) { c.Build.Mode = "staging" }, "unknown mode"},
		{"bad format", func(c *Config) { c.Build.Formats = []string{"umd"} }, "unknown format"},
		{"unnamed static file", func(c *Config) { c.StaticFiles[0].Name = "" }, "name is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Entry: "src/index.ts"}
			cfg.applyDefaults()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distbuild.yaml")

	require.NoError(t, Init(path, false))

	// The generated example must load cleanly.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "src/index.ts", cfg.Entry)
	assert.Equal(t, BundlerESBuild, cfg.Build.Bundler)

	// Second init without force refuses to overwrite.
	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true))
}
