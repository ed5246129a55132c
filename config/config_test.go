package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/gmsbind/errors"
	"github.com/wippyai/gmsbind/session"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, ".xml", cfg.Output.Ext)
	assert.Equal(t, "discard", cfg.Session.Restart)
	assert.True(t, cfg.Session.StableOrder)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "gmsbind.yaml", `
output:
  dir: build/ext
session:
  restart: reject
  stable_order: false
log:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "build/ext", cfg.Output.Dir)
	assert.Equal(t, ".xml", cfg.Output.Ext, "unset keys keep defaults")
	assert.Equal(t, "reject", cfg.Session.Restart)
	assert.False(t, cfg.Session.StableOrder)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "gmsbind.yaml", "output:\n  dir: from-yaml\n")
	t.Setenv("GMSBIND_OUT_DIR", "from-env")
	t.Setenv("GMSBIND_STABLE_ORDER", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Output.Dir)
	assert.False(t, cfg.Session.StableOrder)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "GMSBIND_OUT_EXT=.ext\n")
	t.Cleanup(func() { os.Unsetenv("GMSBIND_OUT_EXT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".ext", cfg.Output.Ext)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindNotFound})
	})

	t.Run("bad yaml", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		path := writeFile(t, dir, "bad.yaml", "output: [unterminated\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput})
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("GMSBIND_S3_USE_SSL", "sometimes")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GMSBIND_S3_USE_SSL")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"reject policy", func(c *Config) { c.Session.Restart = "reject" }, false},
		{"unknown policy", func(c *Config) { c.Session.Restart = "merge" }, true},
		{"json format", func(c *Config) { c.Log.Format = "json" }, false},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"endpoint without bucket", func(c *Config) { c.S3.Endpoint = "localhost:9000" }, true},
		{"endpoint with bucket", func(c *Config) {
			c.S3.Endpoint = "localhost:9000"
			c.S3.Bucket = "ext"
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistryOptions(t *testing.T) {
	cfg := Default()
	cfg.Session.Restart = "reject"
	cfg.Session.StableOrder = false
	opts, err := cfg.RegistryOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	reg := session.NewRegistry(opts...)
	_, err = reg.Start(session.Target{Name: "a"})
	require.NoError(t, err)
	_, err = reg.Start(session.Target{Name: "b"})
	assert.ErrorIs(t, err, errors.ErrSessionAlreadyActive)

	cfg.Session.StableOrder = true
	opts, err = cfg.RegistryOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestSinks(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = "out"
	fs := cfg.FileSink()
	assert.Equal(t, filepath.Join("out", "rope.xml"), fs.Path("rope"))

	_, err := cfg.S3Sink()
	assert.Error(t, err, "no endpoint configured")
}
