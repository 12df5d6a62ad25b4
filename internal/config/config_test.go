package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/go-tctim"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.True(t, cfg.FitEnabled())
	assert.False(t, cfg.Verbose)

	opts := cfg.Options()
	assert.True(t, opts.Fit)
	assert.Equal(t, tctim.DefaultFallback, opts.Fallback)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", `
fit = false
verbose = true

[fallback]
rows = 48
cols = 120
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.False(t, cfg.FitEnabled())
	assert.True(t, cfg.Verbose)

	opts := cfg.Options()
	assert.False(t, opts.Fit)
	assert.Equal(t, tctim.Budget{Rows: 48, Cols: 120}, opts.Fallback)
}

func TestLoadFromLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := writeConfig(t, dir, "first.toml", "fit = false\n[fallback]\nrows = 10\n")
	second := writeConfig(t, dir, "second.toml", "fit = true\n")

	cfg, err := LoadFrom(first, second)
	require.NoError(t, err)

	assert.True(t, cfg.FitEnabled())
	assert.Equal(t, 10, cfg.Fallback.Rows)

	opts := cfg.Options()
	assert.Equal(t, tctim.Budget{Rows: 10, Cols: 64}, opts.Fallback)
}

func TestLoadFromInvalidFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", "fit = [unterminated\n")

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
