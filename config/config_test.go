// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, 720, c.Window.Height)
	assert.True(t, c.Window.VSync)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "assets", c.Assets.Dir)
	assert.NoError(t, c.Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader(`
[window]
width = 800
title = "Water"
debug = false

[log]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 720, c.Window.Height)
	assert.Equal(t, "Water", c.Window.Title)
	assert.False(t, c.Window.Debug)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "assets", c.Assets.Dir)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("[window]\nwidth = \n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = Parse(strings.NewReader("[window]\nfullscreen = true\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("[window]\nwidth = -1\n"))
	assert.ErrorContains(t, err, "window size")

	_, err = Parse(strings.NewReader("[log]\nlevel = \"loud\"\n"))
	assert.ErrorContains(t, err, "loud")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(dir, "glint.toml")
	require.NoError(t, os.WriteFile(path, []byte("[assets]\ndir = \"/srv/assets\"\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/assets", c.Assets.Dir)

	require.NoError(t, os.WriteFile(path, []byte("[window\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, path)
}

func TestEncodeRoundTrip(t *testing.T) {
	c := Default()
	c.Window.Title = "Glent"
	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))
	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv(EnvPath, "/etc/glint.toml")
	assert.Equal(t, "/etc/glint.toml", Path())
}
