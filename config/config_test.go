package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/letterbox"
	"github.com/db47h/ofs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overlay(t *testing.T, files map[string]string) *ofs.Overlay {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}
	var ovl ofs.Overlay
	require.NoError(t, ovl.Add(true, dir))
	return &ovl
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Virtual{1920, 1080}, cfg.Virtual)
	assert.Equal(t, 32, cfg.Grid.Divisions)
	assert.True(t, cfg.Render.MSAA)
	major, minor, err := cfg.Render.ContextVersion()
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 1}, [2]int{major, minor})
	assert.Equal(t, -1, cfg.Window.X)
}

func TestContextVersion(t *testing.T) {
	for _, tt := range []struct {
		v            string
		major, minor int
		ok           bool
	}{
		{"2.1", 2, 1, true},
		{"3.2", 3, 2, true},
		{"4.10", 4, 10, true},
		{"3", 0, 0, false},
		{"3.x", 0, 0, false},
		{"3.2.1", 0, 0, false},
		{"0.9", 0, 0, false},
		{"", 0, 0, false},
	} {
		r := Render{GLVersion: tt.v}
		major, minor, err := r.ContextVersion()
		if !tt.ok {
			require.Error(t, err, tt.v)
			assert.Equal(t, letterbox.ErrInvalidArgument, errors.Cause(err), tt.v)
			continue
		}
		require.NoError(t, err, tt.v)
		assert.Equal(t, tt.major, major, tt.v)
		assert.Equal(t, tt.minor, minor, tt.v)
	}
}

func TestLoad(t *testing.T) {
	fs := overlay(t, map[string]string{
		"demo.toml": `
verbose = true

[window]
width = 1280
height = 720

[virtual]
width = 640
height = 480

[render]
msaa = false
clear_color = [0.1, 0.2, 0.3, 1.0]

[assets]
dirs = ["a", "b"]
`,
		"bad.toml":     "[window]\nwidth = \"wide\"\n",
		"unknown.toml": "[window]\ncolour = 1\n",
	})

	cfg, err := Load(fs, "demo.toml")
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "letterbox demo", cfg.Window.Title, "defaults kept")
	assert.Equal(t, Virtual{640, 480}, cfg.Virtual)
	assert.False(t, cfg.Render.MSAA)
	assert.Equal(t, 8, cfg.Render.Samples)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, cfg.Render.ClearColor)
	assert.Equal(t, []string{"a", "b"}, cfg.Assets.Dirs)
	assert.Equal(t, "red.png", cfg.Assets.Cursor)

	_, err = Load(fs, "bad.toml")
	assert.Error(t, err)
	_, err = Load(fs, "unknown.toml")
	assert.Error(t, err)
	_, err = Load(fs, "missing.toml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"virtual", func(c *Config) { c.Virtual.Height = -1 }},
		{"samples", func(c *Config) { c.Render.Samples = -4 }},
		{"fps", func(c *Config) { c.Render.MaxFPS = -1 }},
		{"gl version", func(c *Config) { c.Render.GLVersion = "latest" }},
		{"grid", func(c *Config) { c.Grid.Divisions = 0 }},
		{"assets", func(c *Config) { c.Assets.Dirs = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, letterbox.ErrInvalidArgument, errors.Cause(err))
		})
	}
}

func TestFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-w", "1024", "-vw", "1280", "-vh", "720.5", "-msaa=false",
		"-assets", "x, y,,z", "-verbose", "-x", "10", "-y", "20",
		"-gl", "3.1", "-fps", "30",
	}))
	assert.Equal(t, 10, cfg.Window.X)
	assert.Equal(t, 20, cfg.Window.Y)
	assert.Equal(t, "3.1", cfg.Render.GLVersion)
	assert.Equal(t, 30, cfg.Render.MaxFPS)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 500, cfg.Window.Height)
	assert.Equal(t, Virtual{1280, 720.5}, cfg.Virtual)
	assert.False(t, cfg.Render.MSAA)
	assert.Equal(t, []string{"x", "y", "z"}, cfg.Assets.Dirs)
	assert.True(t, cfg.Verbose)

	assert.Error(t, fs.Parse([]string{"-vw", "wide"}))
}
