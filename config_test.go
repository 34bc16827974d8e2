package facebench

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facebench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfig_DefaultShouldBeValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "pigo", cfg.Backend)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestConfig_LoadShouldOverlayTheDefaults(t *testing.T) {
	path := writeConfig(t, `
output_dir: out
workers: 3
jpeg_quality: 80
cascade:
  name: faces.bin
  search_paths: [a, b]
  min_size: 40
  angle: 0.5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "pigo", cfg.Backend)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.Equal(t, "faces.bin", cfg.Cascade.Name)
	assert.Equal(t, []string{"a", "b"}, cfg.Cascade.SearchPaths)
	assert.Equal(t, 40, cfg.Cascade.MinSize)
	assert.Equal(t, 0.5, cfg.Cascade.Angle)
	// untouched keys keep their default values
	assert.Equal(t, 0.1, cfg.Cascade.ShiftFactor)
	assert.Equal(t, 1.1, cfg.Cascade.ScaleFactor)
	assert.Equal(t, float32(5.0), cfg.Cascade.MinQuality)
}

func TestConfig_LoadShouldFailOnInvalidFiles(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "workers: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "backend: nope"))
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestConfig_ValidateShouldReportEveryProblem(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Backend = "nope" }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"quality too low", func(c *Config) { c.JPEGQuality = 0 }},
		{"quality too high", func(c *Config) { c.JPEGQuality = 101 }},
		{"min size", func(c *Config) { c.Cascade.MinSize = 0 }},
		{"max below min", func(c *Config) { c.Cascade.MaxSize = c.Cascade.MinSize - 1 }},
		{"scale factor", func(c *Config) { c.Cascade.ScaleFactor = 1 }},
		{"shift factor", func(c *Config) { c.Cascade.ShiftFactor = 0 }},
		{"angle", func(c *Config) { c.Cascade.Angle = 1.5 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Workers = 0
	cfg.JPEGQuality = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "jpeg quality")
}
