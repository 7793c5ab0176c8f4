package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "processed", cfg.OutputDir)
	assert.Equal(t, 4, cfg.Preprocess.FilterOrder)
	assert.Equal(t, 0.5, cfg.Preprocess.BandLow)
	assert.Equal(t, 45.0, cfg.Preprocess.BandHigh)
	assert.Equal(t, "zscore", cfg.Preprocess.Method)
	assert.True(t, cfg.Preprocess.RemoveBaseline)
	assert.Equal(t, 100, cfg.Preprocess.ShortSignalThreshold)
	assert.Equal(t, 50, cfg.Features.PeakMinDistance)
	assert.Equal(t, 0.85, cfg.Features.RolloffThreshold)
	assert.Equal(t, 100, cfg.Features.EntropyBins)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output_dir: /data/out
preprocess:
  method: robust
  band_high: 45
features:
  entropy_bins: 64
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.Equal(t, "robust", cfg.Preprocess.Method)
	assert.Equal(t, 45.0, cfg.Preprocess.BandHigh)
	// Untouched values keep their defaults.
	assert.Equal(t, 0.5, cfg.Preprocess.BandLow)
	assert.Equal(t, 64, cfg.Features.EntropyBins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preprocess:\n  method: minmax\n"), 0o644))

	t.Setenv("ECGPIPE_PREPROCESS_METHOD", "robust")
	t.Setenv("ECGPIPE_OUTPUT_DIR", "/env/out")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "robust", cfg.Preprocess.Method)
	assert.Equal(t, "/env/out", cfg.OutputDir)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "processed", cfg.OutputDir)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty output dir", func(c *Config) { c.OutputDir = " " }},
		{"zero filter order", func(c *Config) { c.Preprocess.FilterOrder = 0 }},
		{"inverted band", func(c *Config) { c.Preprocess.BandLow, c.Preprocess.BandHigh = 40, 0.5 }},
		{"bad method", func(c *Config) { c.Preprocess.Method = "standard" }},
		{"zero entropy bins", func(c *Config) { c.Features.EntropyBins = 0 }},
		{"rolloff above one", func(c *Config) { c.Features.RolloffThreshold = 1.5 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"negative baseline cutoff", func(c *Config) { c.Preprocess.BaselineCutoff = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsInvalidFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preprocess:\n  method: bogus\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
