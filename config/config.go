// Package config loads the pipeline configuration from layered sources:
// built-in defaults, an optional YAML file and ECGPIPE_* environment
// variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the pipeline's environment variables.
const envPrefix = "ECGPIPE_"

// Config is the root configuration.
type Config struct {
	OutputDir  string           `koanf:"output_dir"`
	Preprocess PreprocessConfig `koanf:"preprocess"`
	Features   FeaturesConfig   `koanf:"features"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// PreprocessConfig parameterizes the preprocessing pipeline.
type PreprocessConfig struct {
	RemoveBaseline       bool    `koanf:"remove_baseline"`
	BaselineCutoff       float64 `koanf:"baseline_cutoff"`
	ApplyBandpass        bool    `koanf:"apply_bandpass"`
	BandLow              float64 `koanf:"band_low"`
	BandHigh             float64 `koanf:"band_high"`
	FilterOrder          int     `koanf:"filter_order"`
	Normalize            bool    `koanf:"normalize"`
	Method               string  `koanf:"method"`
	AssessQuality        bool    `koanf:"assess_quality"`
	ShortSignalThreshold int     `koanf:"short_signal_threshold"`
}

// FeaturesConfig parameterizes feature extraction.
type FeaturesConfig struct {
	PeakMinDistance  int     `koanf:"peak_min_distance"`
	RolloffThreshold float64 `koanf:"rolloff_threshold"`
	EntropyBins      int     `koanf:"entropy_bins"`
	DefaultFS        float64 `koanf:"default_fs"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		OutputDir: "processed",
		Preprocess: PreprocessConfig{
			RemoveBaseline:       true,
			BaselineCutoff:       0.5,
			ApplyBandpass:        true,
			BandLow:              0.5,
			BandHigh:             45.0,
			FilterOrder:          4,
			Normalize:            true,
			Method:               "zscore",
			AssessQuality:        true,
			ShortSignalThreshold: 100,
		},
		Features: FeaturesConfig{
			PeakMinDistance:  50,
			RolloffThreshold: 0.85,
			EntropyBins:      100,
			DefaultFS:        100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// envKeys maps environment variable names onto configuration paths. Only
// listed variables are honored; unknown ECGPIPE_ variables are ignored.
var envKeys = map[string]string{
	"ECGPIPE_OUTPUT_DIR":                        "output_dir",
	"ECGPIPE_PREPROCESS_REMOVE_BASELINE":        "preprocess.remove_baseline",
	"ECGPIPE_PREPROCESS_BASELINE_CUTOFF":        "preprocess.baseline_cutoff",
	"ECGPIPE_PREPROCESS_APPLY_BANDPASS":         "preprocess.apply_bandpass",
	"ECGPIPE_PREPROCESS_BAND_LOW":               "preprocess.band_low",
	"ECGPIPE_PREPROCESS_BAND_HIGH":              "preprocess.band_high",
	"ECGPIPE_PREPROCESS_FILTER_ORDER":           "preprocess.filter_order",
	"ECGPIPE_PREPROCESS_NORMALIZE":              "preprocess.normalize",
	"ECGPIPE_PREPROCESS_METHOD":                 "preprocess.method",
	"ECGPIPE_PREPROCESS_ASSESS_QUALITY":         "preprocess.assess_quality",
	"ECGPIPE_PREPROCESS_SHORT_SIGNAL_THRESHOLD": "preprocess.short_signal_threshold",
	"ECGPIPE_FEATURES_PEAK_MIN_DISTANCE":        "features.peak_min_distance",
	"ECGPIPE_FEATURES_ROLLOFF_THRESHOLD":        "features.rolloff_threshold",
	"ECGPIPE_FEATURES_ENTROPY_BINS":             "features.entropy_bins",
	"ECGPIPE_FEATURES_DEFAULT_FS":               "features.default_fs",
	"ECGPIPE_LOGGING_LEVEL":                     "logging.level",
	"ECGPIPE_LOGGING_FORMAT":                    "logging.format",
}

// Load reads the configuration, layering defaults, the optional YAML file at
// path (skipped when path is empty or missing) and ECGPIPE_* environment
// variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(name string) string {
		return envKeys[name]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a working pipeline.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.Preprocess.FilterOrder < 1 {
		return fmt.Errorf("preprocess.filter_order must be at least 1, got %d", c.Preprocess.FilterOrder)
	}
	if c.Preprocess.ApplyBandpass && c.Preprocess.BandLow >= c.Preprocess.BandHigh {
		return fmt.Errorf("preprocess.band_low (%g) must be below preprocess.band_high (%g)", c.Preprocess.BandLow, c.Preprocess.BandHigh)
	}
	if c.Preprocess.RemoveBaseline && c.Preprocess.BaselineCutoff <= 0 {
		return fmt.Errorf("preprocess.baseline_cutoff must be positive, got %g", c.Preprocess.BaselineCutoff)
	}
	switch c.Preprocess.Method {
	case "zscore", "minmax", "robust":
	default:
		return fmt.Errorf("preprocess.method must be zscore, minmax or robust, got %q", c.Preprocess.Method)
	}
	if c.Features.EntropyBins < 1 {
		return fmt.Errorf("features.entropy_bins must be at least 1, got %d", c.Features.EntropyBins)
	}
	if c.Features.RolloffThreshold <= 0 || c.Features.RolloffThreshold > 1 {
		return fmt.Errorf("features.rolloff_threshold must be in (0, 1], got %g", c.Features.RolloffThreshold)
	}
	if c.Features.PeakMinDistance < 1 {
		return fmt.Errorf("features.peak_min_distance must be at least 1, got %d", c.Features.PeakMinDistance)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
