package facebench

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Default cascade resource names, resolved through the cascade search path.
const (
	PigoCascadeName = "facefinder"
	HaarCascadeName = "haarcascade_frontalface_alt.xml"
)

// CascadeConfig holds the classifier resource location and the detection parameters.
type CascadeConfig struct {
	// Name of the cascade resource looked up in the search path.
	// Empty means the backend default.
	Name string `yaml:"name"`
	// Path, when set, points straight to the cascade file and bypasses the search.
	Path        string   `yaml:"path"`
	SearchPaths []string `yaml:"search_paths"`

	MinSize      int     `yaml:"min_size"`
	MaxSize      int     `yaml:"max_size"`
	ShiftFactor  float64 `yaml:"shift_factor"`
	ScaleFactor  float64 `yaml:"scale_factor"`
	IoUThreshold float64 `yaml:"iou_threshold"`
	Angle        float64 `yaml:"angle"`
	MinQuality   float32 `yaml:"min_quality"`
}

// Config holds the benchmark options.
type Config struct {
	Backend     string        `yaml:"backend"`
	OutputDir   string        `yaml:"output_dir"`
	Workers     int           `yaml:"workers"`
	JPEGQuality int           `yaml:"jpeg_quality"`
	Cascade     CascadeConfig `yaml:"cascade"`
}

// DefaultConfig returns the options used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Backend:     "pigo",
		OutputDir:   ".",
		Workers:     runtime.NumCPU(),
		JPEGQuality: 95,
		Cascade: CascadeConfig{
			MinSize:      20,
			ShiftFactor:  0.1,
			ScaleFactor:  1.1,
			IoUThreshold: 0.2,
			MinQuality:   5.0,
		},
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse the config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the options for values the pipeline cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := lookupBackend(c.Backend); !ok {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality must be between 1 and 100, got %d", c.JPEGQuality))
	}
	if c.Cascade.MinSize <= 0 {
		errs = append(errs, fmt.Errorf("cascade min size must be positive, got %d", c.Cascade.MinSize))
	}
	if c.Cascade.MaxSize != 0 && c.Cascade.MaxSize < c.Cascade.MinSize {
		errs = append(errs, errors.New("cascade max size must not be smaller than the min size"))
	}
	if c.Cascade.ScaleFactor <= 1.0 {
		errs = append(errs, fmt.Errorf("cascade scale factor must be greater than 1, got %v", c.Cascade.ScaleFactor))
	}
	if c.Cascade.ShiftFactor <= 0 || c.Cascade.ShiftFactor > 1 {
		errs = append(errs, fmt.Errorf("cascade shift factor must be in (0, 1], got %v", c.Cascade.ShiftFactor))
	}
	if c.Cascade.Angle < 0 || c.Cascade.Angle > 1 {
		errs = append(errs, fmt.Errorf("cascade angle must be in [0, 1], got %v", c.Cascade.Angle))
	}
	return errors.Join(errs...)
}
