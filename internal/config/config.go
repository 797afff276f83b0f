package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/san-kum/polykit/internal/analysis"
	"github.com/san-kum/polykit/internal/ndarray"
	"github.com/san-kum/polykit/internal/poly"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDegree    = 3
	DefaultMaxDegree = 8
	DefaultSamples   = 50
	DefaultStart     = 0.0
	DefaultStop      = 2.0
	DefaultMetric    = analysis.MetricAIC
)

// ErrInvalidConfig indicates a configuration that cannot describe a fit.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config describes one fit job: where the samples come from and how to fit
// them.
type Config struct {
	Name      string     `yaml:"name"`
	Degree    int        `yaml:"degree"`
	Terms     []int      `yaml:"terms,omitempty"`
	RCond     float64    `yaml:"rcond"`
	Metric    string     `yaml:"metric"`
	MaxDegree int        `yaml:"max_degree"`
	Data      DataConfig `yaml:"data"`
}

// DataConfig selects a samples CSV file or, when File is empty, synthetic
// samples drawn from the polynomial Coeffs.
type DataConfig struct {
	File string `yaml:"file,omitempty"`
	XCol int    `yaml:"x_col"`
	YCol int    `yaml:"y_col"`
	WCol int    `yaml:"w_col"`

	Coeffs  []float64 `yaml:"coeffs,omitempty"`
	Samples int       `yaml:"samples"`
	Start   float64   `yaml:"start"`
	Stop    float64   `yaml:"stop"`
	Noise   float64   `yaml:"noise"`
	Seed    int64     `yaml:"seed"`
}

type jobFile struct {
	Jobs []yaml.Node `yaml:"jobs"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:      "fit",
		Degree:    DefaultDegree,
		Metric:    DefaultMetric,
		MaxDegree: DefaultMaxDegree,
		Data: DataConfig{
			XCol:    0,
			YCol:    1,
			WCol:    -1,
			Samples: DefaultSamples,
			Start:   DefaultStart,
			Stop:    DefaultStop,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadJobs reads a file with a top-level "jobs" list. Every job starts from
// DefaultConfig, so omitted fields keep their defaults.
func LoadJobs(path string) ([]*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	jobs := make([]*Config, 0, len(f.Jobs))
	for i := range f.Jobs {
		cfg := DefaultConfig()
		if err := f.Jobs[i].Decode(cfg); err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		if cfg.Name == "fit" {
			cfg.Name = fmt.Sprintf("job-%d", i)
		}
		jobs = append(jobs, cfg)
	}
	return jobs, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if strings.ContainsAny(c.Name, `/\`) || strings.Contains(c.Name, "..") {
		return fmt.Errorf("%w: name %q must not contain path separators or \"..\"", ErrInvalidConfig, c.Name)
	}
	if c.Degree < 0 {
		return fmt.Errorf("%w: degree %d is negative", ErrInvalidConfig, c.Degree)
	}
	for _, t := range c.Terms {
		if t < 0 {
			return fmt.Errorf("%w: term %d is negative", ErrInvalidConfig, t)
		}
	}
	if c.MaxDegree < 0 {
		return fmt.Errorf("%w: max_degree %d is negative", ErrInvalidConfig, c.MaxDegree)
	}
	switch c.Metric {
	case analysis.MetricAIC, analysis.MetricBIC, analysis.MetricRMSE:
	default:
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, c.Metric)
	}

	d := c.Data
	if d.File == "" {
		if len(d.Coeffs) == 0 {
			return fmt.Errorf("%w: either data.file or data.coeffs is required", ErrInvalidConfig)
		}
		if d.Samples < 1 {
			return fmt.Errorf("%w: data.samples must be positive", ErrInvalidConfig)
		}
		if d.Noise < 0 {
			return fmt.Errorf("%w: data.noise must be non-negative", ErrInvalidConfig)
		}
	}
	if d.XCol < 0 || d.YCol < 0 || d.XCol == d.YCol {
		return fmt.Errorf("%w: columns x=%d y=%d", ErrInvalidConfig, d.XCol, d.YCol)
	}
	return nil
}

// Synthetic reports whether the samples are generated rather than read.
func (d DataConfig) Synthetic() bool {
	return d.File == ""
}

// Generate evaluates Coeffs at Samples evenly spaced points on [Start, Stop]
// and adds Gaussian noise of standard deviation Noise.
func (d DataConfig) Generate() (x, y []float64) {
	x = ndarray.Linspace(d.Start, d.Stop, d.Samples)
	y = make([]float64, len(x))
	rng := rand.New(rand.NewSource(d.Seed))
	for i, v := range x {
		y[i] = poly.EvaluateAt(v, d.Coeffs)
		if d.Noise > 0 {
			y[i] += d.Noise * rng.NormFloat64()
		}
	}
	return x, y
}
