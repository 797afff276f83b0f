package config

import "sort"

var Presets = map[string]*Config{
	"cubic": {
		Name: "cubic", Degree: 3, Metric: DefaultMetric, MaxDegree: DefaultMaxDegree,
		Data: DataConfig{Coeffs: []float64{0, 2, -3, 1}, Samples: 50, Start: 0, Stop: 2, YCol: 1, WCol: -1},
	},
	"line": {
		Name: "line", Degree: 1, Metric: DefaultMetric, MaxDegree: DefaultMaxDegree,
		Data: DataConfig{Coeffs: []float64{-1, 0.5}, Samples: 20, Start: -5, Stop: 5, YCol: 1, WCol: -1},
	},
	"noisy_quadratic": {
		Name: "noisy_quadratic", Degree: 2, Metric: DefaultMetric, MaxDegree: DefaultMaxDegree,
		Data: DataConfig{Coeffs: []float64{1, -2, 0.5}, Samples: 200, Start: -4, Stop: 4, Noise: 0.25, Seed: 42, YCol: 1, WCol: -1},
	},
	"chebyshev3": {
		Name: "chebyshev3", Degree: 3, Metric: DefaultMetric, MaxDegree: DefaultMaxDegree,
		Data: DataConfig{Coeffs: []float64{0, -3, 0, 4}, Samples: 41, Start: -1, Stop: 1, YCol: 1, WCol: -1},
	},
	"chebyshev5": {
		Name: "chebyshev5", Degree: 5, Metric: DefaultMetric, MaxDegree: DefaultMaxDegree,
		Data: DataConfig{Coeffs: []float64{0, 5, 0, -20, 0, 16}, Samples: 81, Start: -1, Stop: 1, YCol: 1, WCol: -1},
	},
	"odd_quintic": {
		Name: "odd_quintic", Degree: 5, Terms: []int{1, 3, 5}, Metric: DefaultMetric, MaxDegree: DefaultMaxDegree,
		Data: DataConfig{Coeffs: []float64{0, 1, 0, -0.5, 0, 0.05}, Samples: 61, Start: -3, Stop: 3, YCol: 1, WCol: -1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Terms = append([]int(nil), p.Terms...)
	cfg.Data.Coeffs = append([]float64(nil), p.Data.Coeffs...)
	return &cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
