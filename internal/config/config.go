// Package config loads host configuration: grid, cadence, custom variants,
// telemetry and logging. Embedded defaults are overlaid by an optional YAML file.
package config

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"lifegrid/pkg/sims/life"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all host configuration.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Simulation SimulationConfig `yaml:"simulation"`
	Variants   []VariantConfig  `yaml:"variants"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GridConfig controls the board and its initial contents.
type GridConfig struct {
	Size    int     `yaml:"size"`
	Seed    int64   `yaml:"seed"`    // 0 = time-based
	Density float64 `yaml:"density"` // random fill probability when no pattern is set
	Pattern string  `yaml:"pattern"` // library pattern, "random" or "noise"
}

// SimulationConfig controls the engine and the host cadence.
type SimulationConfig struct {
	Variant        string `yaml:"variant"`
	Speed          int    `yaml:"speed"`
	Workers        int    `yaml:"workers"` // <= 0 uses every CPU
	Spectral       bool   `yaml:"spectral"`
	MaxGenerations int    `yaml:"max_generations"` // 0 = unlimited
	StopWhenStable bool   `yaml:"stop_when_stable"`
}

// VariantConfig describes a custom rule set.
type VariantConfig struct {
	Name     string `yaml:"name"`
	Range    int    `yaml:"range"`
	Weighted bool   `yaml:"weighted"`
	Survive  [2]int `yaml:"survive"` // inclusive [min, max]
	Birth    []int  `yaml:"birth"`
}

// TelemetryConfig controls per-generation output.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"`
	LogEvery  int    `yaml:"log_every"` // log stats every N generations, 0 = never
}

// LoggingConfig selects the slog backend.
type LoggingConfig struct {
	Format string `yaml:"format"` // text or json
	Level  string `yaml:"level"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Grid.Size < 1 {
		return fmt.Errorf("%w: grid.size %d", ErrInvalid, c.Grid.Size)
	}
	if c.Grid.Density < 0 || c.Grid.Density > 1 {
		return fmt.Errorf("%w: grid.density %v", ErrInvalid, c.Grid.Density)
	}
	for _, v := range c.Variants {
		if v.Name == "" {
			return fmt.Errorf("%w: variant without a name", ErrInvalid)
		}
		if err := v.Variant().Validate(); err != nil {
			return fmt.Errorf("variant %q: %w", v.Name, err)
		}
	}
	return nil
}

// Variant converts the YAML form into an engine variant.
func (v VariantConfig) Variant() life.Variant {
	return life.Variant{
		Name:     v.Name,
		Topology: life.Topology{Range: v.Range, Weighted: v.Weighted},
		Rules: life.RuleSet{
			MinSurvive: v.Survive[0],
			MaxSurvive: v.Survive[1],
			Birth:      v.Birth,
		},
	}
}

// RegisterVariants makes every custom variant available to life.LookupVariant.
func (c *Config) RegisterVariants() {
	for _, v := range c.Variants {
		life.RegisterVariant(v.Variant())
	}
}

// Bind attaches the commonly overridden fields to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Grid.Size, "size", c.Grid.Size, "grid side length")
	fs.Int64Var(&c.Grid.Seed, "seed", c.Grid.Seed, "seed for random fills (0 = time-based)")
	fs.Float64Var(&c.Grid.Density, "density", c.Grid.Density, "random fill probability")
	fs.StringVar(&c.Grid.Pattern, "pattern", c.Grid.Pattern, "initial pattern, random or noise")
	fs.StringVar(&c.Simulation.Variant, "variant", c.Simulation.Variant, "rule variant")
	fs.IntVar(&c.Simulation.Speed, "speed", c.Simulation.Speed, "speed 0..19, higher is faster")
	fs.IntVar(&c.Simulation.Workers, "workers", c.Simulation.Workers, "row shards per step (0 = NumCPU)")
	fs.BoolVar(&c.Simulation.Spectral, "spectral", c.Simulation.Spectral, "count neighbors with FFT convolution")
	fs.IntVar(&c.Simulation.MaxGenerations, "max-generations", c.Simulation.MaxGenerations, "stop after N generations (0 = unlimited)")
	fs.BoolVar(&c.Simulation.StopWhenStable, "stop-when-stable", c.Simulation.StopWhenStable, "stop once the board dies out or stops changing")
	fs.StringVar(&c.Telemetry.OutputDir, "output-dir", c.Telemetry.OutputDir, "directory for CSV stats and config snapshot")
	fs.IntVar(&c.Telemetry.LogEvery, "log-every", c.Telemetry.LogEvery, "log stats every N generations (0 = never)")
	fs.StringVar(&c.Logging.Format, "log-format", c.Logging.Format, "log format: text or json")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "log level: debug, info, warn, error")
}

// Parse binds the config flags plus -config to fs and parses args. A -config
// file replaces the embedded defaults; flags given explicitly still win over
// the file. Other flags already defined on fs are parsed as usual.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()
	path := fs.String("config", "", "YAML config file; explicit flags override it")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	set := map[string]string{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
	loaded, err := Load(*path)
	if err != nil {
		return nil, err
	}
	overrides := flag.NewFlagSet("overrides", flag.ContinueOnError)
	loaded.Bind(overrides)
	for name, value := range set {
		if overrides.Lookup(name) == nil {
			continue
		}
		if err := overrides.Set(name, value); err != nil {
			return nil, fmt.Errorf("flag -%s: %w", name, err)
		}
	}
	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// ApplyMap overrides fields from flag-style key/value pairs. Unparseable or
// out-of-range values are ignored.
func (c *Config) ApplyMap(m map[string]string) {
	if m == nil {
		return
	}
	if v, ok := m["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Grid.Size = parsed
		}
	}
	if v, ok := m["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Grid.Seed = parsed
		}
	}
	if v, ok := m["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Grid.Density = parsed
		}
	}
	if v, ok := m["pattern"]; ok {
		c.Grid.Pattern = v
	}
	if v, ok := m["variant"]; ok {
		c.Simulation.Variant = v
	}
	if v, ok := m["speed"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Simulation.Speed = parsed
		}
	}
	if v, ok := m["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Simulation.Workers = parsed
		}
	}
	if v, ok := m["spectral"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Simulation.Spectral = parsed
		}
	}
}

// Overrides is the inverse of ApplyMap: the sim-facing fields as the string
// map registry factories take.
func (c *Config) Overrides() map[string]string {
	return map[string]string{
		"size":     strconv.Itoa(c.Grid.Size),
		"seed":     strconv.FormatInt(c.Grid.Seed, 10),
		"density":  strconv.FormatFloat(c.Grid.Density, 'g', -1, 64),
		"pattern":  c.Grid.Pattern,
		"variant":  c.Simulation.Variant,
		"speed":    strconv.Itoa(c.Simulation.Speed),
		"workers":  strconv.Itoa(c.Simulation.Workers),
		"spectral": strconv.FormatBool(c.Simulation.Spectral),
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
