package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultWidth     = 1000.0
	DefaultHeight    = 1000.0
	DefaultRadius    = 4.0
	DefaultForce     = 10000.0
	DefaultSpacing   = 1000.0
	DefaultForcing   = "axis"
	DefaultCollision = "segment"
	DefaultMSD       = "euclidean"
)

// DefaultParticleCounts is the side-by-side layout run when nothing else is
// configured, smallest ensemble on the left.
var DefaultParticleCounts = []int{10, 20, 50, 100, 500}

type Config struct {
	Name        string           `yaml:"name" toml:"name"`
	Dt          float64          `yaml:"dt" toml:"dt"`
	Duration    float64          `yaml:"duration" toml:"duration"`
	Seed        int64            `yaml:"seed" toml:"seed"`
	Forcing     string           `yaml:"forcing" toml:"forcing"`
	Collision   string           `yaml:"collision" toml:"collision"`
	MSD         string           `yaml:"msd" toml:"msd"`
	RecordEvery int              `yaml:"record_every" toml:"record_every"`
	Ensembles   []EnsembleConfig `yaml:"ensembles" toml:"ensembles"`
}

// EnsembleConfig describes one box. X and Y place the box centre in the
// shared world frame.
type EnsembleConfig struct {
	Name      string  `yaml:"name" toml:"name"`
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
	Particles int     `yaml:"particles" toml:"particles"`
	Radius    float64 `yaml:"radius" toml:"radius"`
	X         float64 `yaml:"x" toml:"x"`
	Y         float64 `yaml:"y" toml:"y"`
	Force     float64 `yaml:"force" toml:"force"`
	Borders   bool    `yaml:"borders" toml:"borders"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:      "default",
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Forcing:   DefaultForcing,
		Collision: DefaultCollision,
		MSD:       DefaultMSD,
		Ensembles: Row(DefaultParticleCounts, DefaultWidth, DefaultHeight, DefaultForce, true),
	}
}

// Row lays out one ensemble per particle count along the x axis, centred on
// the origin and DefaultSpacing apart.
func Row(counts []int, width, height, force float64, borders bool) []EnsembleConfig {
	out := make([]EnsembleConfig, len(counts))
	offset := float64(len(counts)-1) / 2
	for i, n := range counts {
		out[i] = EnsembleConfig{
			Name:      fmt.Sprintf("n%d", n),
			Width:     width,
			Height:    height,
			Particles: n,
			Radius:    DefaultRadius,
			X:         (float64(i) - offset) * DefaultSpacing,
			Force:     force,
			Borders:   borders,
		}
	}
	return out
}

// Load reads a configuration file over the defaults. Files ending in .toml
// are decoded as TOML, anything else as YAML. Unknown keys are errors. A
// file that lists ensembles replaces the default layout entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	defaults := cfg.Ensembles
	cfg.Ensembles = nil

	var written ensembleKeys
	if isTOML(path) {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config: %s: unknown keys %v", path, undecoded)
		}
		if _, err := toml.Decode(string(data), &written); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &written); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if cfg.Ensembles == nil {
		cfg.Ensembles = defaults
	}
	cfg.fillEnsembles(written)
	return cfg, nil
}

// ensembleKeys records which of the zero-meaningful ensemble keys a file
// actually wrote.
type ensembleKeys struct {
	Ensembles []struct {
		Force   *float64 `yaml:"force" toml:"force"`
		Borders *bool    `yaml:"borders" toml:"borders"`
	} `yaml:"ensembles" toml:"ensembles"`
}

func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	format := "yaml"
	if isTOML(path) {
		format = "toml"
	}
	if err := Write(&buf, cfg, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Write encodes cfg as "yaml" or "toml".
func Write(w io.Writer, cfg *Config, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	}
	return dynamo.InvalidArgument("unknown config format %q", format)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// fillEnsembles gives decoded ensembles the defaults for every key the file
// left out. A force of 0 or borders false is kept only when written.
func (c *Config) fillEnsembles(written ensembleKeys) {
	for i := range c.Ensembles {
		e := &c.Ensembles[i]
		if e.Name == "" {
			e.Name = fmt.Sprintf("ensemble-%d", i+1)
		}
		if e.Width == 0 {
			e.Width = DefaultWidth
		}
		if e.Height == 0 {
			e.Height = DefaultHeight
		}
		if e.Radius == 0 {
			e.Radius = DefaultRadius
		}
		if i >= len(written.Ensembles) {
			continue
		}
		if written.Ensembles[i].Force == nil {
			e.Force = DefaultForce
		}
		if written.Ensembles[i].Borders == nil {
			e.Borders = true
		}
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if !(c.Dt > 0) {
		errs = append(errs, dynamo.InvalidArgument("dt must be positive, got %g", c.Dt))
	}
	if !(c.Duration > 0) {
		errs = append(errs, dynamo.InvalidArgument("duration must be positive, got %g", c.Duration))
	}
	if c.RecordEvery < 0 {
		errs = append(errs, dynamo.InvalidArgument("record_every must not be negative, got %d", c.RecordEvery))
	}
	if len(c.Ensembles) == 0 {
		errs = append(errs, dynamo.InvalidArgument("no ensembles configured"))
	}

	seen := make(map[string]bool, len(c.Ensembles))
	for _, e := range c.Ensembles {
		if seen[e.Name] {
			errs = append(errs, dynamo.InvalidArgument("duplicate ensemble name %q", e.Name))
		}
		seen[e.Name] = true

		if e.Particles <= 0 {
			errs = append(errs, dynamo.InvalidArgument("ensemble %q: particles must be positive, got %d", e.Name, e.Particles))
		}
		if !(e.Width > 0) || !(e.Height > 0) {
			errs = append(errs, dynamo.InvalidArgument("ensemble %q: box must be positive, got %gx%g", e.Name, e.Width, e.Height))
		}
		if !(e.Radius > 0) {
			errs = append(errs, dynamo.InvalidArgument("ensemble %q: radius must be positive, got %g", e.Name, e.Radius))
		}
		if !(e.Force >= 0) {
			errs = append(errs, dynamo.InvalidArgument("ensemble %q: force must be non-negative, got %g", e.Name, e.Force))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Ensembles = append([]EnsembleConfig(nil), c.Ensembles...)
	return &out
}

// SetAll applies a per-ensemble parameter (force, radius, width, height,
// particles, borders) to every ensemble.
func (c *Config) SetAll(name string, value float64) error {
	for i := range c.Ensembles {
		e := &c.Ensembles[i]
		switch name {
		case "force":
			e.Force = value
		case "radius":
			e.Radius = value
		case "width":
			e.Width = value
		case "height":
			e.Height = value
		case "particles":
			e.Particles = int(value)
		case "borders":
			e.Borders = value != 0
		default:
			return dynamo.InvalidArgument("unknown ensemble parameter %q", name)
		}
	}
	return nil
}

// TotalParticles sums the particle counts of all ensembles.
func (c *Config) TotalParticles() int {
	n := 0
	for _, e := range c.Ensembles {
		n += e.Particles
	}
	return n
}
