package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendulab/internal/pendulum"
)

const (
	DefaultFPS         = 60
	DefaultFrames      = 1000
	DefaultLogLevel    = "info"
	DefaultAddr        = ":8080"
	DefaultMaxSessions = 64
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Preset    string          `yaml:"preset,omitempty"`
	Origin    pendulum.Vec2   `yaml:"origin"`
	Pendulum  pendulum.Config `yaml:"pendulum"`
	InitState InitStateConfig `yaml:"init_state"`
	FPS       int             `yaml:"fps"`
	Frames    int             `yaml:"frames"`
	LogLevel  string          `yaml:"log_level"`
	LogFile   string          `yaml:"log_file,omitempty"`
	Server    ServerConfig    `yaml:"server"`
}

type InitStateConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxSessions int    `yaml:"max_sessions"`
}

func DefaultConfig() *Config {
	return &Config{
		Origin:   pendulum.DefaultOrigin,
		Pendulum: pendulum.DefaultConfig(),
		FPS:      DefaultFPS,
		Frames:   DefaultFrames,
		LogLevel: DefaultLogLevel,
		Server: ServerConfig{
			Addr:        DefaultAddr,
			MaxSessions: DefaultMaxSessions,
		},
	}
}

// Load reads a YAML file on top of the defaults. A preset named in the file
// is applied first, so explicit fields in the same file still win.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		if err := cfg.ApplyPreset(head.Preset); err != nil {
			return nil, err
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// positive is false for NaN and ±Inf as well as for v <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func (c *Config) Validate() error {
	p := c.Pendulum
	switch {
	case !positive(p.Length1) || !positive(p.Length2):
		return fmt.Errorf("%w: rod lengths must be positive (got %g, %g)", ErrInvalidConfig, p.Length1, p.Length2)
	case !positive(p.Mass1) || !positive(p.Mass2):
		return fmt.Errorf("%w: masses must be positive (got %g, %g)", ErrInvalidConfig, p.Mass1, p.Mass2)
	case !positive(p.Gravity):
		return fmt.Errorf("%w: gravity must be positive (got %g)", ErrInvalidConfig, p.Gravity)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive (got %d)", ErrInvalidConfig, c.FPS)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames must not be negative (got %d)", ErrInvalidConfig, c.Frames)
	case c.Server.MaxSessions < 0:
		return fmt.Errorf("%w: max_sessions must not be negative", ErrInvalidConfig)
	case math.IsNaN(c.Origin.X) || math.IsInf(c.Origin.X, 0) || math.IsNaN(c.Origin.Y) || math.IsInf(c.Origin.Y, 0):
		return fmt.Errorf("%w: origin must be finite (got %g, %g)", ErrInvalidConfig, c.Origin.X, c.Origin.Y)
	}
	return nil
}

// ApplyPreset overwrites the physical configuration and initial state with
// the named preset. Host settings are kept.
func (c *Config) ApplyPreset(name string) error {
	pr := GetPreset(name)
	if pr == nil {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c.Preset = name
	c.Pendulum = pr.Pendulum
	c.InitState = pr.InitState
	return nil
}

func (s InitStateConfig) Motion() pendulum.Motion {
	return pendulum.Motion{
		Theta1: s.Theta1,
		Theta2: s.Theta2,
		Omega1: s.Omega1,
		Omega2: s.Omega2,
	}
}

func (c *Config) InitMotion() pendulum.Motion { return c.InitState.Motion() }

// NewPendulum builds a simulation instance from the configuration.
func (c *Config) NewPendulum() *pendulum.Pendulum {
	p := pendulum.New(c.Pendulum, c.Origin)
	p.Motion = c.InitMotion()
	return p
}
