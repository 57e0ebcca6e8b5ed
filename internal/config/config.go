package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Particle Field - Esc/Q: Quit, Space: Pause, R: Reset, O: Open preset, H: HUD"

	// Field defaults
	ParticleCount     = 80
	ParticleColor     = "rgba(255, 255, 255, 0.8)"
	LineColor         = "rgba(255, 255, 255, 0.2)"
	ParticleRadius    = 2
	LineWidth         = 1
	MaxLinkDistance   = 150
	Speed             = 0.5
	RepulsionRadius   = 100
	RepulsionStrength = 2
	IndexThreshold    = 200

	// Hero caption timing, in milliseconds
	TypingSpeed       = 100
	DeletingSpeed     = 50
	DelayBetweenTexts = 2000
	CursorBlink       = 500
	CounterDuration   = 2000
)

var (
	ErrInvalidWindow = errors.New("window size must be positive")
	ErrInvalidField  = errors.New("invalid field setting")
)

// Config is the full application configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Field   FieldConfig   `yaml:"field"`
	Hero    HeroConfig    `yaml:"hero"`
	Logging LoggingConfig `yaml:"logging"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// FieldConfig configures one particle field mount.
type FieldConfig struct {
	ParticleCount     int     `yaml:"particle_count"`
	ParticleColor     string  `yaml:"particle_color"`
	LineColor         string  `yaml:"line_color"`
	ParticleRadius    float64 `yaml:"particle_radius"`
	LineWidth         float64 `yaml:"line_width"`
	MaxLinkDistance   float64 `yaml:"max_link_distance"`
	Speed             float64 `yaml:"speed"`
	RepulsionRadius   float64 `yaml:"repulsion_radius"`
	RepulsionStrength float64 `yaml:"repulsion_strength"`
	IndexThreshold    int     `yaml:"index_threshold"` // 0 disables the spatial grid
	Seed              int64   `yaml:"seed"`            // 0 seeds from the clock
}

// HeroConfig configures the caption drawn over the field in window mode.
type HeroConfig struct {
	Lines             []string  `yaml:"lines"`
	TypingSpeedMs     int       `yaml:"typing_speed_ms"`
	DeletingSpeedMs   int       `yaml:"deleting_speed_ms"`
	DelayMs           int       `yaml:"delay_ms"`
	Loop              bool      `yaml:"loop"`
	Cursor            string    `yaml:"cursor"`
	CounterDurationMs int       `yaml:"counter_duration_ms"`
	ROI               ROIInputs `yaml:"roi"`
}

// ROIInputs mirrors the calculator sliders.
type ROIInputs struct {
	Employees   int     `yaml:"employees"`
	AvgSalary   float64 `yaml:"avg_salary"`
	ManualHours float64 `yaml:"manual_hours"`
	ErrorRate   float64 `yaml:"error_rate"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: true,
		},
		Field: DefaultField(),
		Hero: HeroConfig{
			Lines: []string{
				"Connect every process.",
				"Unify finance, supply chain and people.",
				"Turn data into decisions.",
			},
			TypingSpeedMs:     TypingSpeed,
			DeletingSpeedMs:   DeletingSpeed,
			DelayMs:           DelayBetweenTexts,
			Loop:              true,
			Cursor:            "|",
			CounterDurationMs: CounterDuration,
			ROI: ROIInputs{
				Employees:   50,
				AvgSalary:   50000,
				ManualHours: 10,
				ErrorRate:   15,
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func DefaultField() FieldConfig {
	return FieldConfig{
		ParticleCount:     ParticleCount,
		ParticleColor:     ParticleColor,
		LineColor:         LineColor,
		ParticleRadius:    ParticleRadius,
		LineWidth:         LineWidth,
		MaxLinkDistance:   MaxLinkDistance,
		Speed:             Speed,
		RepulsionRadius:   RepulsionRadius,
		RepulsionStrength: RepulsionStrength,
		IndexThreshold:    IndexThreshold,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate normalizes c in place and reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.Window.Title == "" {
		c.Window.Title = WindowTitle
	}
	if err := c.Field.Validate(); err != nil {
		return err
	}
	c.Hero.normalize()
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}

// Validate normalizes f in place. A negative particle count means an empty
// field, not an error.
func (f *FieldConfig) Validate() error {
	if f.ParticleCount < 0 {
		f.ParticleCount = 0
	}
	if _, err := ParseColor(f.ParticleColor); err != nil {
		return fmt.Errorf("%w: particle_color: %w", ErrInvalidField, err)
	}
	if _, err := ParseColor(f.LineColor); err != nil {
		return fmt.Errorf("%w: line_color: %w", ErrInvalidField, err)
	}
	for _, v := range []struct {
		name     string
		value    float64
		negative bool
	}{
		{"particle_radius", f.ParticleRadius, false},
		{"line_width", f.LineWidth, false},
		{"max_link_distance", f.MaxLinkDistance, false},
		{"speed", f.Speed, false},
		{"repulsion_radius", f.RepulsionRadius, false},
		{"repulsion_strength", f.RepulsionStrength, true},
	} {
		switch {
		case math.IsNaN(v.value) || math.IsInf(v.value, 0):
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidField, v.name, v.value)
		case !v.negative && v.value < 0:
			return fmt.Errorf("%w: %s %v < 0", ErrInvalidField, v.name, v.value)
		}
	}
	if f.IndexThreshold < 0 {
		f.IndexThreshold = 0
	}
	return nil
}

// Colors returns the parsed particle and line colors. Invalid colors fall
// back to the defaults; call Validate to surface the error instead.
func (f FieldConfig) Colors() (particle, line color.NRGBA) {
	var err error
	if particle, err = ParseColor(f.ParticleColor); err != nil {
		particle, _ = ParseColor(ParticleColor)
	}
	if line, err = ParseColor(f.LineColor); err != nil {
		line, _ = ParseColor(LineColor)
	}
	return particle, line
}

func (h *HeroConfig) normalize() {
	if h.TypingSpeedMs <= 0 {
		h.TypingSpeedMs = TypingSpeed
	}
	if h.DeletingSpeedMs <= 0 {
		h.DeletingSpeedMs = DeletingSpeed
	}
	if h.DelayMs < 0 {
		h.DelayMs = DelayBetweenTexts
	}
	if h.CounterDurationMs <= 0 {
		h.CounterDurationMs = CounterDuration
	}
}
