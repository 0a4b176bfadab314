package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// Backends
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// Defaults
const (
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultTPS           = 60
	DefaultTitle         = "Starfield"
	DefaultParticleColor = "#00a0e3"
	DefaultBackground    = "#0a0e17"
	DefaultBackdropSwing = 0.35
	DefaultMobileCount   = 30
	DefaultDesktopCount  = 80
	DefaultTwinkleChance = 0.005
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds everything the hosts need to build and show a field
type Config struct {
	Backend       string  `json:"backend"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Title         string  `json:"title"`
	TPS           int     `json:"tps"`
	Seed          int64   `json:"seed"` // 0 picks a time based seed
	ParticleColor string  `json:"particle_color"`
	Background    string  `json:"background"`
	BackdropSwing float64 `json:"backdrop_swing"`
	MobileCount   int     `json:"mobile_count"`
	DesktopCount  int     `json:"desktop_count"`
	TwinkleChance float64 `json:"twinkle_chance"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Backend:       BackendWindow,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Title:         DefaultTitle,
		TPS:           DefaultTPS,
		ParticleColor: DefaultParticleColor,
		Background:    DefaultBackground,
		BackdropSwing: DefaultBackdropSwing,
		MobileCount:   DefaultMobileCount,
		DesktopCount:  DefaultDesktopCount,
		TwinkleChance: DefaultTwinkleChance,
	}
}

// Read decodes a JSON file on top of the defaults without validating it, so
// callers can apply overrides first. Keys missing from the file keep their
// default value.
func Read(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads and validates a JSON config file
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks ranges and colours
func (c Config) Validate() error {
	switch c.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS)
	}
	if c.MobileCount < 0 || c.DesktopCount < 0 {
		return fmt.Errorf("%w: negative particle count", ErrInvalid)
	}
	if c.TwinkleChance < 0 || c.TwinkleChance > 1 {
		return fmt.Errorf("%w: twinkle chance %v", ErrInvalid, c.TwinkleChance)
	}
	if c.BackdropSwing < 0 || c.BackdropSwing > 1 {
		return fmt.Errorf("%w: backdrop swing %v", ErrInvalid, c.BackdropSwing)
	}
	if _, _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Palette parses the particle and background colours
func (c Config) Palette() (particle, background color.NRGBA, err error) {
	particle, err = parseHex(c.ParticleColor)
	if err != nil {
		return particle, background, fmt.Errorf("%w: particle_color: %v", ErrInvalid, err)
	}
	background, err = parseHex(c.Background)
	if err != nil {
		return particle, background, fmt.Errorf("%w: background: %v", ErrInvalid, err)
	}
	return particle, background, nil
}

func parseHex(s string) (color.NRGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
