// Package config loads and validates truthscene's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/taigrr/truthscene/pkg/models"
	"github.com/taigrr/truthscene/pkg/render"
	"github.com/taigrr/truthscene/pkg/scene"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "truthscene.yaml"

// Config is the whole configuration file.
type Config struct {
	Scene   scene.Tuning  `yaml:"scene"`
	Render  RenderConfig  `yaml:"render"`
	Page    PageConfig    `yaml:"page"`
	Logging LoggingConfig `yaml:"logging"`
	Sound   SoundConfig   `yaml:"sound"`
}

// RenderConfig controls drawing.
type RenderConfig struct {
	FPS        int    `yaml:"fps"`
	Background string `yaml:"background"`
	Accent     string `yaml:"accent"`
	Glow       string `yaml:"glow"`
	Shadow     string `yaml:"shadow"`
	CoreModel  string `yaml:"core_model"` // optional .glb replacing a core layer
	CoreLayer  string `yaml:"core_layer"` // layer the model replaces
	Width      int    `yaml:"width"`      // headless frame width in pixels
	Height     int    `yaml:"height"`     // headless frame height in pixels
	ShowHUD    bool   `yaml:"show_hud"`
}

// PageConfig shapes the virtual page scrolled in the terminal.
type PageConfig struct {
	Viewports float64 `yaml:"viewports"`  // page length in viewport heights
	WheelStep float64 `yaml:"wheel_step"` // rows scrolled per wheel notch
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SoundConfig controls the intro chimes.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Tone    float64 `yaml:"tone"` // base frequency in Hz
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Scene: scene.DefaultTuning(),
		Render: RenderConfig{
			FPS:        60,
			Background: "#0a0a0c",
			Accent:     "#d4a574",
			Glow:       "#ffd6a0",
			Shadow:     "#8b4513",
			CoreLayer:  "outer",
			Width:      320,
			Height:     180,
			ShowHUD:    true,
		},
		Page: PageConfig{
			Viewports: 5,
			WheelStep: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "truthscene.log",
		},
		Sound: SoundConfig{
			Enabled: false,
			Tone:    440,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Malformed
// values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRUTHSCENE_FPS"); v != "" {
		if fps, err := strconv.Atoi(v); err == nil {
			c.Render.FPS = fps
		}
	}
	if v := os.Getenv("TRUTHSCENE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TRUTHSCENE_SOUND"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Sound.Enabled = on
		}
	}
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Logging.Level)
}

// Palette returns the render palette.
func (c *Config) Palette() (render.Palette, error) {
	return render.ParsePalette(c.Render.Background, c.Render.Accent, c.Render.Glow, c.Render.Shadow)
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Render.FPS < 1 || c.Render.FPS > 240 {
		add("render.fps must be between 1 and 240, got %d", c.Render.FPS)
	}
	if c.Render.Width < 1 || c.Render.Height < 1 {
		add("render.width and render.height must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		add("logging.level: %w", err)
	}
	if c.Page.Viewports < 1 {
		add("page.viewports must be at least 1, got %v", c.Page.Viewports)
	}
	if c.Page.WheelStep <= 0 {
		add("page.wheel_step must be positive, got %v", c.Page.WheelStep)
	}
	if c.Sound.Tone <= 0 {
		add("sound.tone must be positive, got %v", c.Sound.Tone)
	}

	errs = append(errs, validateTuning(&c.Scene)...)
	return errors.Join(errs...)
}

func validateTuning(t *scene.Tuning) []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	dampings := t.Dampings()
	for _, name := range slices.Sorted(maps.Keys(dampings)) {
		if d := dampings[name]; !(d > 0 && d <= 1) {
			add("scene.%s must be in (0, 1], got %v", name, d)
		}
	}
	if t.Particles.ScatterDrag >= 1 {
		add("scene.particles.scatter_drag must be below 1 to bound scatter speed, got %v", t.Particles.ScatterDrag)
	}
	p := t.Particles
	if p.PoolSize < 0 || p.ActiveLanding < 0 || p.ActiveTransitioning < 0 || p.ActiveDashboard < 0 {
		add("scene.particles counts must not be negative")
	}
	if p.SpeedMin > p.SpeedMax || p.SizeMin > p.SizeMax {
		add("scene.particles ranges must have min <= max")
	}
	for _, l := range t.Core.Layers {
		if _, err := models.Shape(l.Shape); err != nil {
			add("scene.core.layers[%s]: %w", l.Name, err)
		}
	}
	for i, a := range t.Accents.Accents {
		if !a.Kind.Valid() {
			add("scene.accents.accents[%d]: unknown kind %q", i, a.Kind)
		}
	}
	in := t.Intro
	if in.Drawing < 0 || in.Filling < 0 || in.Glowing < 0 || in.Complete < 0 || in.ClearDelay < 0 {
		add("scene.intro durations must not be negative")
	}
	if in.SpringFreq <= 0 || in.SpringDamp <= 0 {
		add("scene.intro spring frequency and damping must be positive")
	}
	if t.Navigation.TransitionHold < 0 {
		add("scene.navigation.transition_hold must not be negative, got %v", t.Navigation.TransitionHold)
	}
	if t.Camera.FOV <= 0 || t.Camera.FOV >= 180 {
		add("scene.camera.fov_degrees must be in (0, 180), got %v", t.Camera.FOV)
	}
	return errs
}
