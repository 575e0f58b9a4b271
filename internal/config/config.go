package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/frostframe/internal/snow"
)

const (
	DefaultPreset      = "CALM"
	DefaultFPS         = 30
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultFadeSeconds = 1.0
	DefaultModel       = "gemini-3-flash-preview"
	DefaultAPIKeyEnv   = "GEMINI_API_KEY"
	DefaultTimeout     = 10 * time.Second
)

type Config struct {
	Preset   string        `yaml:"preset"`
	Snow     snow.Config   `yaml:"snow"`
	WindGain float64       `yaml:"wind_gain"`
	FPS      int           `yaml:"fps"`
	Seed     int64         `yaml:"seed"`
	Overlay  OverlayConfig `yaml:"overlay"`
	Content  ContentConfig `yaml:"content"`
}

type OverlayConfig struct {
	Transparent bool    `yaml:"transparent"`
	Topmost     bool    `yaml:"topmost"`
	Passthrough bool    `yaml:"passthrough"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FadeSeconds float64 `yaml:"fade_seconds"`
}

type ContentConfig struct {
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:   DefaultPreset,
		Snow:     Presets[DefaultPreset],
		WindGain: snow.DefaultWindGain,
		FPS:      DefaultFPS,
		Overlay: OverlayConfig{
			Transparent: true,
			Topmost:     true,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			FadeSeconds: DefaultFadeSeconds,
		},
		Content: ContentConfig{
			Model:     DefaultModel,
			APIKeyEnv: DefaultAPIKeyEnv,
			Timeout:   DefaultTimeout,
		},
	}
}

// Load reads a yaml file over the defaults. A preset named in the file fills
// the snow section unless the file also sets snow values explicitly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Snow map[string]any `yaml:"snow"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(probe.Snow) == 0 && cfg.Preset != "" {
		p, ok := GetPreset(cfg.Preset)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownPreset, cfg.Preset)
		}
		cfg.Snow = p
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize replaces unusable ambient values with defaults. The snow section
// is left to snow.Config.Sanitize, which the engine applies itself.
func (c *Config) normalize() {
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.WindGain < 0 {
		c.WindGain = snow.DefaultWindGain
	}
	if c.Overlay.Width <= 0 {
		c.Overlay.Width = DefaultWidth
	}
	if c.Overlay.Height <= 0 {
		c.Overlay.Height = DefaultHeight
	}
	if c.Overlay.FadeSeconds < 0 {
		c.Overlay.FadeSeconds = 0
	}
	if c.Content.Model == "" {
		c.Content.Model = DefaultModel
	}
	if c.Content.Timeout <= 0 {
		c.Content.Timeout = DefaultTimeout
	}
}

// APIKey returns the content API key from the configured environment
// variable, falling back to API_KEY.
func (c *Config) APIKey() string {
	if c.Content.APIKeyEnv != "" {
		if v := os.Getenv(c.Content.APIKeyEnv); v != "" {
			return v
		}
	}
	return os.Getenv("API_KEY")
}
