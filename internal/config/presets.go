package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/frostframe/internal/snow"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Presets are the named configurations offered to users. The engine never
// sees the names, only the values.
var Presets = map[string]snow.Config{
	"CALM": {
		ParticleCount: 150, BaseSpeed: 1.5, WindSensitivity: 0.5, SizeMultiplier: 1.0, Opacity: 0.8,
	},
	"HEAVY": {
		ParticleCount: 500, BaseSpeed: 3.0, WindSensitivity: 1.0, SizeMultiplier: 1.2, Opacity: 0.9,
	},
	"BLIZZARD": {
		ParticleCount: 1200, BaseSpeed: 6.0, WindSensitivity: 2.5, SizeMultiplier: 0.8, Opacity: 0.7,
	},
	"CUSTOM": {
		ParticleCount: 300, BaseSpeed: 2.0, WindSensitivity: 1.0, SizeMultiplier: 1.0, Opacity: 0.8,
	},
}

var presetOrder = []string{"CALM", "HEAVY", "BLIZZARD", "CUSTOM"}

// GetPreset looks a preset up by name, ignoring case.
func GetPreset(name string) (snow.Config, bool) {
	cfg, ok := Presets[strings.ToUpper(strings.TrimSpace(name))]
	return cfg, ok
}

// ListPresets returns the preset names in display order.
func ListPresets() []string {
	names := make([]string, len(presetOrder))
	copy(names, presetOrder)
	return names
}

// CanonicalName returns the upper-case preset name, or "" if unknown.
func CanonicalName(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	if _, ok := Presets[n]; ok {
		return n
	}
	return ""
}

// ProfileLoader finds user-saved configurations by name.
type ProfileLoader interface {
	Load(name string) (snow.Config, error)
}

// Resolve returns the named built-in preset, falling back to a saved profile
// when profiles is non-nil.
func Resolve(name string, profiles ProfileLoader) (snow.Config, error) {
	if cfg, ok := GetPreset(name); ok {
		return cfg, nil
	}
	if profiles != nil {
		cfg, err := profiles.Load(name)
		if err == nil {
			return cfg.Sanitize(), nil
		}
		return snow.Config{}, fmt.Errorf("%w: %q: %v", ErrUnknownPreset, name, err)
	}
	return snow.Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
