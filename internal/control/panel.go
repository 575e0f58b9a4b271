package control

import (
	"math"

	"github.com/san-kum/frostframe/internal/config"
	"github.com/san-kum/frostframe/internal/snow"
)

type Action int

const (
	None Action = iota
	TogglePower
	Preset1
	Preset2
	Preset3
	Preset4
	MoreFlakes
	FewerFlakes
	Faster
	Slower
	MoreWind
	LessWind
	Bigger
	Smaller
	Brighter
	Dimmer
	CycleTheme
	Fullscreen
	Quit
)

var keyActions = map[string]Action{
	" ":      TogglePower,
	"space":  TogglePower,
	"1":      Preset1,
	"2":      Preset2,
	"3":      Preset3,
	"4":      Preset4,
	"up":     MoreFlakes,
	"down":   FewerFlakes,
	"right":  Faster,
	"left":   Slower,
	"W":      MoreWind,
	"w":      LessWind,
	"S":      Bigger,
	"s":      Smaller,
	"O":      Brighter,
	"o":      Dimmer,
	"t":      CycleTheme,
	"f11":    Fullscreen,
	"q":      Quit,
	"esc":    Quit,
	"ctrl+c": Quit,
}

// ActionForKey returns the action bound to a key name as bubbletea spells it.
func ActionForKey(key string) Action {
	return keyActions[key]
}

const (
	CountStep   = 50
	MaxCount    = 2000
	SpeedStep   = 0.5
	MinSpeed    = 0.5
	MaxSpeed    = 10
	WindStep    = 0.1
	MaxWind     = 5
	SizeStep    = 0.1
	MinSize     = 0.1
	MaxSize     = 5
	OpacityStep = 0.05
)

// Engine is the part of snow.Engine a panel drives.
type Engine interface {
	Start()
	Stop()
	Running() bool
	UpdateConfig(cfg snow.Config)
}

// Panel holds the user-facing configuration state.
type Panel struct {
	Preset string
	Config snow.Config
}

func NewPanel(preset string, cfg snow.Config) *Panel {
	return &Panel{Preset: preset, Config: cfg.Sanitize()}
}

// Apply performs a and reports whether the panel handled it. Config changes are
// pushed to e.
func (p *Panel) Apply(a Action, e Engine) bool {
	switch a {
	case TogglePower:
		if e.Running() {
			e.Stop()
		} else {
			e.Start()
		}
		return true
	case Preset1, Preset2, Preset3, Preset4:
		name := config.ListPresets()[a-Preset1]
		cfg, _ := config.GetPreset(name)
		p.Preset, p.Config = name, cfg
		e.UpdateConfig(cfg)
		return true
	}

	next, ok := p.adjust(a)
	if !ok {
		return false
	}
	p.Preset, p.Config = "CUSTOM", next
	e.UpdateConfig(next)
	return true
}

func (p *Panel) adjust(a Action) (snow.Config, bool) {
	c := p.Config
	switch a {
	case MoreFlakes:
		c.ParticleCount = min(c.ParticleCount+CountStep, MaxCount)
	case FewerFlakes:
		c.ParticleCount = max(c.ParticleCount-CountStep, 0)
	case Faster:
		c.BaseSpeed = step(c.BaseSpeed, SpeedStep, MinSpeed, MaxSpeed)
	case Slower:
		c.BaseSpeed = step(c.BaseSpeed, -SpeedStep, MinSpeed, MaxSpeed)
	case MoreWind:
		c.WindSensitivity = step(c.WindSensitivity, WindStep, 0, MaxWind)
	case LessWind:
		c.WindSensitivity = step(c.WindSensitivity, -WindStep, 0, MaxWind)
	case Bigger:
		c.SizeMultiplier = step(c.SizeMultiplier, SizeStep, MinSize, MaxSize)
	case Smaller:
		c.SizeMultiplier = step(c.SizeMultiplier, -SizeStep, MinSize, MaxSize)
	case Brighter:
		c.Opacity = step(c.Opacity, OpacityStep, 0, 1)
	case Dimmer:
		c.Opacity = step(c.Opacity, -OpacityStep, 0, 1)
	default:
		return c, false
	}
	return c, true
}

// step adds delta and clamps, rounding to two decimals so repeated presses
// land on the slider values.
func step(v, delta, lo, hi float64) float64 {
	v = math.Round((v+delta)*100) / 100
	return math.Max(lo, math.Min(hi, v))
}
