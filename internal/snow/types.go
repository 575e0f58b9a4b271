package snow

import (
	"image/color"
	"math"
	"time"
)

const (
	// DefaultWindGain is the wind value reached with the pointer at a viewport edge.
	DefaultWindGain = 2.0
	// TurbulenceFreq and TurbulenceAmp shape the per-frame sin(y) wiggle.
	TurbulenceFreq = 0.01
	TurbulenceAmp  = 0.5
	// RespawnY is where a particle re-enters after falling past the bottom edge.
	RespawnY = -10.0
	// LateralDrift is the full width of the random spawn-time vx range.
	LateralDrift = 0.5
)

// Config is the five-field parameter set. It is replaced wholesale on change.
type Config struct {
	ParticleCount   int     `yaml:"particle_count" json:"particleCount"`
	BaseSpeed       float64 `yaml:"base_speed" json:"baseSpeed"`
	WindSensitivity float64 `yaml:"wind_sensitivity" json:"windSensitivity"`
	SizeMultiplier  float64 `yaml:"size_multiplier" json:"sizeMultiplier"`
	Opacity         float64 `yaml:"opacity" json:"opacity"`
}

// Sanitize returns a copy safe to feed the render loop: negative counts become
// zero, non-finite or negative reals become zero, opacity is clamped to [0,1].
func (c Config) Sanitize() Config {
	if c.ParticleCount < 0 {
		c.ParticleCount = 0
	}
	c.BaseSpeed = nonNegative(c.BaseSpeed)
	c.WindSensitivity = nonNegative(c.WindSensitivity)
	c.SizeMultiplier = nonNegative(c.SizeMultiplier)
	c.Opacity = math.Min(nonNegative(c.Opacity), 1)
	return c
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Context is the 2D drawing context of a Surface.
type Context interface {
	// Clear erases the whole surface to transparent.
	Clear()
	// FillCircle paints a filled circle centred at (x, y).
	FillCircle(x, y, radius float64, c color.NRGBA)
}

// Surface is a resizable drawing target.
type Surface interface {
	Size() (width, height int)
	SetSize(width, height int)
	// Context2D returns the drawing context, or an error wrapping ErrNoContext.
	Context2D() (Context, error)
}

// Subscription is a handle to a registered signal callback.
// Release unregisters it; releasing twice is harmless.
type Subscription interface {
	Release()
}

// Viewport delivers the ambient signals an engine listens to.
type Viewport interface {
	Size() (width, height int)
	OnResize(fn func(width, height int)) Subscription
	OnPointerMove(fn func(x, y float64)) Subscription
}

// FrameHandle identifies a pending frame request. Zero means none.
type FrameHandle uint64

// Scheduler runs callbacks in step with the display refresh.
type Scheduler interface {
	// RequestFrame schedules fn to run once, on the next display frame.
	RequestFrame(fn func()) FrameHandle
	// CancelFrame drops a pending request. Unknown handles are ignored.
	CancelFrame(h FrameHandle)
}

// Rand is the random source particles draw their traits from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// FrameStats describes one completed render step.
type FrameStats struct {
	Frame     uint64
	Particles int
	Wind      float64
	Elapsed   time.Duration
}

// Observer is notified after every render step.
type Observer interface {
	OnFrame(stats FrameStats)
}
