package snow

import (
	"image/color"
	"math"
)

// Particle is one snowflake. Size, opacity and velocity are fixed at spawn;
// only the position changes afterwards.
type Particle struct {
	x, y    float64
	vx, vy  float64
	size    float64
	opacity float64
	rng     Rand
}

// NewParticle places a particle uniformly inside a width×height surface and
// draws its traits from cfg. rng is kept for re-entry after wrapping.
func NewParticle(rng Rand, width, height float64, cfg Config) *Particle {
	return &Particle{
		x:       rng.Float64() * width,
		y:       rng.Float64() * height,
		size:    (rng.Float64()*2 + 1) * cfg.SizeMultiplier,
		opacity: rng.Float64() * cfg.Opacity,
		vx:      (rng.Float64() - 0.5) * LateralDrift,
		vy:      (rng.Float64() + 0.5) * cfg.BaseSpeed,
		rng:     rng,
	}
}

// Update advances the particle one frame. The surface size is passed on every
// call because the surface may have been resized since the last frame.
func (p *Particle) Update(width, height, wind float64, cfg Config) {
	p.x += p.vx + wind*cfg.WindSensitivity
	p.y += p.vy
	p.x += math.Sin(p.y*TurbulenceFreq) * TurbulenceAmp

	if p.y > height {
		p.y = RespawnY
		p.x = p.rng.Float64() * width
	}
	if p.x >= width {
		p.x = 0
	} else if p.x < 0 {
		// largest value still inside [0, width)
		p.x = math.Max(math.Nextafter(width, 0), 0)
	}
}

// Draw paints the particle as a white disc at its fixed opacity.
func (p *Particle) Draw(ctx Context) {
	ctx.FillCircle(p.x, p.y, p.size, color.NRGBA{R: 255, G: 255, B: 255, A: alpha8(p.opacity)})
}

// Position returns the current centre.
func (p *Particle) Position() (x, y float64) { return p.x, p.y }

// Velocity returns the per-frame displacement fixed at spawn.
func (p *Particle) Velocity() (vx, vy float64) { return p.vx, p.vy }

// Size returns the radius in pixels.
func (p *Particle) Size() float64 { return p.size }

// Opacity returns the alpha in [0,1].
func (p *Particle) Opacity() float64 { return p.opacity }

func alpha8(a float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(a, 0), 1) * 255))
}
