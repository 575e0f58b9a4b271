package snow

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine owns the particle collection, the drawing surface binding and the
// render loop.
type Engine struct {
	surface   Surface
	ctx       Context
	viewport  Viewport
	scheduler Scheduler

	cfg       Config
	particles []*Particle
	wind      float64
	windGain  float64

	running   bool
	destroyed bool
	frame     FrameHandle
	frames    uint64

	subs      []Subscription
	rng       Rand
	observers []Observer
	log       logrus.FieldLogger
}

// Option customises an Engine at construction.
type Option func(*Engine)

// WithWindGain sets the wind reached at the viewport edges.
func WithWindGain(g float64) Option {
	return func(e *Engine) { e.windGain = g }
}

// WithRand sets the random source used for spawning and re-entry.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithObserver registers an observer notified after every frame.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// New binds an engine to surface, sizes it to the viewport, spawns
// cfg.ParticleCount particles and subscribes to resize and pointer-move.
// It fails if the surface cannot provide a 2D context.
func New(surface Surface, viewport Viewport, scheduler Scheduler, cfg Config, opts ...Option) (*Engine, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	if viewport == nil || scheduler == nil {
		return nil, ErrNilHost
	}

	ctx, err := surface.Context2D()
	if err != nil {
		return nil, fmt.Errorf("acquire context: %w", err)
	}
	if ctx == nil {
		return nil, ErrNoContext
	}

	e := &Engine{
		surface:   surface,
		ctx:       ctx,
		viewport:  viewport,
		scheduler: scheduler,
		cfg:       cfg.Sanitize(),
		windGain:  DefaultWindGain,
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if e.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.log = l
	}

	e.resize(viewport.Size())
	e.initParticles()

	e.subs = append(e.subs,
		viewport.OnResize(e.resize),
		viewport.OnPointerMove(e.pointerMove),
	)

	e.log.WithField("particles", len(e.particles)).Debug("snow: engine created")
	return e, nil
}

func (e *Engine) resize(width, height int) {
	e.surface.SetSize(width, height)
}

func (e *Engine) pointerMove(x, _ float64) {
	w, _ := e.viewport.Size()
	center := float64(w) / 2
	if center <= 0 {
		e.wind = 0
		return
	}
	e.wind = (x - center) / center * e.windGain
}

func (e *Engine) initParticles() {
	w, h := e.surface.Size()
	e.particles = make([]*Particle, 0, e.cfg.ParticleCount)
	for i := 0; i < e.cfg.ParticleCount; i++ {
		e.particles = append(e.particles, NewParticle(e.rng, float64(w), float64(h), e.cfg))
	}
}

// UpdateConfig converges the particle count to cfg.ParticleCount and swaps the
// configuration. Existing particles keep their traits; only particles spawned
// from now on reflect cfg.
func (e *Engine) UpdateConfig(cfg Config) {
	cfg = cfg.Sanitize()
	diff := cfg.ParticleCount - len(e.particles)

	switch {
	case diff > 0:
		w, h := e.surface.Size()
		for i := 0; i < diff; i++ {
			e.particles = append(e.particles, NewParticle(e.rng, float64(w), float64(h), cfg))
		}
	case diff < 0:
		n := copy(e.particles, e.particles[-diff:])
		for i := n; i < len(e.particles); i++ {
			e.particles[i] = nil
		}
		e.particles = e.particles[:n]
	}

	e.cfg = cfg
	e.log.WithFields(logrus.Fields{
		"particles": len(e.particles),
		"delta":     diff,
	}).Debug("snow: config updated")
}

// Start begins the render loop. It is a no-op while running or after Destroy.
func (e *Engine) Start() {
	if e.destroyed {
		e.log.Warn("snow: start after destroy ignored")
		return
	}
	if e.running {
		return
	}
	e.running = true
	e.step()
}

// Stop halts the render loop and clears the surface. It is a no-op when stopped.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.scheduler.CancelFrame(e.frame)
	e.frame = 0
	e.running = false
	e.ctx.Clear()
}

// Destroy stops the engine and releases its signal subscriptions.
// The engine cannot be restarted afterwards.
func (e *Engine) Destroy() {
	e.Stop()
	for _, s := range e.subs {
		s.Release()
	}
	e.subs = nil
	if !e.destroyed {
		e.log.Debug("snow: engine destroyed")
	}
	e.destroyed = true
}

// step renders one frame and requests the next.
func (e *Engine) step() {
	if !e.running {
		return
	}
	start := time.Now()

	w, h := e.surface.Size()
	fw, fh := float64(w), float64(h)

	e.ctx.Clear()
	for _, p := range e.particles {
		p.Update(fw, fh, e.wind, e.cfg)
		p.Draw(e.ctx)
	}
	e.frames++

	if len(e.observers) > 0 {
		stats := FrameStats{
			Frame:     e.frames,
			Particles: len(e.particles),
			Wind:      e.wind,
			Elapsed:   time.Since(start),
		}
		for _, o := range e.observers {
			o.OnFrame(stats)
		}
	}

	e.frame = e.scheduler.RequestFrame(e.step)
}

// Running reports whether the render loop is active.
func (e *Engine) Running() bool { return e.running }

// Destroyed reports whether Destroy has been called.
func (e *Engine) Destroyed() bool { return e.destroyed }

// Wind returns the current wind scalar.
func (e *Engine) Wind() float64 { return e.wind }

// Config returns the configuration in effect.
func (e *Engine) Config() Config { return e.cfg }

// Len returns the number of live particles.
func (e *Engine) Len() int { return len(e.particles) }

// Frames returns the number of rendered frames.
func (e *Engine) Frames() uint64 { return e.frames }

// Particles returns a copy of every particle, oldest first.
func (e *Engine) Particles() []Particle {
	out := make([]Particle, len(e.particles))
	for i, p := range e.particles {
		out[i] = *p
	}
	return out
}
