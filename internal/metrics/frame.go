package metrics

import (
	"math"
	"time"

	"github.com/san-kum/frostframe/internal/snow"
)

// DefaultHistory bounds the samples a FrameTimer keeps for plotting.
const DefaultHistory = 600

// FrameTimer tracks how long each render step took.
type FrameTimer struct {
	name    string
	history int
	samples []float64
	total   time.Duration
	max     time.Duration
	frames  int
}

func NewFrameTimer(history int) *FrameTimer {
	if history <= 0 {
		history = DefaultHistory
	}
	return &FrameTimer{name: "frame_ms", history: history}
}

func (f *FrameTimer) Name() string { return f.name }

func (f *FrameTimer) OnFrame(stats snow.FrameStats) {
	f.frames++
	f.total += stats.Elapsed
	if stats.Elapsed > f.max {
		f.max = stats.Elapsed
	}
	f.samples = append(f.samples, ms(stats.Elapsed))
	if len(f.samples) > f.history {
		f.samples = f.samples[len(f.samples)-f.history:]
	}
}

// Value is the mean step time in milliseconds.
func (f *FrameTimer) Value() float64 {
	if f.frames == 0 {
		return 0
	}
	return ms(f.total) / float64(f.frames)
}

func (f *FrameTimer) Max() float64 { return ms(f.max) }

func (f *FrameTimer) Frames() int { return f.frames }

// Samples returns the most recent step times in milliseconds, oldest first.
func (f *FrameTimer) Samples() []float64 {
	out := make([]float64, len(f.samples))
	copy(out, f.samples)
	return out
}

func (f *FrameTimer) Reset() {
	f.samples = f.samples[:0]
	f.total = 0
	f.max = 0
	f.frames = 0
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Population tracks the live particle count.
type Population struct {
	name    string
	total   int
	last    int
	peak    int
	samples int
}

func NewPopulation() *Population {
	return &Population{name: "particles"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) OnFrame(stats snow.FrameStats) {
	p.total += stats.Particles
	p.last = stats.Particles
	if stats.Particles > p.peak {
		p.peak = stats.Particles
	}
	p.samples++
}

// Value is the mean particle count per frame.
func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.total) / float64(p.samples)
}

func (p *Population) Last() int { return p.last }

func (p *Population) Peak() int { return p.peak }

func (p *Population) Reset() {
	p.total, p.last, p.peak, p.samples = 0, 0, 0, 0
}

// Gust records the strongest wind seen, in either direction.
type Gust struct {
	name string
	max  float64
}

func NewGust() *Gust {
	return &Gust{name: "max_wind"}
}

func (g *Gust) Name() string { return g.name }

func (g *Gust) OnFrame(stats snow.FrameStats) {
	g.max = math.Max(g.max, math.Abs(stats.Wind))
}

func (g *Gust) Value() float64 { return g.max }

func (g *Gust) Reset() { g.max = 0 }
