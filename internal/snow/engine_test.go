package snow

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

type testSurface struct {
	w, h    int
	ctx     *recordingContext
	noCtx   bool
	resizes int
}

func (s *testSurface) Size() (int, int) { return s.w, s.h }
func (s *testSurface) SetSize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
}
func (s *testSurface) Context2D() (Context, error) {
	if s.noCtx {
		return nil, ErrNoContext
	}
	return s.ctx, nil
}

type testSub struct {
	released *int
}

func (s testSub) Release() { *s.released++ }

type testViewport struct {
	w, h     int
	onResize func(int, int)
	onMove   func(float64, float64)
	subs     int
	released int
}

func (v *testViewport) Size() (int, int) { return v.w, v.h }
func (v *testViewport) OnResize(fn func(int, int)) Subscription {
	v.onResize = fn
	v.subs++
	return testSub{&v.released}
}
func (v *testViewport) OnPointerMove(fn func(float64, float64)) Subscription {
	v.onMove = fn
	v.subs++
	return testSub{&v.released}
}

type testScheduler struct {
	pending   func()
	next      FrameHandle
	requests  int
	cancelled int
}

func (s *testScheduler) RequestFrame(fn func()) FrameHandle {
	s.requests++
	s.next++
	s.pending = fn
	return s.next
}

func (s *testScheduler) CancelFrame(h FrameHandle) {
	if h == s.next {
		s.pending = nil
		s.cancelled++
	}
}

func (s *testScheduler) tick() {
	fn := s.pending
	s.pending = nil
	if fn != nil {
		fn()
	}
}

type testHarness struct {
	surface  *testSurface
	viewport *testViewport
	sched    *testScheduler
	engine   *Engine
}

func newHarness(t *testing.T, cfg Config, opts ...Option) *testHarness {
	t.Helper()
	h := &testHarness{
		surface:  &testSurface{ctx: &recordingContext{}},
		viewport: &testViewport{w: 800, h: 600},
		sched:    &testScheduler{},
	}
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(42, 42)))}, opts...)
	e, err := New(h.surface, h.viewport, h.sched, cfg, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	h.engine = e
	return h
}

func TestNewEngine(t *testing.T) {
	h := newHarness(t, calm)

	if w, hh := h.surface.Size(); w != 800 || hh != 600 {
		t.Errorf("surface = %dx%d, want 800x600", w, hh)
	}
	if h.engine.Len() != 150 {
		t.Errorf("particles = %d, want 150", h.engine.Len())
	}
	if h.viewport.subs != 2 {
		t.Errorf("subscriptions = %d, want 2", h.viewport.subs)
	}
	if h.engine.Running() {
		t.Error("engine should not run before Start")
	}
	if h.sched.requests != 0 {
		t.Errorf("frame requested before Start")
	}
}

func TestNewEngineErrors(t *testing.T) {
	vp := &testViewport{w: 10, h: 10}
	sched := &testScheduler{}

	_, err := New(&testSurface{noCtx: true}, vp, sched, calm)
	if !errors.Is(err, ErrNoContext) {
		t.Errorf("err = %v, want ErrNoContext", err)
	}
	if vp.subs != 0 {
		t.Errorf("failed construction subscribed %d listeners", vp.subs)
	}

	if _, err := New(nil, vp, sched, calm); !errors.Is(err, ErrNilSurface) {
		t.Errorf("err = %v, want ErrNilSurface", err)
	}
	if _, err := New(&testSurface{ctx: &recordingContext{}}, nil, sched, calm); !errors.Is(err, ErrNilHost) {
		t.Errorf("err = %v, want ErrNilHost", err)
	}
}

func TestUpdateConfigConverges(t *testing.T) {
	tests := []struct {
		name  string
		start int
		next  int
		want  int
	}{
		{"grow", 10, 25, 25},
		{"shrink", 25, 10, 10},
		{"unchanged", 10, 10, 10},
		{"to zero", 10, 0, 0},
		{"from zero", 0, 40, 40},
		{"negative clamps", 10, -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := calm
			start.ParticleCount = tt.start
			h := newHarness(t, start)

			next := calm
			next.ParticleCount = tt.next
			h.engine.UpdateConfig(next)

			if h.engine.Len() != tt.want {
				t.Errorf("len = %d, want %d", h.engine.Len(), tt.want)
			}
			if h.engine.Config().ParticleCount != tt.want {
				t.Errorf("config count = %d, want %d", h.engine.Config().ParticleCount, tt.want)
			}
		})
	}
}

func TestUpdateConfigShrinkDropsOldest(t *testing.T) {
	cfg := calm
	cfg.ParticleCount = 5
	h := newHarness(t, cfg)
	before := h.engine.Particles()

	cfg.ParticleCount = 2
	h.engine.UpdateConfig(cfg)
	after := h.engine.Particles()

	for i := range after {
		if after[i].Size() != before[i+3].Size() {
			t.Errorf("particle %d is not the survivor from index %d", i, i+3)
		}
	}
}

func TestUpdateConfigFreezesExistingTraits(t *testing.T) {
	cfg := calm
	cfg.ParticleCount = 10
	h := newHarness(t, cfg)
	before := h.engine.Particles()

	blizzard := Config{ParticleCount: 20, BaseSpeed: 6, WindSensitivity: 2.5, SizeMultiplier: 0.8, Opacity: 0.7}
	h.engine.UpdateConfig(blizzard)
	after := h.engine.Particles()

	for i := 0; i < 10; i++ {
		_, vyBefore := before[i].Velocity()
		_, vyAfter := after[i].Velocity()
		if after[i].Size() != before[i].Size() || after[i].Opacity() != before[i].Opacity() || vyAfter != vyBefore {
			t.Errorf("particle %d traits changed", i)
		}
	}
	for i := 10; i < 20; i++ {
		_, vy := after[i].Velocity()
		if vy < 3 || vy > 9 {
			t.Errorf("new particle %d vy=%v not blizzard-derived", i, vy)
		}
	}
	if h.engine.Config() != blizzard {
		t.Errorf("config = %+v, want %+v", h.engine.Config(), blizzard)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	h := newHarness(t, calm)

	h.engine.Start()
	h.engine.Start()

	if !h.engine.Running() {
		t.Fatal("expected running")
	}
	if h.sched.requests != 1 {
		t.Errorf("frame requests = %d, want 1", h.sched.requests)
	}
	if h.engine.Frames() != 1 {
		t.Errorf("frames = %d, want 1", h.engine.Frames())
	}

	h.sched.tick()
	if h.engine.Frames() != 2 || h.sched.requests != 2 {
		t.Errorf("after tick frames=%d requests=%d, want 2 and 2", h.engine.Frames(), h.sched.requests)
	}
}

func TestStopIsIdempotentAndClears(t *testing.T) {
	h := newHarness(t, calm)
	ctx := h.surface.ctx

	h.engine.Stop()
	if ctx.clears != 0 {
		t.Error("stop on a stopped engine should not touch the surface")
	}

	h.engine.Start()
	if len(ctx.circles) != 150 {
		t.Fatalf("drawn = %d, want 150", len(ctx.circles))
	}

	h.engine.Stop()
	h.engine.Stop()

	if h.engine.Running() {
		t.Error("expected stopped")
	}
	if len(ctx.circles) != 0 {
		t.Errorf("surface still holds %d circles", len(ctx.circles))
	}
	if h.sched.cancelled != 1 {
		t.Errorf("cancelled = %d, want 1", h.sched.cancelled)
	}
	if h.sched.pending != nil {
		t.Error("frame still pending after Stop")
	}

	h.engine.Start()
	if !h.engine.Running() {
		t.Error("engine should restart after Stop")
	}
}

func TestWind(t *testing.T) {
	tests := []struct {
		name  string
		width int
		gain  float64
		x     float64
		want  float64
	}{
		{"centre", 800, 2, 400, 0},
		{"right edge", 800, 2, 800, 2},
		{"left edge", 800, 2, 0, -2},
		{"quarter right", 800, 2, 600, 1},
		{"custom gain", 800, 5, 0, -5},
		{"zero width", 0, 2, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, calm, WithWindGain(tt.gain))
			h.viewport.w = tt.width
			h.viewport.onMove(tt.x, 0)

			if got := h.engine.Wind(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("wind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindIsOddSymmetric(t *testing.T) {
	h := newHarness(t, calm)
	prev := math.Inf(-1)
	for x := 0.0; x <= 800; x += 25 {
		h.viewport.onMove(x, 0)
		right := h.engine.Wind()
		h.viewport.onMove(800-x, 0)
		left := h.engine.Wind()

		if math.Abs(right+left) > 1e-12 {
			t.Errorf("wind(%v)=%v, wind(%v)=%v not symmetric", x, right, 800-x, left)
		}
		if right < prev {
			t.Errorf("wind not monotonic at x=%v", x)
		}
		prev = right
	}
}

func TestResizeKeepsParticles(t *testing.T) {
	h := newHarness(t, calm)
	before := h.engine.Particles()

	h.viewport.onResize(1024, 768)

	if w, hh := h.surface.Size(); w != 1024 || hh != 768 {
		t.Errorf("surface = %dx%d, want 1024x768", w, hh)
	}
	after := h.engine.Particles()
	for i := range before {
		bx, by := before[i].Position()
		ax, ay := after[i].Position()
		if bx != ax || by != ay {
			t.Fatalf("particle %d moved on resize", i)
		}
	}
}

func TestDestroy(t *testing.T) {
	h := newHarness(t, calm)
	h.engine.Start()

	h.engine.Destroy()

	if h.viewport.released != 2 {
		t.Errorf("released = %d, want 2", h.viewport.released)
	}
	if h.engine.Running() || !h.engine.Destroyed() {
		t.Error("engine should be stopped and destroyed")
	}
	if h.sched.pending != nil {
		t.Error("frame still pending after Destroy")
	}

	h.engine.Start()
	if h.engine.Running() || h.sched.pending != nil {
		t.Error("start after destroy should be ignored")
	}

	h.engine.Destroy()
	if h.viewport.released != 2 {
		t.Errorf("second destroy released again: %d", h.viewport.released)
	}
}

type countingObserver struct {
	frames []FrameStats
}

func (c *countingObserver) OnFrame(s FrameStats) { c.frames = append(c.frames, s) }

func TestObserver(t *testing.T) {
	obs := &countingObserver{}
	h := newHarness(t, calm, WithObserver(obs))

	h.engine.Start()
	h.sched.tick()
	h.sched.tick()

	if len(obs.frames) != 3 {
		t.Fatalf("observed %d frames, want 3", len(obs.frames))
	}
	last := obs.frames[2]
	if last.Frame != 3 || last.Particles != 150 {
		t.Errorf("last stats = %+v", last)
	}
}

func TestStepUsesLiveConfigAndSize(t *testing.T) {
	cfg := Config{ParticleCount: 1, BaseSpeed: 1, SizeMultiplier: 1, Opacity: 1}
	h := newHarness(t, cfg)
	h.engine.Start()

	h.viewport.onResize(50, 50)
	h.viewport.onMove(50, 0)
	h.engine.UpdateConfig(Config{ParticleCount: 1, BaseSpeed: 1, WindSensitivity: 1, SizeMultiplier: 1, Opacity: 1})

	for i := 0; i < 100; i++ {
		h.sched.tick()
	}
	for _, p := range h.engine.Particles() {
		x, y := p.Position()
		if x < 0 || x >= 50 || y < RespawnY || y > 50 {
			t.Errorf("particle (%v, %v) escaped resized surface", x, y)
		}
	}
}
