package host

import "testing"

func TestLoopTickRunsPendingOnce(t *testing.T) {
	l := NewLoop(100, 50)

	if l.Tick() {
		t.Fatal("tick with nothing pending should report false")
	}

	calls := 0
	l.RequestFrame(func() { calls++ })
	if !l.Pending() {
		t.Fatal("expected pending frame")
	}

	if !l.Tick() {
		t.Fatal("expected tick to run the callback")
	}
	if l.Tick() {
		t.Error("callback should not run twice")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if l.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1", l.Ticks())
	}
}

func TestLoopRescheduleWaitsForNextTick(t *testing.T) {
	l := NewLoop(10, 10)

	calls := 0
	var frame func()
	frame = func() {
		calls++
		l.RequestFrame(frame)
	}
	l.RequestFrame(frame)

	for i := 0; i < 5; i++ {
		l.Tick()
	}
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
}

func TestLoopCancelFrame(t *testing.T) {
	l := NewLoop(10, 10)

	stale := l.RequestFrame(func() {})
	h := l.RequestFrame(func() { t.Error("cancelled frame ran") })

	l.CancelFrame(stale)
	if !l.Pending() {
		t.Fatal("cancelling a stale handle must not drop the current request")
	}

	l.CancelFrame(h)
	if l.Pending() {
		t.Fatal("expected no pending frame after cancel")
	}
	l.Tick()
	l.CancelFrame(0)
}

func TestLoopResizeDispatch(t *testing.T) {
	l := NewLoop(100, 100)

	var got [][2]int
	sub := l.OnResize(func(w, h int) { got = append(got, [2]int{w, h}) })

	l.Resize(100, 100)
	l.Resize(200, 80)
	if len(got) != 1 || got[0] != [2]int{200, 80} {
		t.Fatalf("resize events = %v", got)
	}
	if w, h := l.Size(); w != 200 || h != 80 {
		t.Errorf("size = %dx%d, want 200x80", w, h)
	}

	sub.Release()
	l.Resize(300, 300)
	if len(got) != 1 {
		t.Errorf("released subscription still received %v", got)
	}
}

func TestLoopPointerSubscriptions(t *testing.T) {
	l := NewLoop(100, 100)

	var a, b int
	subA := l.OnPointerMove(func(x, y float64) { a++ })
	l.OnPointerMove(func(x, y float64) { b++ })

	if l.Listeners() != 2 {
		t.Fatalf("listeners = %d, want 2", l.Listeners())
	}

	l.PointerMove(1, 2)
	subA.Release()
	subA.Release()
	l.PointerMove(3, 4)

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}
	if l.Listeners() != 1 {
		t.Errorf("listeners = %d, want 1", l.Listeners())
	}
}
