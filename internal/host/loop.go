// Package host provides the cooperative frame loop that front-ends drive.
//
// A front-end owns the real display. Once per display frame it forwards
// resize and pointer events with [Loop.Resize] and [Loop.PointerMove], then
// calls [Loop.Tick] to run whichever frame callback is pending. Because only
// one callback can be pending, an engine that reschedules itself on completion
// never has more than one frame in flight.
package host

import (
	"sort"

	"github.com/san-kum/frostframe/internal/snow"
)

// Loop implements snow.Viewport and snow.Scheduler. It is not thread-safe.
type Loop struct {
	width, height int

	pending   func()
	pendingID snow.FrameHandle
	nextFrame snow.FrameHandle
	ticks     uint64

	resizeSubs  map[int]func(width, height int)
	pointerSubs map[int]func(x, y float64)
	nextSub     int
}

var (
	_ snow.Viewport  = (*Loop)(nil)
	_ snow.Scheduler = (*Loop)(nil)
)

// NewLoop creates a loop for a viewport of the given size.
func NewLoop(width, height int) *Loop {
	return &Loop{
		width:       width,
		height:      height,
		resizeSubs:  make(map[int]func(int, int)),
		pointerSubs: make(map[int]func(float64, float64)),
	}
}

// Size returns the viewport size.
func (l *Loop) Size() (int, int) { return l.width, l.height }

// RequestFrame replaces any pending callback with fn.
func (l *Loop) RequestFrame(fn func()) snow.FrameHandle {
	l.nextFrame++
	l.pending = fn
	l.pendingID = l.nextFrame
	return l.pendingID
}

// CancelFrame drops the pending callback if h still identifies it.
func (l *Loop) CancelFrame(h snow.FrameHandle) {
	if h != 0 && h == l.pendingID {
		l.pending = nil
		l.pendingID = 0
	}
}

// Tick runs the pending callback, if any, and reports whether it ran.
// The callback may request the next frame; that request waits for the
// following Tick.
func (l *Loop) Tick() bool {
	fn := l.pending
	if fn == nil {
		return false
	}
	l.pending = nil
	l.pendingID = 0
	l.ticks++
	fn()
	return true
}

// Pending reports whether a frame callback is waiting.
func (l *Loop) Pending() bool { return l.pending != nil }

// Ticks returns how many frame callbacks have run.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Listeners returns the number of live subscriptions.
func (l *Loop) Listeners() int { return len(l.resizeSubs) + len(l.pointerSubs) }

// OnResize registers fn for viewport size changes.
func (l *Loop) OnResize(fn func(width, height int)) snow.Subscription {
	id := l.nextSub
	l.nextSub++
	l.resizeSubs[id] = fn
	return &subscription{release: func() { delete(l.resizeSubs, id) }}
}

// OnPointerMove registers fn for pointer movement.
func (l *Loop) OnPointerMove(fn func(x, y float64)) snow.Subscription {
	id := l.nextSub
	l.nextSub++
	l.pointerSubs[id] = fn
	return &subscription{release: func() { delete(l.pointerSubs, id) }}
}

// Resize updates the viewport size and notifies subscribers in
// registration order. Unchanged sizes are not dispatched.
func (l *Loop) Resize(width, height int) {
	if width == l.width && height == l.height {
		return
	}
	l.width, l.height = width, height
	for _, id := range sortedKeys(l.resizeSubs) {
		if fn, ok := l.resizeSubs[id]; ok {
			fn(width, height)
		}
	}
}

// PointerMove notifies subscribers of a pointer position.
func (l *Loop) PointerMove(x, y float64) {
	for _, id := range sortedKeys(l.pointerSubs) {
		if fn, ok := l.pointerSubs[id]; ok {
			fn(x, y)
		}
	}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

type subscription struct {
	release func()
}

func (s *subscription) Release() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}
