// Package scene holds the retained drawing state the desktop overlay paints
// each display frame.
package scene

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/san-kum/frostframe/internal/snow"
)

type Circle struct {
	X, Y, R float64
	Color   color.NRGBA
}

// DisplayList records draw calls instead of executing them. The engine draws
// into it outside the window's drawing pass; the overlay replays it inside.
type DisplayList struct {
	width, height int
	circles       []Circle
}

var (
	_ snow.Surface = (*DisplayList)(nil)
	_ snow.Context = (*DisplayList)(nil)
)

func NewDisplayList(width, height int) *DisplayList {
	d := &DisplayList{}
	d.SetSize(width, height)
	return d
}

func (d *DisplayList) Size() (int, int) { return d.width, d.height }

func (d *DisplayList) SetSize(width, height int) {
	d.width, d.height = max(width, 0), max(height, 0)
	d.Clear()
}

func (d *DisplayList) Context2D() (snow.Context, error) { return d, nil }

func (d *DisplayList) Clear() { d.circles = d.circles[:0] }

func (d *DisplayList) FillCircle(x, y, radius float64, c color.NRGBA) {
	d.circles = append(d.circles, Circle{X: x, Y: y, R: radius, Color: c})
}

// Circles returns the recorded calls. The slice is reused by the next frame.
func (d *DisplayList) Circles() []Circle { return d.circles }

func (d *DisplayList) Len() int { return len(d.circles) }

// Fade eases the overlay's opacity from 0 to 1 after each start.
type Fade struct {
	seconds float32
	tween   *gween.Tween
	value   float32
}

func NewFade(seconds float64) *Fade {
	f := &Fade{seconds: float32(seconds), value: 1}
	return f
}

// Restart begins a new fade from transparent.
func (f *Fade) Restart() {
	if f.seconds <= 0 {
		f.tween, f.value = nil, 1
		return
	}
	f.tween = gween.New(0, 1, f.seconds, ease.OutQuad)
	f.value = 0
}

// Update advances the fade by dt seconds and returns the current opacity.
func (f *Fade) Update(dt float32) float32 {
	if f.tween == nil {
		return f.value
	}
	v, done := f.tween.Update(dt)
	f.value = min(max(v, 0), 1)
	if done {
		f.tween, f.value = nil, 1
	}
	return f.value
}

func (f *Fade) Value() float32 { return f.value }

func (f *Fade) Active() bool { return f.tween != nil }

// Dim scales a colour's alpha by a.
func Dim(c color.NRGBA, a float32) color.NRGBA {
	c.A = uint8(float32(c.A)*min(max(a, 0), 1) + 0.5)
	return c
}
