// Package raster provides an in-memory drawing surface for headless runs,
// snapshots and tests.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/san-kum/frostframe/internal/snow"
)

// kappa places cubic control points for a quarter-circle arc.
const kappa = 0.5522847498

// Surface is an RGBA bitmap implementing snow.Surface and snow.Context.
type Surface struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	draws int
}

var (
	_ snow.Surface = (*Surface)(nil)
	_ snow.Context = (*Surface)(nil)
)

// NewSurface allocates a transparent width×height surface.
func NewSurface(width, height int) *Surface {
	s := &Surface{z: vector.NewRasterizer(1, 1)}
	s.SetSize(width, height)
	return s
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize reallocates the bitmap. Like a canvas, resizing discards content.
func (s *Surface) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if s.img != nil && s.img.Bounds().Dx() == width && s.img.Bounds().Dy() == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.draws = 0
}

func (s *Surface) Context2D() (snow.Context, error) { return s, nil }

// Clear zeroes every pixel.
func (s *Surface) Clear() {
	clear(s.img.Pix)
	s.draws = 0
}

// FillCircle rasterises an anti-aliased disc composited over the bitmap.
func (s *Surface) FillCircle(x, y, radius float64, c color.NRGBA) {
	s.draws++
	if radius <= 0 || c.A == 0 {
		return
	}

	bounds := s.img.Bounds()
	box := image.Rect(
		int(math.Floor(x-radius)), int(math.Floor(y-radius)),
		int(math.Ceil(x+radius)), int(math.Ceil(y+radius)),
	).Intersect(bounds)
	if box.Empty() {
		return
	}

	cx := float32(x) - float32(box.Min.X)
	cy := float32(y) - float32(box.Min.Y)
	r := float32(radius)
	k := r * kappa

	s.z.Reset(box.Dx(), box.Dy())
	s.z.DrawOp = draw.Over
	s.z.MoveTo(cx+r, cy)
	s.z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	s.z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	s.z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	s.z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	s.z.ClosePath()
	s.z.Draw(s.img, box, image.NewUniform(c), image.Point{})
}

// Draws returns the number of circles painted since the last Clear.
func (s *Surface) Draws() int { return s.draws }

// Blank reports whether every pixel is fully transparent.
func (s *Surface) Blank() bool {
	for _, b := range s.img.Pix {
		if b != 0 {
			return false
		}
	}
	return true
}

// Image returns a copy of the current bitmap.
func (s *Surface) Image() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}
