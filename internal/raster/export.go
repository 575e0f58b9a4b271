package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/san-kum/frostframe/internal/snow"
)

// Background is the colour frames are composited onto for export.
var Background = color.RGBA{R: 10, G: 14, B: 28, A: 255}

// Flatten composites src over the export background.
func Flatten(src image.Image) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	return dst
}

// WritePNG encodes the current frame, flattened, as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, Flatten(s.img)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Recorder captures frames of a Surface as it renders. Attach it to an engine
// with snow.WithObserver.
type Recorder struct {
	surface *Surface
	every   int
	frames  []*image.Paletted
	palette color.Palette
}

var _ snow.Observer = (*Recorder)(nil)

// NewRecorder captures one frame out of every `every` rendered.
func NewRecorder(s *Surface, every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{surface: s, every: every, palette: snowPalette()}
}

func (r *Recorder) OnFrame(stats snow.FrameStats) {
	if stats.Frame%uint64(r.every) != 0 {
		return
	}
	flat := Flatten(r.surface.img)
	p := image.NewPaletted(flat.Bounds(), r.palette)
	draw.Draw(p, p.Bounds(), flat, flat.Bounds().Min, draw.Src)
	r.frames = append(r.frames, p)
}

// Len returns the number of captured frames.
func (r *Recorder) Len() int { return len(r.frames) }

// WriteGIF encodes the captured frames as a looping animation.
// delay is in hundredths of a second per frame.
func (r *Recorder) WriteGIF(w io.Writer, delay int) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// snowPalette blends the background towards white in 256 steps, which is the
// only colour range a snow frame contains.
func snowPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		t := float64(i) / 255
		p[i] = color.RGBA{
			R: uint8(float64(Background.R) + (255-float64(Background.R))*t),
			G: uint8(float64(Background.G) + (255-float64(Background.G))*t),
			B: uint8(float64(Background.B) + (255-float64(Background.B))*t),
			A: 255,
		}
	}
	return p
}
