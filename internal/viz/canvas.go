package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/frostframe/internal/snow"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blank = rune(0x2800)

	// MinAlpha is the faintest particle still drawn; Braille dots have no
	// intensity so fainter ones would only add noise.
	MinAlpha = 0.15

	// DefaultDotScale shrinks radii so a size-1 flake is a single dot.
	DefaultDotScale = 0.5
)

// Canvas is a Braille grid. Its snow.Surface coordinates are sub-pixels:
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	DotScale      float64
}

var (
	_ snow.Surface = (*Canvas)(nil)
	_ snow.Context = (*Canvas)(nil)
)

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{DotScale: DefaultDotScale}
	c.resizeCells(w, h)
	return c
}

func (c *Canvas) resizeCells(w, h int) {
	c.Width, c.Height = max(w, 0), max(h, 0)
	c.Grid = make([][]rune, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Size returns the sub-pixel dimensions.
func (c *Canvas) Size() (int, int) { return c.Width * 2, c.Height * 4 }

// SetSize takes sub-pixel dimensions and rounds up to whole cells.
func (c *Canvas) SetSize(w, h int) {
	cols, rows := (max(w, 0)+1)/2, (max(h, 0)+3)/4
	if cols == c.Width && rows == c.Height {
		return
	}
	c.resizeCells(cols, rows)
}

func (c *Canvas) Context2D() (snow.Context, error) { return c, nil }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// FillCircle sets every dot inside the scaled radius. A flake smaller than a
// dot still marks the dot under its centre.
func (c *Canvas) FillCircle(x, y, radius float64, col color.NRGBA) {
	if float64(col.A) < MinAlpha*255 {
		return
	}
	r := radius * c.DotScale
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	ir := int(math.Ceil(r))
	r2 := r * r
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// Dots returns the number of set dots.
func (c *Canvas) Dots() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for b := r - blank; b != 0; b &= b - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the grid over background text. Empty cells show the
// background rune; cells holding snow show the Braille glyph.
func (c *Canvas) Render(background []string, snowStyle, textStyle lipgloss.Style) string {
	var b strings.Builder
	var run []rune
	runIsSnow := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		if runIsSnow {
			b.WriteString(snowStyle.Render(string(run)))
		} else {
			b.WriteString(textStyle.Render(string(run)))
		}
		run = run[:0]
	}

	for i, row := range c.Grid {
		var bg []rune
		if i < len(background) {
			bg = []rune(background[i])
		}
		for j, r := range row {
			isSnow := r != blank
			glyph := r
			if !isSnow {
				glyph = ' '
				if j < len(bg) {
					glyph = bg[j]
				}
			}
			if isSnow != runIsSnow {
				flush()
				runIsSnow = isSnow
			}
			run = append(run, glyph)
		}
		flush()
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
