package viz

import (
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

var opaque = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != blank+0x1 {
		t.Errorf("cell 0 = %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != blank+0x80 {
		t.Errorf("cell 1 = %U", c.Grid[0][1])
	}

	c.Set(-1, 0)
	c.Set(100, 0)
	if c.Dots() != 2 {
		t.Errorf("dots = %d, want 2", c.Dots())
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != blank {
		t.Errorf("cell 0 not cleared: %U", c.Grid[0][0])
	}

	c.Clear()
	if c.Dots() != 0 {
		t.Error("expected empty canvas after Clear")
	}
}

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(80, 22)
	if w, h := c.Size(); w != 160 || h != 88 {
		t.Errorf("size = %dx%d, want 160x88", w, h)
	}

	c.SetSize(41, 9)
	if c.Width != 21 || c.Height != 3 {
		t.Errorf("cells = %dx%d, want 21x3", c.Width, c.Height)
	}

	c.SetSize(-5, -5)
	if c.Width != 0 || c.Height != 0 {
		t.Errorf("negative size not clamped: %dx%d", c.Width, c.Height)
	}
}

func TestCanvasFillCircle(t *testing.T) {
	tests := []struct {
		name  string
		r     float64
		alpha uint8
		want  int
	}{
		{"sub-dot flake", 1, 255, 1},
		{"larger flake", 2, 255, 5},
		{"faint flake skipped", 3, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 5)
			col := opaque
			col.A = tt.alpha
			c.FillCircle(10, 10, tt.r, col)
			if c.Dots() != tt.want {
				t.Errorf("dots = %d, want %d", c.Dots(), tt.want)
			}
		})
	}
}

func TestCanvasRenderShowsBackground(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Set(0, 0)

	out := c.Render([]string{"abcdef", "xy"}, lipgloss.NewStyle(), lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != string(blank+0x1)+"bcdef" {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[1] != "xy    " {
		t.Errorf("row 1 = %q", lines[1])
	}
}
