package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/frostframe/internal/gui/scene"
)

func TestSceneToSVG(t *testing.T) {
	circles := []scene.Circle{
		{X: 10, Y: 20, R: 2, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{X: 30, Y: 40, R: 1.5, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 51}},
		{X: 1, Y: 1, R: 3, Color: color.NRGBA{}},
		{X: 1, Y: 1, R: 0, Color: color.NRGBA{A: 255}},
	}

	var buf bytes.Buffer
	if err := SceneToSVG(&buf, 64, 48, circles); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	if !strings.Contains(out, `fill-opacity="0.200"`) {
		t.Error("opacity not preserved")
	}
	if !strings.Contains(out, `viewBox="0 0 64 48"`) {
		t.Error("viewBox missing")
	}

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		if _, err := dec.Token(); err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("invalid xml: %v", err)
			}
			break
		}
	}
}
