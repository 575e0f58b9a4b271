// Package export writes rendered snow frames as vector images.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/frostframe/internal/gui/scene"
)

// Background matches the raster export background.
const Background = "#0a0e1c"

// SceneToSVG writes the circles recorded in a display list as an SVG document,
// one <circle> per flake with its opacity preserved.
func SceneToSVG(w io.Writer, width, height int, circles []scene.Circle) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#ffffff">
`, width, height, width, height, Background)

	for _, c := range circles {
		if c.R <= 0 || c.Color.A == 0 {
			continue
		}
		fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="#%02x%02x%02x" fill-opacity="%.3f"/>
`, c.X, c.Y, c.R, c.Color.R, c.Color.G, c.Color.B, float64(c.Color.A)/255)
	}

	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}
