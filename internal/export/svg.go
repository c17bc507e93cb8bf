package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/blockpi/internal/analysis"
	"github.com/san-kum/blockpi/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	writeHeader(&sb, width, height)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := float64(col*2+dx)*scale + scale/2
					cy := float64(row*4+dy)*scale + scale/2
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PhaseSVG writes the portrait as a polyline inside its energy circle.
// Axes run through the origin; X is sqrt(mA)*vA and Y is sqrt(mB)*vB.
func PhaseSVG(w io.Writer, p *analysis.PhasePortrait, size int) error {
	if len(p.Points) < 2 {
		return fmt.Errorf("phase plot needs at least 2 points, got %d", len(p.Points))
	}
	if size < 10 {
		return fmt.Errorf("phase plot size too small: %d", size)
	}

	r := p.Radius()
	if r == 0 {
		r = 1
	}
	half := float64(size) / 2
	scale := half / (r * 1.1)

	var sb strings.Builder
	writeHeader(&sb, float64(size), float64(size))
	fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444"/>`+"\n", half, size, half)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="#444"/>`+"\n", half, half, size)
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#333" stroke-dasharray="4"/>`+"\n",
		half, half, r*scale)

	sb.WriteString(`<path fill="none" stroke="#00ffff" stroke-width="1.5" d="M`)
	for i, pt := range p.Points {
		x := half + pt.X()*scale
		y := half - pt.Y()*scale
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}
