package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/rigidsim/internal/viz"
)

// Palette cycles through these stroke colours, one per body.
var Palette = []string{"#00ff88", "#00ccff", "#ffcc00", "#ff4444", "#ff00ff"}

func svgHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

// CanvasToSVG draws every lit Braille dot of the canvas as a circle.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	var sb strings.Builder
	svgHeader(&sb, float64(canvas.Width*2)*scale, float64(canvas.Height*4)*scale)
	sb.WriteString("<g fill=\"#00ff00\">\n")

	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, scale*0.4)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ScreenToSVG renders a character frame, one text element per non-blank
// row, in a monospace font of cell height cellH.
func ScreenToSVG(frame string, cellH float64) string {
	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	cols := 0
	for _, l := range lines {
		cols = max(cols, len([]rune(l)))
	}

	cellW := cellH * 0.6
	var sb strings.Builder
	svgHeader(&sb, float64(cols)*cellW, float64(len(lines))*cellH)
	fmt.Fprintf(&sb, "<g font-family=\"monospace\" font-size=\"%.1f\" fill=\"#00ff00\" xml:space=\"preserve\">\n", cellH)

	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		fmt.Fprintf(&sb, "<text x=\"0\" y=\"%.1f\">%s</text>\n", float64(i+1)*cellH, html.EscapeString(l))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws one polyline per path in a shared frame, with 10%
// padding around the combined bounds. Paths with fewer than two points are
// skipped; if none remain the result is empty.
func TrajectoryToSVG(paths [][]viz.Point, width, height int) string {
	drawable := make([][]viz.Point, 0, len(paths))
	for _, p := range paths {
		if len(p) >= 2 {
			drawable = append(drawable, p)
		}
	}
	if len(drawable) == 0 {
		return ""
	}

	minX, minY, maxX, maxY := viz.Bounds(drawable)
	padX, padY := (maxX-minX)*0.1, (maxY-minY)*0.1
	minX, maxX = minX-padX, maxX+padX
	minY, maxY = minY-padY, maxY+padY
	rangeX, rangeY := maxX-minX, maxY-minY

	var sb strings.Builder
	svgHeader(&sb, float64(width), float64(height))

	for i, path := range drawable {
		color := Palette[i%len(Palette)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		for j, p := range path {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
