package export

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/extrema/internal/viz"
)

const (
	background = "#0a0a0a"
	axisColor  = "#444466"
	textColor  = "#e0e0e0"
)

func colorOr(c lipgloss.Color, fallback string) string {
	if c == "" {
		return fallback
	}
	return string(c)
}

// FigureToSVG draws the curve as a path broken wherever the function has
// no real value, with a labelled circle at each critical point.
func FigureToSVG(f *viz.Figure, width, height int, theme viz.Theme) (string, error) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, y := range f.Ys {
		if !math.IsNaN(y) {
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if math.IsInf(minY, 1) {
		return "", viz.ErrEmptyFigure
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := f.Max - f.Min

	const top = 30.0
	plotH := float64(height) - top
	px := func(x float64) float64 { return (x - f.Min) / rangeX * float64(width) }
	py := func(y float64) float64 { return top + plotH - (y-minY)/rangeY*plotH }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<text x="%d" y="20" fill="%s" font-family="monospace" font-size="14" text-anchor="middle">%s</text>
`, width, height, width, height, background, width/2, textColor, html.EscapeString(f.Title))

	if minY <= 0 && maxY >= 0 {
		fmt.Fprintf(&sb, "<line x1=\"0\" y1=\"%.1f\" x2=\"%d\" y2=\"%.1f\" stroke=\"%s\"/>\n", py(0), width, py(0), axisColor)
	}
	if f.Contains(0) {
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%d\" stroke=\"%s\"/>\n", px(0), top, px(0), height, axisColor)
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, colorOr(theme.Curve, "#00ccff"))
	pen := false
	for i, x := range f.Xs {
		y := f.Ys[i]
		if math.IsNaN(y) {
			pen = false
			continue
		}
		cmd := "L"
		if !pen {
			cmd = "M"
			pen = true
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f ", cmd, px(x), py(y))
	}
	sb.WriteString("\"/>\n")

	for _, m := range f.Markers {
		if !f.Contains(m.X) {
			continue
		}
		fill := colorOr(theme.Color(m.Class), textColor)
		cx, cy := px(m.X), py(m.Y)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", cx, cy, fill)
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"11\">%s</text>\n",
			cx+6, cy-6, fill, html.EscapeString(m.Label))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// WriteSVG renders the figure and writes it to path.
func WriteSVG(path string, f *viz.Figure, width, height int, theme viz.Theme) error {
	svg, err := FigureToSVG(f, width, height, theme)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
