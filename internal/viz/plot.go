package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/extrema/internal/critical"
	"github.com/san-kum/extrema/internal/symbolic"
)

var (
	ErrEmptyFigure     = errors.New("viz: no real samples to plot")
	ErrUnknownRenderer = errors.New("viz: unknown renderer")
)

// Marker is an annotated critical point.
type Marker struct {
	X, Y  float64
	Class critical.Classification
	Label string
}

// Figure is a sampled curve with its critical points, ready to render.
type Figure struct {
	Title    string
	Min, Max float64
	Xs, Ys   []float64
	Markers  []Marker
}

// Sample evaluates e at n evenly spaced points of [min, max]. Samples where
// e has no real value are NaN.
func Sample(e symbolic.Expr, v string, min, max float64, n int) (xs, ys []float64) {
	xs = floats.Span(make([]float64, n), min, max)
	ys = make([]float64, n)
	for i, x := range xs {
		y, ok := symbolic.EvaluateAt(e, v, x).Float64()
		if !ok || math.IsInf(y, 0) {
			y = math.NaN()
		}
		ys[i] = y
	}
	return xs, ys
}

// NewFigure samples the classified function and marks every real critical
// point with a "Class (x, y)" label.
func NewFigure(res *critical.Result, v string, min, max float64, n int) *Figure {
	fig := &Figure{
		Title: "Graph of " + res.Function.String(),
		Min:   min,
		Max:   max,
	}
	fig.Xs, fig.Ys = Sample(res.Function, v, min, max, n)
	for _, p := range res.Points {
		x, okx := p.X.Float64()
		y, oky := p.Y.Float64()
		if !okx || !oky {
			continue
		}
		fig.Markers = append(fig.Markers, Marker{
			X:     x,
			Y:     y,
			Class: p.Class,
			Label: fmt.Sprintf("%s (%s, %.2f)", p.Class, p.Location, y),
		})
	}
	return fig
}

// Contains reports whether x lies in the plotted domain.
func (f *Figure) Contains(x float64) bool {
	return x >= f.Min && x <= f.Max
}

func (f *Figure) finite() bool {
	for _, y := range f.Ys {
		if !math.IsNaN(y) {
			return true
		}
	}
	return false
}

// column maps x to one of width evenly spaced columns.
func (f *Figure) column(x float64, width int) int {
	c := int(math.Round((x - f.Min) / (f.Max - f.Min) * float64(width-1)))
	return max(0, min(width-1, c))
}

// resample picks width samples of the curve, one per column.
func (f *Figure) resample(width int) []float64 {
	out := make([]float64, width)
	n := len(f.Ys)
	for i := range out {
		j := 0
		if width > 1 {
			j = int(math.Round(float64(i) * float64(n-1) / float64(width-1)))
		}
		out[i] = f.Ys[j]
	}
	return out
}

var markerOrder = []critical.Classification{critical.Maxima, critical.Minima, critical.SaddlePoint}

// RenderASCII plots the curve with asciigraph, one extra series per
// classification carrying its markers.
func RenderASCII(f *Figure, width, height int, theme Theme) (string, error) {
	if !f.finite() {
		return "", ErrEmptyFigure
	}
	series := [][]float64{f.resample(width)}
	colors := []asciigraph.AnsiColor{theme.curveANSI}
	for _, class := range markerOrder {
		s := make([]float64, width)
		for i := range s {
			s[i] = math.NaN()
		}
		found := false
		for _, m := range f.Markers {
			if m.Class == class && f.Contains(m.X) {
				s[f.column(m.X, width)] = m.Y
				found = true
			}
		}
		if found {
			series = append(series, s)
			colors = append(colors, theme.ansi(class))
		}
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption(f.Title),
	}
	if !theme.Plain {
		opts = append(opts, asciigraph.SeriesColors(colors...))
	}
	return asciigraph.PlotMany(series, opts...), nil
}

// RenderBraille draws the curve on a braille canvas of width x height
// cells, with markers as tinted dots.
func RenderBraille(f *Figure, width, height int, theme Theme) (string, error) {
	if !f.finite() {
		return "", ErrEmptyFigure
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range f.Ys {
		if !math.IsNaN(y) {
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
	}
	if hi-lo < 1e-12 {
		lo, hi = lo-1, hi+1
	}

	c := NewCanvas(width, height)
	dotsX, dotsY := 2*width-1, 4*height-1
	px := func(x float64) int {
		return int(math.Round((x - f.Min) / (f.Max - f.Min) * float64(dotsX)))
	}
	py := func(y float64) int {
		return int(math.Round((hi - y) / (hi - lo) * float64(dotsY)))
	}

	for i := 1; i < len(f.Xs); i++ {
		y0, y1 := f.Ys[i-1], f.Ys[i]
		switch {
		case math.IsNaN(y0) && math.IsNaN(y1):
		case math.IsNaN(y0):
			c.Set(px(f.Xs[i]), py(y1))
		case math.IsNaN(y1):
			c.Set(px(f.Xs[i-1]), py(y0))
		default:
			c.DrawLine(px(f.Xs[i-1]), py(y0), px(f.Xs[i]), py(y1))
		}
	}
	for _, m := range f.Markers {
		if !f.Contains(m.X) || m.Y < lo || m.Y > hi {
			continue
		}
		x, y := px(m.X), py(m.Y)
		c.DrawDot(x, y)
		if !theme.Plain {
			c.Tint(x, y, theme.Style(m.Class))
		}
	}

	var b strings.Builder
	b.WriteString(Title.Render(f.Title) + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("y max %.2f", hi)) + "\n")
	b.WriteString(c.String())
	b.WriteString(Subtle.Render(fmt.Sprintf("y min %.2f   x from %g to %g", lo, f.Min, f.Max)) + "\n")
	return b.String(), nil
}

// Render dispatches on the renderer name, "ascii" or "braille".
func Render(f *Figure, renderer string, width, height int, theme Theme) (string, error) {
	switch renderer {
	case "", "ascii":
		return RenderASCII(f, width, height, theme)
	case "braille":
		return RenderBraille(f, width, height, theme)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRenderer, renderer)
}

// Legend lists the markers, one per line, colored by classification.
func Legend(f *Figure, theme Theme) string {
	if len(f.Markers) == 0 {
		return Subtle.Render("no critical points")
	}
	var b strings.Builder
	for i, m := range f.Markers {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := "● " + m.Label
		if !f.Contains(m.X) {
			line += " (off plot)"
		}
		b.WriteString(theme.Style(m.Class).Render(line))
	}
	return b.String()
}
