package export

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/extrema/internal/critical"
	"github.com/san-kum/extrema/internal/viz"
)

func cubicFigure() *viz.Figure {
	return &viz.Figure{
		Title: "Graph of x**3 - 3*x**2 + 2",
		Min:   -1,
		Max:   3,
		Xs:    []float64{-1, 0, 1, 2, 3},
		Ys:    []float64{-2, 2, 0, -2, 2},
		Markers: []viz.Marker{
			{X: 0, Y: 2, Class: critical.Maxima, Label: "Maxima (0, 2.00)"},
			{X: 2, Y: -2, Class: critical.Minima, Label: "Minima (2, -2.00)"},
		},
	}
}

func TestFigureToSVG(t *testing.T) {
	svg, err := FigureToSVG(cubicFigure(), 400, 300, viz.ThemeClassic)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("expected a complete svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 markers, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ff4444"`) {
		t.Error("maximum should be drawn red")
	}
	if !strings.Contains(svg, `fill="#4488ff"`) {
		t.Error("minimum should be drawn blue")
	}
	if !strings.Contains(svg, "Minima (2, -2.00)") {
		t.Error("marker label missing")
	}
	if n := strings.Count(svg, "M"); n < 1 {
		t.Error("expected a path")
	}
}

func TestFigureToSVGBreaksPathAtGaps(t *testing.T) {
	f := cubicFigure()
	f.Ys[2] = math.NaN()
	svg, err := FigureToSVG(f, 400, 300, viz.ThemeMono)
	if err != nil {
		t.Fatal(err)
	}
	start := strings.Index(svg, ` d="`)
	path := svg[start : start+strings.Index(svg[start:], `"/>`)]
	if n := strings.Count(path, "M"); n != 2 {
		t.Errorf("expected 2 path segments, got %d in %s", n, path)
	}
}

func TestFigureToSVGEscapesTitle(t *testing.T) {
	f := cubicFigure()
	f.Title = "Graph of x < 1"
	svg, err := FigureToSVG(f, 200, 100, viz.ThemeClassic)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, "x &lt; 1") {
		t.Error("title should be escaped")
	}
}

func TestFigureToSVGEmpty(t *testing.T) {
	f := &viz.Figure{Min: 0, Max: 1, Xs: []float64{0, 1}, Ys: []float64{math.NaN(), math.NaN()}}
	if _, err := FigureToSVG(f, 100, 100, viz.ThemeClassic); !errors.Is(err, viz.ErrEmptyFigure) {
		t.Errorf("expected ErrEmptyFigure, got %v", err)
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")
	if err := WriteSVG(path, cubicFigure(), 400, 300, viz.ThemeClassic); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("file should hold the svg")
	}
}
