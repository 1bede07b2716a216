package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/extrema/internal/critical"
	"github.com/san-kum/extrema/internal/symbolic"
)

func classify(t *testing.T, input string) *critical.Result {
	t.Helper()
	eng := symbolic.NewEngine()
	e, err := eng.Parse(input, "x")
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	res, err := critical.Classify(eng, e, "x")
	if err != nil {
		t.Fatalf("classify %q: %v", input, err)
	}
	return res
}

func TestSampleSpansDomain(t *testing.T) {
	e, _ := symbolic.Parse("x**2", "x")
	xs, ys := Sample(e, "x", -10, 10, 400)

	if len(xs) != 400 || len(ys) != 400 {
		t.Fatalf("expected 400 samples, got %d xs and %d ys", len(xs), len(ys))
	}
	if xs[0] != -10 || xs[399] != 10 {
		t.Errorf("endpoints: got %g and %g, want -10 and 10", xs[0], xs[399])
	}
	if math.Abs(ys[0]-100) > 1e-9 {
		t.Errorf("f(-10): got %g, want 100", ys[0])
	}
}

func TestSampleMarksNonRealAsNaN(t *testing.T) {
	e, _ := symbolic.Parse("log(x)", "x")
	_, ys := Sample(e, "x", -1, 1, 5)

	if !math.IsNaN(ys[0]) || !math.IsNaN(ys[1]) {
		t.Errorf("log of a negative should be NaN, got %v", ys[:2])
	}
	if !math.IsNaN(ys[2]) {
		t.Errorf("log(0) should be NaN, got %g", ys[2])
	}
	if ys[4] != 0 {
		t.Errorf("log(1): got %g, want 0", ys[4])
	}
}

func TestNewFigureLabelsMarkers(t *testing.T) {
	fig := NewFigure(classify(t, "x**3 - 3*x**2 + 2"), "x", -10, 10, 400)

	if fig.Title != "Graph of x**3 - 3*x**2 + 2" {
		t.Errorf("title: got %q", fig.Title)
	}
	if len(fig.Markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(fig.Markers))
	}
	want := []string{"Maxima (0, 2.00)", "Minima (2, -2.00)"}
	for i, m := range fig.Markers {
		if m.Label != want[i] {
			t.Errorf("marker %d: got %q, want %q", i, m.Label, want[i])
		}
	}
	if fig.Markers[0].Class != critical.Maxima || fig.Markers[1].Class != critical.Minima {
		t.Errorf("unexpected classes %v, %v", fig.Markers[0].Class, fig.Markers[1].Class)
	}
}

func TestRenderASCII(t *testing.T) {
	fig := NewFigure(classify(t, "x**3 - 3*x**2 + 2"), "x", -10, 10, 400)

	for _, theme := range Themes {
		out, err := RenderASCII(fig, 60, 15, theme)
		if err != nil {
			t.Fatalf("%s: %v", theme.Name, err)
		}
		if !strings.Contains(out, fig.Title) {
			t.Errorf("%s: caption missing from plot", theme.Name)
		}
		if lines := strings.Count(out, "\n"); lines < 15 {
			t.Errorf("%s: expected at least 15 lines, got %d", theme.Name, lines)
		}
	}
}

func TestRenderConstantFunction(t *testing.T) {
	fig := NewFigure(classify(t, "5"), "x", -10, 10, 400)

	if len(fig.Markers) != 0 {
		t.Errorf("constant should have no markers, got %d", len(fig.Markers))
	}
	for _, r := range []string{"ascii", "braille"} {
		if _, err := Render(fig, r, 40, 10, ThemeMono); err != nil {
			t.Errorf("%s: %v", r, err)
		}
	}
}

func TestRenderEmptyFigure(t *testing.T) {
	e, _ := symbolic.Parse("sqrt(-1 - x**2)", "x")
	fig := &Figure{Title: "none", Min: -1, Max: 1}
	fig.Xs, fig.Ys = Sample(e, "x", -1, 1, 10)

	if _, err := RenderASCII(fig, 40, 10, ThemeClassic); !errors.Is(err, ErrEmptyFigure) {
		t.Errorf("ascii: expected ErrEmptyFigure, got %v", err)
	}
	if _, err := RenderBraille(fig, 40, 10, ThemeClassic); !errors.Is(err, ErrEmptyFigure) {
		t.Errorf("braille: expected ErrEmptyFigure, got %v", err)
	}
}

func TestRenderUnknownRenderer(t *testing.T) {
	fig := NewFigure(classify(t, "x**2"), "x", -10, 10, 50)
	if _, err := Render(fig, "png", 40, 10, ThemeClassic); !errors.Is(err, ErrUnknownRenderer) {
		t.Errorf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestRenderBrailleSize(t *testing.T) {
	fig := NewFigure(classify(t, "x**2"), "x", -10, 10, 400)
	out, err := RenderBraille(fig, 30, 8, ThemeMono)
	if err != nil {
		t.Fatal(err)
	}
	// title, y max, 8 canvas rows, footer
	if lines := strings.Count(out, "\n"); lines != 11 {
		t.Errorf("expected 11 lines, got %d", lines)
	}
	if !strings.Contains(out, "y max 100.00") {
		t.Errorf("expected y range label, got:\n%s", out)
	}
}

func TestLegend(t *testing.T) {
	fig := NewFigure(classify(t, "x**3 - 3*x**2 + 2"), "x", -1, 1, 100)
	legend := Legend(fig, ThemeClassic)

	if !strings.Contains(legend, "Maxima (0, 2.00)") {
		t.Errorf("legend missing maximum:\n%s", legend)
	}
	if !strings.Contains(legend, "Minima (2, -2.00) (off plot)") {
		t.Errorf("minimum outside [-1, 1] should be flagged:\n%s", legend)
	}

	empty := NewFigure(classify(t, "5"), "x", -10, 10, 10)
	if !strings.Contains(Legend(empty, ThemeClassic), "no critical points") {
		t.Error("empty legend should say so")
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if GetTheme("mono").Name != "mono" {
		t.Error("expected mono theme")
	}
	if GetTheme("nope").Name != "classic" {
		t.Error("unknown theme should fall back to classic")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of step with themes")
	}
}

func TestDefinitionsPanel(t *testing.T) {
	out := DefinitionsPanel(80)
	for _, term := range []string{"Minima", "Maxima", "Saddle Point"} {
		if !strings.Contains(out, term) {
			t.Errorf("definitions missing %s", term)
		}
	}
}
