package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/extrema/internal/config"
	"github.com/san-kum/extrema/internal/critical"
	"github.com/san-kum/extrema/internal/symbolic"
	"github.com/san-kum/extrema/internal/tui"
)

func run(t *testing.T, cfg *config.Config, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	s, err := New(cfg, tui.NewLineReader(strings.NewReader(input), &out), &out)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	err = s.Run(context.Background())
	return out.String(), err
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Plot.Theme = "mono"
	return cfg
}

func TestRunCubic(t *testing.T) {
	out, err := run(t, testConfig(), "\nx**3 - 3*x**2 + 2\n0\n3\n")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Minima",
		"Press Enter to continue...",
		"Enter a function of x (e.g., x**3 - 3*x**2 + 2): ",
		"Critical Points:",
		"x = 0: Maxima",
		"x = 2: Minima",
		"Graph of x**3 - 3*x**2 + 2",
		"Maxima (0, 2.00)",
		"Enter the lower limit of integration: ",
		"Enter the upper limit of integration: ",
		"The area under the curve from the given limits is: -3/4 ≈ -0.75",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "x = 0: Maxima") > strings.Index(out, "x = 2: Minima") {
		t.Error("critical points should be listed in ascending order")
	}
}

func TestRunRepromptsOnBadInput(t *testing.T) {
	out, err := run(t, testConfig(), "\n2x\nx**2\nabc\n0\n3\n")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "parse error at column 2") {
		t.Errorf("expected a parse error, got:\n%s", out)
	}
	if !strings.Contains(out, "  2x\n   ^") {
		t.Errorf("expected a caret under the error:\n%s", out)
	}
	if !strings.Contains(out, `invalid number "abc"`) {
		t.Errorf("expected a bound error, got:\n%s", out)
	}
	if strings.Count(out, "Enter the lower limit of integration: ") != 2 {
		t.Error("lower limit should be asked twice")
	}
	if !strings.Contains(out, "is: 9\n") {
		t.Errorf("expected area 9, got:\n%s", out)
	}
}

func TestRunDivergentIntegralReprompts(t *testing.T) {
	out, err := run(t, testConfig(), "\n1/x\n-1\n1\n1\n2\n")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "diverges") {
		t.Errorf("expected a divergence message:\n%s", out)
	}
	if !strings.Contains(out, "is: log(2)") {
		t.Errorf("expected log(2), got:\n%s", out)
	}
}

func TestRunWithPreset(t *testing.T) {
	cfg := testConfig()
	if err := cfg.ApplyPreset("parabola"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, cfg, "\n")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Function: x**2 - 4*x + 1") {
		t.Errorf("preset function not announced:\n%s", out)
	}
	if strings.Contains(out, "Enter a function") || strings.Contains(out, "Enter the lower limit") {
		t.Error("preset should not prompt")
	}
	if !strings.Contains(out, "x = 2: Minima") {
		t.Errorf("expected minimum at 2:\n%s", out)
	}
	// integral of x**2 - 4*x + 1 from 0 to 4
	if !strings.Contains(out, "is: -20/3 ≈ -6.66666666667") {
		t.Errorf("unexpected area:\n%s", out)
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	_, err := run(t, testConfig(), "\n")
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestRunStrictPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Policy = "strict"
	_, err := run(t, cfg, "\nx**3 + x\n")
	if !errors.Is(err, critical.ErrIndeterminate) {
		t.Errorf("expected ErrIndeterminate, got %v", err)
	}

	out, err := run(t, testConfig(), "\nx**3 + x\n0\n1\n")
	if err != nil {
		t.Fatalf("skip policy: %v", err)
	}
	if !strings.Contains(out, "skipped x = ") {
		t.Errorf("expected skipped candidates:\n%s", out)
	}
}

func TestRunWritesSVG(t *testing.T) {
	cfg := testConfig()
	cfg.SVG = filepath.Join(t.TempDir(), "plot.svg")
	cfg.Plot.Renderer = "braille"
	out, err := run(t, cfg, "\nx**2\n0\n1\n")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	data, err := os.ReadFile(cfg.SVG)
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.Contains(string(data), "Minima (0, 0.00)") {
		t.Error("svg should carry the marker label")
	}
}

func TestReportPartialSolve(t *testing.T) {
	var out bytes.Buffer
	s, err := New(testConfig(), nil, &out)
	if err != nil {
		t.Fatal(err)
	}
	expr, err := s.Engine().Parse("x**6 + x**2 + x", "x")
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Classify(expr)
	if err != nil {
		t.Fatal(err)
	}
	s.Report(res)
	if !strings.Contains(out.String(), "partly solved") {
		t.Errorf("expected a partial solve warning:\n%s", out.String())
	}
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Policy = "loose"
	if _, err := New(cfg, nil, io.Discard); !errors.Is(err, critical.ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestDescribeArea(t *testing.T) {
	tests := []struct {
		name string
		in   symbolic.Integral
		want string
	}{
		{"integer", symbolic.Integral{Value: symbolic.ExactValue(big.NewRat(9, 1)), Exact: symbolic.N(9)}, "9"},
		{"fraction", symbolic.Integral{Value: symbolic.ExactValue(big.NewRat(1, 4)), Exact: symbolic.Q(1, 4)}, "1/4 ≈ 0.25"},
		{"numerical", symbolic.Integral{Value: symbolic.ApproxValue(1.5), Method: symbolic.Quadrature}, "1.5 (numerical)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DescribeArea(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFunctionAndIntegrate(t *testing.T) {
	cfg := testConfig()
	s, err := New(cfg, nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Function(); !errors.Is(err, ErrNoFunction) {
		t.Errorf("expected ErrNoFunction, got %v", err)
	}

	cfg.Function = "x**2"
	expr, err := s.Function()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Integrate(context.Background(), expr); !errors.Is(err, ErrNoBounds) {
		t.Errorf("expected ErrNoBounds, got %v", err)
	}

	cfg.Bounds = config.BoundsConfig{Lower: "3", Upper: "0"}
	in, err := s.Integrate(context.Background(), expr)
	if err != nil {
		t.Fatal(err)
	}
	if in.Value.String() != "-9" {
		t.Errorf("swapped bounds: got %s, want -9", in.Value)
	}
}
