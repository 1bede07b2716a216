package session

import (
	"fmt"

	"github.com/san-kum/extrema/internal/critical"
	"github.com/san-kum/extrema/internal/export"
	"github.com/san-kum/extrema/internal/symbolic"
	"github.com/san-kum/extrema/internal/viz"
)

// Classify finds and classifies the critical points of expr.
func (s *Session) Classify(expr symbolic.Expr) (*critical.Result, error) {
	res, err := s.classifier.Classify(expr, s.cfg.Variable)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", expr, err)
	}
	s.log.Debug("derivatives", "function", expr, "first", res.Derivative, "second", res.Second)
	s.log.Debug("classified", "points", res.Len(), "skipped", len(res.Skipped), "complete", res.Complete)
	for _, sk := range res.Skipped {
		s.log.Debug("skipped candidate", "location", sk.Location, "reason", sk.Reason)
	}
	return res, nil
}

// Report prints the derivatives and one "x = location: class" line per
// critical point.
func (s *Session) Report(res *critical.Result) {
	v := s.cfg.Variable
	fmt.Fprintf(s.out, "%s %s\n", viz.Label.Render(fmt.Sprintf("f'(%s)  =", v)), viz.Value.Render(res.Derivative.String()))
	fmt.Fprintf(s.out, "%s %s\n", viz.Label.Render(fmt.Sprintf("f''(%s) =", v)), viz.Value.Render(res.Second.String()))

	fmt.Fprintln(s.out, "Critical Points:")
	if res.Len() == 0 {
		fmt.Fprintln(s.out, viz.Subtle.Render("  none"))
	}
	for _, p := range res.Points {
		line := fmt.Sprintf("%s = %s: %s", v, p.Location, p.Class)
		fmt.Fprintf(s.out, "%s  %s\n", s.theme.Style(p.Class).Render(line), viz.Subtle.Render("f = "+p.Y.Format(2)))
	}
	for _, sk := range res.Skipped {
		fmt.Fprintln(s.out, viz.Subtle.Render(fmt.Sprintf("  skipped %s = %s: %v", v, sk.Location, sk.Reason)))
	}
	if !res.Complete {
		s.warn("the derivative could only be partly solved; some critical points may be missing")
	}
}

// Figure samples the classified function over the configured domain.
func (s *Session) Figure(res *critical.Result) *viz.Figure {
	return viz.NewFigure(res, s.cfg.Variable, s.cfg.Domain.Min, s.cfg.Domain.Max, s.cfg.Samples)
}

// Plot renders the figure and its legend, and writes the SVG when one is
// configured.
func (s *Session) Plot(res *critical.Result) error {
	fig := s.Figure(res)
	p := s.cfg.Plot
	out, err := viz.Render(fig, p.Renderer, p.Width, p.Height, s.theme)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, out)
	fmt.Fprintln(s.out, viz.Legend(fig, s.theme))
	fmt.Fprintln(s.out)

	if s.cfg.SVG != "" {
		if err := export.WriteSVG(s.cfg.SVG, fig, SVGWidth, SVGHeight, s.theme); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		s.log.Info("svg written", "path", s.cfg.SVG)
		fmt.Fprintf(s.out, "Saved plot to %s\n", s.cfg.SVG)
	}
	return nil
}

// DescribeArea prints an integral as its exact form, followed by a decimal
// when the two differ.
func DescribeArea(in symbolic.Integral) string {
	if in.Method == symbolic.Quadrature {
		return in.Value.String() + " (numerical)"
	}
	exact := in.Value.String()
	if in.Exact != nil {
		exact = in.Exact.String()
	}
	f, ok := in.Value.Float64()
	if !ok {
		return exact
	}
	approx := symbolic.ApproxValue(f).String()
	if approx == exact {
		return exact
	}
	return exact + " ≈ " + approx
}
