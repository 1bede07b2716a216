package symbolic

import (
	"math/big"
	"strings"
)

// Engine is a stateless handle over the symbolic operations. It only holds
// numeric settings, so one value can be shared freely.
type Engine struct {
	tolerance  float64
	quadPoints int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerance sets the magnitude below which approximate values count as
// zero.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		if tol > 0 {
			e.tolerance = tol
		}
	}
}

// WithQuadraturePoints sets the Gauss-Legendre order used when an integral
// has no closed form.
func WithQuadraturePoints(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.quadPoints = n
		}
	}
}

const DefaultQuadraturePoints = 64

func NewEngine(opts ...Option) *Engine {
	e := &Engine{tolerance: DefaultTolerance, quadPoints: DefaultQuadraturePoints}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Tolerance() float64 { return e.tolerance }

func (e *Engine) Parse(input, v string) (Expr, error) { return Parse(input, v) }

func (e *Engine) Diff(expr Expr, v string) Expr { return expr.Diff(v) }

func (e *Engine) Solve(expr Expr, v string) Solution { return solveTol(expr, v, e.tolerance) }

func (e *Engine) Substitute(expr Expr, v string, value Expr) Expr { return expr.Sub(v, value) }

func (e *Engine) Evaluate(expr Expr) Value { return Evaluate(expr) }

func (e *Engine) EvaluateAt(expr Expr, v string, x float64) Value { return EvaluateAt(expr, v, x) }

func (e *Engine) Integrate(expr Expr, v string, b Bounds) (Integral, error) {
	return integrate(expr, v, b, e.tolerance, e.quadPoints)
}

// ParseBound reads an integration limit: an integer, a decimal such as 2.5
// or -.5, or a fraction such as 1/3.
func (e *Engine) ParseBound(text string) (*big.Rat, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, &FormatError{Input: text}
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, okn := parseSigned(num)
		d, okd := parseSigned(den)
		if !okn || !okd || d.Sign() == 0 {
			return nil, &FormatError{Input: text}
		}
		return n.Quo(n, d), nil
	}
	r, ok := parseSigned(s)
	if !ok {
		return nil, &FormatError{Input: text}
	}
	return r, nil
}

func parseSigned(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if !strings.ContainsAny(s, "0123456789") || !strings.ContainsAny(s[:1], "0123456789.") {
		return nil, false
	}
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E':
		case (c == '+' || c == '-') && (s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return nil, false
		}
	}
	r, ok := parseDecimal(s)
	if !ok {
		return nil, false
	}
	if neg {
		r.Neg(r)
	}
	return r, true
}
