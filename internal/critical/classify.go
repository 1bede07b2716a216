package critical

import (
	"fmt"
	"strings"

	"github.com/san-kum/extrema/internal/symbolic"
)

type Classification int

const (
	Minima Classification = iota + 1
	Maxima
	SaddlePoint
)

func (c Classification) String() string {
	switch c {
	case Minima:
		return "Minima"
	case Maxima:
		return "Maxima"
	case SaddlePoint:
		return "Saddle point"
	}
	return "unknown"
}

// Policy decides what happens to candidates whose concavity is not real.
type Policy int

const (
	PolicySkip Policy = iota
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "skip"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return PolicySkip, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicySkip, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Point is one classified critical point.
type Point struct {
	Location  symbolic.Expr
	X         symbolic.Value
	Y         symbolic.Value
	Concavity symbolic.Value
	Class     Classification
}

// Skipped is a candidate left out of the result and why.
type Skipped struct {
	Location symbolic.Expr
	Reason   error
}

type Result struct {
	Function   symbolic.Expr
	Derivative symbolic.Expr
	Second     symbolic.Expr
	Points     []Point
	Skipped    []Skipped
	// Complete is false when the derivative equation was only partly solved.
	Complete bool
}

func (r *Result) Len() int { return len(r.Points) }

// Lookup finds the point at loc by its printed form.
func (r *Result) Lookup(loc symbolic.Expr) (Point, bool) {
	key := loc.String()
	for _, p := range r.Points {
		if p.Location.String() == key {
			return p, true
		}
	}
	return Point{}, false
}

type Classifier struct {
	Engine    *symbolic.Engine
	Policy    Policy
	Tolerance float64
}

func New(eng *symbolic.Engine, policy Policy) *Classifier {
	return &Classifier{Engine: eng, Policy: policy, Tolerance: eng.Tolerance()}
}

// Classify runs the second-derivative test on every root of expr' in v,
// in solver order (real roots ascending).
func Classify(eng *symbolic.Engine, expr symbolic.Expr, v string) (*Result, error) {
	return New(eng, PolicySkip).Classify(expr, v)
}

func (c *Classifier) Classify(expr symbolic.Expr, v string) (*Result, error) {
	eng := c.Engine
	d1 := eng.Diff(expr, v)
	sol := eng.Solve(d1, v)
	d2 := eng.Diff(d1, v)

	res := &Result{Function: expr, Derivative: d1, Second: d2, Complete: sol.Complete}
	seen := make(map[string]bool, len(sol.Roots))
	for _, loc := range sol.Roots {
		key := loc.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		x := eng.Evaluate(loc)
		if !x.IsReal() && c.Policy == PolicySkip {
			res.Skipped = append(res.Skipped, Skipped{Location: loc, Reason: ErrNonReal})
			continue
		}

		conc := eng.Evaluate(eng.Substitute(d2, v, loc))
		sign, err := conc.Sign(c.Tolerance)
		if err != nil {
			ierr := &IndeterminateError{Location: loc, Concavity: conc}
			if c.Policy == PolicyStrict {
				return nil, ierr
			}
			res.Skipped = append(res.Skipped, Skipped{Location: loc, Reason: ierr})
			continue
		}

		p := Point{
			Location:  loc,
			X:         x,
			Y:         eng.Evaluate(eng.Substitute(expr, v, loc)),
			Concavity: conc,
		}
		switch {
		case sign > 0:
			p.Class = Minima
		case sign < 0:
			p.Class = Maxima
		default:
			p.Class = SaddlePoint
		}
		res.Points = append(res.Points, p)
	}
	return res, nil
}
