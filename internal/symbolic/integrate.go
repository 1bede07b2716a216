package symbolic

import (
	"math"
	"math/big"

	"gonum.org/v1/gonum/integrate/quad"
)

// Method records how a definite integral was obtained.
type Method int

const (
	Symbolic Method = iota
	Quadrature
)

func (m Method) String() string {
	if m == Quadrature {
		return "quadrature"
	}
	return "symbolic"
}

// Bounds are the limits of a definite integral. Lower may exceed Upper, in
// which case the integral changes sign.
type Bounds struct {
	Lower, Upper *big.Rat
}

// Integral is the result of a definite integration.
type Integral struct {
	Value Value
	// Exact is F(upper) - F(lower) when an antiderivative was found.
	Exact          Expr
	Antiderivative Expr
	Method         Method
}

// Antiderivative returns F with F' = e, or false when no rule applies.
func Antiderivative(e Expr, v string) (Expr, bool) {
	x := S(v)
	if !HasSym(e, v) {
		return MulOf(e, x), true
	}
	switch t := e.(type) {
	case *Sym:
		return MulOf(Q(1, 2), PowOf(x, N(2))), true
	case *Add:
		parts := make([]Expr, len(t.terms))
		for i, term := range t.terms {
			f, ok := Antiderivative(term, v)
			if !ok {
				return nil, false
			}
			parts[i] = f
		}
		return AddOf(parts...), true
	case *Mul:
		var consts, vars []Expr
		for _, f := range t.factors {
			if HasSym(f, v) {
				vars = append(vars, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(consts) > 0 {
			inner, ok := Antiderivative(MulOf(vars...), v)
			if !ok {
				return nil, false
			}
			return MulOf(append(consts, inner)...), true
		}
		if F, ok := byParts(t.factors, v); ok {
			return F, true
		}
		if ex := Expand(t); !ex.Equal(t) {
			return Antiderivative(ex, v)
		}
	case *Pow:
		return powAntiderivative(t, v)
	case *Func:
		return funcAntiderivative(t, v)
	}
	return nil, false
}

// linear reports a, b with u = a*v + b and a != 0.
func linear(u Expr, v string) (a, b Expr, ok bool) {
	cs, ok := PolyCoeffs(u, v)
	if !ok || len(cs) != 2 {
		return nil, nil, false
	}
	return cs[1], cs[0], true
}

func powAntiderivative(p *Pow, v string) (Expr, bool) {
	if !HasSym(p.exp, v) {
		if a, _, ok := linear(p.base, v); ok {
			if c, ok := coeffOf(p.exp); ok && !c.float && c.rat.Cmp(big.NewRat(-1, 1)) == 0 {
				return DivOf(LogOf(AbsOf(p.base)), a), true
			}
			n1 := AddOf(p.exp, N(1))
			return DivOf(PowOf(p.base, n1), MulOf(a, n1)), true
		}
		if n, ok := p.exp.(*Num); ok && n.IsInt() && n.Sign() > 0 {
			if ex := Expand(p); !ex.Equal(p) {
				return Antiderivative(ex, v)
			}
		}
		return nil, false
	}
	if !HasSym(p.base, v) {
		if a, _, ok := linear(p.exp, v); ok {
			return DivOf(p, MulOf(a, LogOf(p.base))), true
		}
	}
	return nil, false
}

func funcAntiderivative(f *Func, v string) (Expr, bool) {
	a, _, ok := linear(f.arg, v)
	if !ok {
		return nil, false
	}
	u := f.arg
	var F Expr
	switch f.name {
	case "sin":
		F = Neg(CosOf(u))
	case "cos":
		F = SinOf(u)
	case "tan":
		F = Neg(LogOf(AbsOf(CosOf(u))))
	case "exp":
		F = f
	case "sinh":
		F = CoshOf(u)
	case "cosh":
		F = SinhOf(u)
	case "tanh":
		F = LogOf(CoshOf(u))
	case "log":
		F = SubOf(MulOf(u, LogOf(u)), u)
	case "atan":
		F = SubOf(MulOf(u, AtanOf(u)), MulOf(Q(1, 2), LogOf(AddOf(N(1), PowOf(u, N(2))))))
	case "asin":
		F = AddOf(MulOf(u, AsinOf(u)), SqrtOf(SubOf(N(1), PowOf(u, N(2)))))
	case "acos":
		F = SubOf(MulOf(u, AcosOf(u)), SqrtOf(SubOf(N(1), PowOf(u, N(2)))))
	case "abs":
		F = MulOf(Q(1, 2), u, AbsOf(u))
	case "sign":
		F = AbsOf(u)
	default:
		return nil, false
	}
	return DivOf(F, a), true
}

// byParts integrates p*g where p is a polynomial in v and g reproduces
// itself under integration (exp, sin, cos, sinh, cosh or c**u of a linear
// argument). Each step lowers the degree of p by one.
func byParts(factors []Expr, v string) (Expr, bool) {
	var g Expr
	var rest []Expr
	for _, f := range factors {
		if g == nil && cyclic(f, v) {
			g = f
			continue
		}
		rest = append(rest, f)
	}
	if g == nil || len(rest) == 0 {
		return nil, false
	}
	p := MulOf(rest...)
	if cs, ok := PolyCoeffs(p, v); !ok || len(cs) < 2 {
		return nil, false
	}
	G, ok := Antiderivative(g, v)
	if !ok {
		return nil, false
	}
	tail, ok := Antiderivative(MulOf(p.Diff(v), G), v)
	if !ok {
		return nil, false
	}
	return SubOf(MulOf(p, G), tail), true
}

func cyclic(f Expr, v string) bool {
	switch t := f.(type) {
	case *Func:
		switch t.name {
		case "exp", "sin", "cos", "sinh", "cosh":
			_, _, ok := linear(t.arg, v)
			return ok
		}
	case *Pow:
		if !HasSym(t.base, v) {
			_, _, ok := linear(t.exp, v)
			return ok
		}
	}
	return false
}

// integrate evaluates the definite integral of e over b. Poles inside the
// interval are an error. A pole at an end of the interval is accepted when
// the integrand grows slower than 1/|x-p| there. A closed form is used when
// one is found and Gauss-Legendre quadrature when not; the rule never
// samples the end points.
func integrate(e Expr, v string, b Bounds, tol float64, points int) (Integral, error) {
	lo, hi := b.Lower, b.Upper
	if lo.Cmp(hi) == 0 {
		return Integral{Value: ExactValue(new(big.Rat)), Exact: N(0), Method: Symbolic}, nil
	}
	a, _ := lo.Float64()
	z, _ := hi.Float64()
	sign := 1.0
	if a > z {
		a, z, sign = z, a, -1
	}
	if err := checkPoles(e, v, a, z, tol); err != nil {
		return Integral{}, err
	}

	if F, ok := Antiderivative(e, v); ok {
		exact := SubOf(F.Sub(v, NumFromRat(hi)), F.Sub(v, NumFromRat(lo)))
		val := Evaluate(exact)
		if val.IsReal() {
			return Integral{Value: val, Exact: exact, Antiderivative: F, Method: Symbolic}, nil
		}
	}

	f := func(x float64) float64 {
		y, ok := EvaluateAt(e, v, x).Float64()
		if !ok {
			return math.NaN()
		}
		return y
	}
	r := quad.Fixed(f, a, z, points, quad.Legendre{}, 0)
	switch {
	case math.IsInf(r, 0):
		return Integral{}, ErrDivergent
	case math.IsNaN(r):
		return Integral{}, ErrNotIntegrable
	}
	return Integral{Value: ApproxValue(sign * r), Method: Quadrature}, nil
}

// maxPeriods caps how many zeros of a periodic factor are enumerated.
const maxPeriods = 100000

// checkPoles rejects a singularity of e inside [a, z] and one at a or z
// that is not integrable.
func checkPoles(e Expr, v string, a, z, tol float64) error {
	for _, f := range singularFactors(e, v) {
		for _, p := range zerosIn(f, v, a, z, tol) {
			switch {
			case p > a+tol && p < z-tol:
				return ErrDivergent
			case p <= a+tol && !integrableAt(e, v, a, 1):
				return ErrDivergent
			case p >= z-tol && !integrableAt(e, v, z, -1):
				return ErrDivergent
			}
		}
	}
	return nil
}

// singularFactors lists the factors whose zeros make e blow up: those of its
// common denominator plus cos(u) for every tan(u) in the numerator.
func singularFactors(e Expr, v string) []Expr {
	var out []Expr
	num, den := fraction(e)
	factors := []Expr{den}
	if m, ok := den.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		if p, ok := f.(*Pow); ok {
			if _, ok := p.exp.(*Num); ok {
				f = p.base
			}
		}
		if HasSym(f, v) {
			out = append(out, f)
		}
	}
	walkFuncs(num, func(fn *Func) {
		if fn.name == "tan" && HasSym(fn.arg, v) {
			out = append(out, CosOf(fn.arg))
		}
	})
	return out
}

func walkFuncs(e Expr, visit func(*Func)) {
	switch t := e.(type) {
	case *Add:
		for _, term := range t.terms {
			walkFuncs(term, visit)
		}
	case *Mul:
		for _, f := range t.factors {
			walkFuncs(f, visit)
		}
	case *Pow:
		walkFuncs(t.base, visit)
		walkFuncs(t.exp, visit)
	case *Func:
		visit(t)
		walkFuncs(t.arg, visit)
	}
}

// zerosIn returns the real zeros of f within [a-tol, z+tol].
func zerosIn(f Expr, v string, a, z, tol float64) []float64 {
	if fn, ok := f.(*Func); ok {
		if out, ok := periodicZeros(fn, v, a, z, tol); ok {
			return out
		}
	}
	var out []float64
	for _, r := range solveTol(f, v, tol).Roots {
		x, ok := Evaluate(r).Float64()
		if ok && x >= a-tol && x <= z+tol {
			out = append(out, x)
		}
	}
	return out
}

// periodicZeros lists every zero of sin, cos or tan of a linear argument in
// the range, not only the principal ones.
func periodicZeros(fn *Func, v string, a, z, tol float64) ([]float64, bool) {
	var offset float64
	switch fn.name {
	case "sin", "tan":
	case "cos":
		offset = math.Pi / 2
	default:
		return nil, false
	}
	m, c, ok := linear(fn.arg, v)
	if !ok {
		return nil, false
	}
	mf, ok1 := Evaluate(m).Float64()
	cf, ok2 := Evaluate(c).Float64()
	if !ok1 || !ok2 || mf == 0 {
		return nil, false
	}
	// u = mf*x + cf runs over [u0, u1] as x runs over [a, z]
	u0, u1 := mf*a+cf, mf*z+cf
	if u0 > u1 {
		u0, u1 = u1, u0
	}
	slack := tol * math.Abs(mf)
	k0 := math.Ceil((u0 - offset - slack) / math.Pi)
	k1 := math.Floor((u1 - offset + slack) / math.Pi)
	var out []float64
	for k := k0; k <= k1 && k-k0 < maxPeriods; k++ {
		out = append(out, (offset+k*math.Pi-cf)/mf)
	}
	return out, true
}

// integrableAt estimates the order of growth of e approaching p from the
// side dir and reports whether it stays below that of 1/|x-p|.
func integrableAt(e Expr, v string, p, dir float64) bool {
	const near, nearer = 1e-4, 1e-7
	y1, ok1 := EvaluateAt(e, v, p+dir*near).Float64()
	y2, ok2 := EvaluateAt(e, v, p+dir*nearer).Float64()
	if !ok1 || !ok2 {
		return false
	}
	if y2 == 0 {
		return true
	}
	if y1 == 0 {
		return false
	}
	order := math.Log(math.Abs(y2/y1)) / math.Log(near/nearer)
	return order < 0.99
}
