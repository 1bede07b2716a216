package symbolic

import (
	"math"
	"math/big"
	"sort"
)

// DefaultTolerance is the magnitude below which approximate values count as
// zero.
const DefaultTolerance = 1e-9

// Solution lists the roots of an equation expr = 0. Complete is false when
// some part of the equation had no closed form and roots may be missing.
type Solution struct {
	Roots    []Expr
	Complete bool
}

type solver struct {
	v        string
	tol      float64
	complete bool
}

// Solve finds the roots of e = 0 in v. Real roots come first in ascending
// order, followed by complex ones. Poles of a rational expression are
// never reported.
func Solve(e Expr, v string) Solution {
	return solveTol(e, v, DefaultTolerance)
}

func solveTol(e Expr, v string, tol float64) Solution {
	s := &solver{v: v, tol: tol, complete: true}
	if !HasSym(e, v) {
		return Solution{Complete: true}
	}
	num, den := fraction(e)
	roots := s.zeros(num)
	if HasSym(den, v) {
		kept := roots[:0]
		for _, r := range roots {
			d := Evaluate(den.Sub(v, r))
			if d.Kind() == Unsolved || d.IsZero(tol) {
				continue
			}
			kept = append(kept, r)
		}
		roots = kept
	}
	return Solution{Roots: orderRoots(roots), Complete: s.complete}
}

type denFactor struct {
	base Expr
	exp  *big.Rat
}

// fraction writes e over a common denominator built from the negative
// powers in its terms.
func fraction(e Expr) (num, den Expr) {
	terms := termsOf(e)
	nums := make([]Expr, len(terms))
	dens := make([]map[string]denFactor, len(terms))
	common := map[string]denFactor{}
	var order []string
	for i, t := range terms {
		nums[i], dens[i] = splitFraction(t)
		for k, f := range dens[i] {
			c, ok := common[k]
			if !ok {
				order = append(order, k)
				common[k] = f
				continue
			}
			if f.exp.Cmp(c.exp) > 0 {
				common[k] = f
			}
		}
	}
	if len(common) == 0 {
		return e, N(1)
	}
	sort.Strings(order)

	parts := make([]Expr, len(terms))
	for i := range terms {
		fs := []Expr{nums[i]}
		for _, k := range order {
			missing := new(big.Rat).Set(common[k].exp)
			if f, ok := dens[i][k]; ok {
				missing.Sub(missing, f.exp)
			}
			if missing.Sign() != 0 {
				fs = append(fs, PowOf(common[k].base, NumFromRat(missing)))
			}
		}
		parts[i] = MulOf(fs...)
	}
	ds := make([]Expr, 0, len(order))
	for _, k := range order {
		ds = append(ds, PowOf(common[k].base, NumFromRat(common[k].exp)))
	}
	return AddOf(parts...), MulOf(ds...)
}

func splitFraction(t Expr) (Expr, map[string]denFactor) {
	factors := []Expr{t}
	if m, ok := t.(*Mul); ok {
		factors = m.factors
	}
	dens := map[string]denFactor{}
	var nums []Expr
	for _, f := range factors {
		if p, ok := f.(*Pow); ok {
			if n, ok := p.exp.(*Num); ok && n.Sign() < 0 {
				dens[p.base.String()] = denFactor{base: p.base, exp: new(big.Rat).Neg(n.val)}
				continue
			}
		}
		nums = append(nums, f)
	}
	return MulOf(nums...), dens
}

func (s *solver) zeros(e Expr) []Expr {
	if !HasSym(e, s.v) {
		return nil
	}
	switch t := e.(type) {
	case *Sym:
		return []Expr{N(0)}
	case *Mul:
		var out []Expr
		for _, f := range t.factors {
			out = append(out, s.zeros(f)...)
		}
		return out
	case *Pow:
		if c, ok := coeffOf(t.exp); ok {
			if c.sign() > 0 {
				return s.zeros(t.base)
			}
			return nil
		}
		if !HasSym(t.base, s.v) {
			return nil
		}
	case *Func:
		switch t.name {
		case "exp", "cosh":
			return nil
		case "sin":
			return s.invert(t.arg, N(0), Pi)
		case "cos":
			return s.invert(t.arg, MulOf(Q(1, 2), Pi), MulOf(Q(3, 2), Pi))
		case "tan", "sinh", "tanh", "asin", "atan", "abs", "sign":
			return s.invert(t.arg, N(0))
		case "log", "acos":
			return s.invert(t.arg, N(1))
		}
	case *Add:
		return s.zerosSum(t)
	}
	s.complete = false
	return nil
}

// invert solves u = target for each target.
func (s *solver) invert(u Expr, targets ...Expr) []Expr {
	var out []Expr
	for _, target := range targets {
		out = append(out, s.zeros(SubOf(u, target))...)
	}
	return out
}

func (s *solver) zerosSum(a *Add) []Expr {
	if common, rest, ok := s.commonFactor(a); ok {
		return append(s.zeros(common), s.zeros(rest)...)
	}
	cs, ok := PolyCoeffs(a, s.v)
	if !ok {
		s.complete = false
		return nil
	}
	if p, ok := ratPoly(cs); ok {
		return s.ratPolyRoots(p)
	}
	return s.symbolicPolyRoots(cs)
}

// commonFactor pulls out a power of a v-dependent base shared by every
// term, as in x*exp(x) + exp(x).
func (s *solver) commonFactor(a *Add) (Expr, Expr, bool) {
	type share struct {
		base Expr
		exp  *big.Rat
	}
	var shared map[string]share
	for i, t := range a.terms {
		here := map[string]share{}
		factors := []Expr{t}
		if m, ok := t.(*Mul); ok {
			factors = m.factors
		}
		for _, f := range factors {
			if !HasSym(f, s.v) {
				continue
			}
			base, exp := f, big.NewRat(1, 1)
			if p, ok := f.(*Pow); ok {
				if n, ok := p.exp.(*Num); ok {
					base, exp = p.base, n.Rat()
				}
			}
			here[base.String()] = share{base: base, exp: exp}
		}
		if i == 0 {
			shared = here
			continue
		}
		for k, sh := range shared {
			h, ok := here[k]
			if !ok {
				delete(shared, k)
				continue
			}
			if h.exp.Cmp(sh.exp) < 0 {
				shared[k] = h
			}
		}
	}

	keys := make([]string, 0, len(shared))
	for k, sh := range shared {
		if sh.exp.Sign() > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, nil, false
	}
	sort.Strings(keys)
	sh := shared[keys[0]]
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = dropFactor(t, keys[0], sh.exp)
	}
	return PowOf(sh.base, NumFromRat(sh.exp)), AddOf(terms...), true
}

// dropFactor divides t by base**exp where base prints as key, lowering the
// exponent of the matching factor.
func dropFactor(t Expr, key string, exp *big.Rat) Expr {
	factors := []Expr{t}
	if m, ok := t.(*Mul); ok {
		factors = m.factors
	}
	out := make([]Expr, 0, len(factors))
	for _, f := range factors {
		base, e := f, big.NewRat(1, 1)
		if p, ok := f.(*Pow); ok {
			if n, ok := p.exp.(*Num); ok {
				base, e = p.base, n.Rat()
			}
		}
		if base.String() != key {
			out = append(out, f)
			continue
		}
		if left := e.Sub(e, exp); left.Sign() != 0 {
			out = append(out, PowOf(base, NumFromRat(left)))
		}
	}
	return MulOf(out...)
}

func (s *solver) ratPolyRoots(p Poly) []Expr {
	p = p.trim()
	var out []Expr
	if p.degree() < 1 {
		return nil
	}
	p = p.squarefree()
	for _, r := range p.rationalRoots() {
		out = append(out, NumFromRat(r))
		p = p.divLinear(r)
	}
	switch p.degree() {
	case -1, 0:
	case 1:
		out = append(out, NumFromRat(new(big.Rat).Neg(new(big.Rat).Quo(p[0], p[1]))))
	case 2:
		out = append(out, quadraticRoots(NumFromRat(p[2]), NumFromRat(p[1]), NumFromRat(p[0]))...)
	case 3:
		out = append(out, cubicRoots(p)...)
	case 4:
		if p[1].Sign() == 0 && p[3].Sign() == 0 {
			for _, u := range quadraticRoots(NumFromRat(p[4]), NumFromRat(p[2]), NumFromRat(p[0])) {
				r := SqrtOf(u)
				out = append(out, Neg(r), r)
			}
			break
		}
		s.complete = false
	default:
		s.complete = false
	}
	return out
}

func (s *solver) symbolicPolyRoots(cs []Expr) []Expr {
	switch len(cs) - 1 {
	case 1:
		return []Expr{Neg(DivOf(cs[0], cs[1]))}
	case 2:
		return quadraticRoots(cs[2], cs[1], cs[0])
	}
	s.complete = false
	return nil
}

// quadraticRoots solves a*x**2 + b*x + c = 0. A negative discriminant
// gives a complex conjugate pair.
func quadraticRoots(a, b, c Expr) []Expr {
	disc := SubOf(PowOf(b, N(2)), MulOf(N(4), a, c))
	if isZero(disc) {
		return []Expr{Neg(DivOf(b, MulOf(N(2), a)))}
	}
	sq := SqrtOf(disc)
	inv := PowOf(MulOf(N(2), a), N(-1))
	return []Expr{
		MulOf(inv, SubOf(Neg(b), sq)),
		MulOf(inv, AddOf(Neg(b), sq)),
	}
}

// cubicRoots handles an irreducible rational cubic numerically: the three
// real roots by the trigonometric method, or one real root and a complex
// pair by Cardano's formula.
func cubicRoots(p Poly) []Expr {
	a, _ := p[3].Float64()
	b, _ := p[2].Float64()
	c, _ := p[1].Float64()
	d, _ := p[0].Float64()
	b, c, d = b/a, c/a, d/a

	// depressed t**3 + pp*t + qq with x = t - b/3
	pp := c - b*b/3
	qq := 2*b*b*b/27 - b*c/3 + d
	shift := -b / 3
	disc := qq*qq/4 + pp*pp*pp/27

	if disc < 0 {
		m := 2 * math.Sqrt(-pp/3)
		theta := math.Acos(3*qq/(pp*m)) / 3
		out := make([]Expr, 3)
		for k := 0; k < 3; k++ {
			out[k] = NewFloat(m*math.Cos(theta-2*math.Pi*float64(k)/3) + shift)
		}
		return out
	}
	sq := math.Sqrt(disc)
	u := math.Cbrt(-qq/2 + sq)
	w := math.Cbrt(-qq/2 - sq)
	re := -(u+w)/2 + shift
	im := math.Sqrt(3) / 2 * (u - w)
	return []Expr{
		NewFloat(u + w + shift),
		AddOf(NewFloat(re), MulOf(NewFloat(-im), I)),
		AddOf(NewFloat(re), MulOf(NewFloat(im), I)),
	}
}

// orderRoots dedupes by printed form and sorts real roots ascending ahead of
// complex and unevaluable ones.
func orderRoots(roots []Expr) []Expr {
	type keyed struct {
		e    Expr
		real bool
		x    float64
	}
	seen := map[string]bool{}
	var ks []keyed
	for _, r := range roots {
		k := r.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		x, ok := Evaluate(r).Float64()
		ks = append(ks, keyed{e: r, real: ok, x: x})
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].real != ks[j].real {
			return ks[i].real
		}
		return ks[i].real && ks[i].x < ks[j].x
	})
	out := make([]Expr, len(ks))
	for i, k := range ks {
		out[i] = k.e
	}
	return out
}
