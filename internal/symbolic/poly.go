package symbolic

import (
	"math/big"
	"sort"
)

const (
	maxExpandPower = 32
	maxExpandTerms = 1024
	maxPolyDegree  = 64
)

// Expand distributes products over sums and multiplies out small integer
// powers of sums.
func Expand(e Expr) Expr {
	switch t := e.(type) {
	case *Add:
		terms := make([]Expr, len(t.terms))
		for i, term := range t.terms {
			terms[i] = Expand(term)
		}
		return AddOf(terms...)
	case *Mul:
		acc := []Expr{N(1)}
		for _, f := range t.factors {
			var ok bool
			if acc, ok = mulTerms(acc, termsOf(Expand(f))); !ok {
				return e
			}
		}
		return AddOf(acc...)
	case *Pow:
		base := Expand(t.base)
		n, ok := t.exp.(*Num)
		if _, isAdd := base.(*Add); !isAdd || !ok || !n.IsInt() || n.Sign() <= 0 || n.val.Num().Int64() > maxExpandPower {
			return PowOf(base, t.exp)
		}
		acc := []Expr{N(1)}
		for i := int64(0); i < n.val.Num().Int64(); i++ {
			if acc, ok = mulTerms(acc, termsOf(base)); !ok {
				return e
			}
		}
		return AddOf(acc...)
	case *Func:
		return FuncOf(t.name, Expand(t.arg))
	}
	return e
}

// mulTerms multiplies two sums given as term lists, collecting like terms
// as it goes.
func mulTerms(a, b []Expr) ([]Expr, bool) {
	if len(a)*len(b) > maxExpandTerms {
		return nil, false
	}
	prod := make([]Expr, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			prod = append(prod, MulOf(x, y))
		}
	}
	return termsOf(AddOf(prod...)), true
}

func termsOf(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// PolyCoeffs returns the coefficients of e as a polynomial in v, lowest
// degree first. ok is false when e is not polynomial in v.
func PolyCoeffs(e Expr, v string) ([]Expr, bool) {
	var coeffs []Expr
	for _, term := range termsOf(Expand(e)) {
		deg, c, ok := monomial(term, v)
		if !ok || deg > maxPolyDegree {
			return nil, false
		}
		for len(coeffs) <= deg {
			coeffs = append(coeffs, N(0))
		}
		coeffs[deg] = AddOf(coeffs[deg], c)
	}
	for len(coeffs) > 0 && isZero(coeffs[len(coeffs)-1]) {
		coeffs = coeffs[:len(coeffs)-1]
	}
	return coeffs, true
}

func monomial(term Expr, v string) (int, Expr, bool) {
	factors := []Expr{term}
	if m, ok := term.(*Mul); ok {
		factors = m.factors
	}
	deg := 0
	var rest []Expr
	for _, f := range factors {
		if !HasSym(f, v) {
			rest = append(rest, f)
			continue
		}
		switch t := f.(type) {
		case *Sym:
			deg++
			continue
		case *Pow:
			if s, ok := t.base.(*Sym); ok && s.name == v {
				if n, ok := t.exp.(*Num); ok && n.IsInt() && n.Sign() > 0 && n.val.Num().IsInt64() {
					deg += int(n.val.Num().Int64())
					continue
				}
			}
		}
		return 0, nil, false
	}
	return deg, MulOf(rest...), true
}

// Poly is a dense polynomial with exact rational coefficients, lowest
// degree first.
type Poly []*big.Rat

func ratPoly(cs []Expr) (Poly, bool) {
	p := make(Poly, len(cs))
	for i, c := range cs {
		n, ok := c.(*Num)
		if !ok {
			return nil, false
		}
		p[i] = n.Rat()
	}
	return p.trim(), true
}

func (p Poly) trim() Poly {
	for len(p) > 0 && p[len(p)-1].Sign() == 0 {
		p = p[:len(p)-1]
	}
	return p
}

func (p Poly) degree() int { return len(p) - 1 }

func (p Poly) eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

// divLinear divides by (x - r) assuming r is a root.
func (p Poly) divLinear(r *big.Rat) Poly {
	if len(p) < 2 {
		return nil
	}
	q := make(Poly, len(p)-1)
	carry := new(big.Rat)
	for i := len(p) - 1; i >= 1; i-- {
		carry = new(big.Rat).Add(p[i], new(big.Rat).Mul(carry, r))
		q[i-1] = carry
	}
	return q
}

func (p Poly) derivative() Poly {
	if len(p) < 2 {
		return nil
	}
	d := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = new(big.Rat).Mul(p[i], big.NewRat(int64(i), 1))
	}
	return d.trim()
}

func (p Poly) divmod(d Poly) (q, r Poly) {
	r = append(Poly(nil), p...)
	if d.degree() < 0 {
		return nil, r
	}
	if len(p) < len(d) {
		return nil, r.trim()
	}
	q = make(Poly, len(p)-len(d)+1)
	for i := range q {
		q[i] = new(big.Rat)
	}
	lead := d[len(d)-1]
	for r = r.trim(); len(r) >= len(d); r = r.trim() {
		shift := len(r) - len(d)
		c := new(big.Rat).Quo(r[len(r)-1], lead)
		q[shift] = c
		next := make(Poly, len(r))
		copy(next, r)
		for i, di := range d {
			next[i+shift] = new(big.Rat).Sub(r[i+shift], new(big.Rat).Mul(c, di))
		}
		next[len(next)-1] = new(big.Rat)
		r = next
	}
	return q.trim(), r
}

func (p Poly) monic() Poly {
	if len(p) == 0 {
		return p
	}
	lead := p[len(p)-1]
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Quo(c, lead)
	}
	return out
}

func polyGCD(a, b Poly) Poly {
	a, b = a.trim(), b.trim()
	for len(b) > 0 {
		_, r := a.divmod(b)
		a, b = b, r
	}
	return a.monic()
}

// squarefree drops repeated factors: p / gcd(p, p').
func (p Poly) squarefree() Poly {
	g := polyGCD(p, p.derivative())
	if g.degree() < 1 {
		return p
	}
	q, _ := p.divmod(g)
	return q
}

// rationalRoots lists the distinct rational roots by the rational root
// theorem. Coefficients too large to factor cheaply yield none.
func (p Poly) rationalRoots() []*big.Rat {
	if p.degree() < 1 {
		return nil
	}
	lcm := big.NewInt(1)
	for _, c := range p {
		g := new(big.Int).GCD(nil, nil, lcm, c.Denom())
		lcm.Mul(lcm, new(big.Int).Quo(c.Denom(), g))
	}
	ints := make([]*big.Int, len(p))
	for i, c := range p {
		n := new(big.Int).Mul(c.Num(), lcm)
		ints[i] = n.Quo(n, c.Denom())
	}

	var roots []*big.Rat
	if ints[0].Sign() == 0 {
		roots = append(roots, new(big.Rat))
		i := 0
		for i < len(ints) && ints[i].Sign() == 0 {
			i++
		}
		ints = ints[i:]
		if len(ints) < 2 {
			return roots
		}
	}
	ps, ok := divisors(ints[0])
	if !ok {
		return roots
	}
	qs, ok := divisors(ints[len(ints)-1])
	if !ok {
		return roots
	}
	seen := map[string]bool{}
	for _, num := range ps {
		for _, den := range qs {
			for _, sign := range []int64{1, -1} {
				r := big.NewRat(sign*num, den)
				key := r.RatString()
				if seen[key] {
					continue
				}
				seen[key] = true
				if p.eval(r).Sign() == 0 {
					roots = append(roots, r)
				}
			}
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Cmp(roots[j]) < 0 })
	return roots
}

func divisors(n *big.Int) ([]int64, bool) {
	a := new(big.Int).Abs(n)
	if !a.IsInt64() || a.Int64() > 1e9 {
		return nil, false
	}
	v := a.Int64()
	var out []int64
	for d := int64(1); d*d <= v; d++ {
		if v%d == 0 {
			out = append(out, d)
			if d != v/d {
				out = append(out, v/d)
			}
		}
	}
	return out, true
}
