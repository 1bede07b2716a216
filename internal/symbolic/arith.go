package symbolic

import (
	"math/big"
	"strings"
)

// Add is a sum of at least two terms; the numeric term, if any, is last.
type Add struct{ terms []Expr }

// AddOf flattens nested sums, folds numbers and collects like terms.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if a, ok := t.(*Add); ok {
			flat = append(flat, a.terms...)
		} else {
			flat = append(flat, t)
		}
	}

	type group struct {
		rest Expr
		c    coeff
	}
	sum := intCoeff(0)
	groups := map[string]*group{}
	var order []string
	for _, t := range flat {
		c, rest := splitTerm(t)
		if rest == nil {
			sum = sum.add(c)
			continue
		}
		k := rest.String()
		g, ok := groups[k]
		if !ok {
			g = &group{rest: rest, c: intCoeff(0)}
			groups[k] = g
			order = append(order, k)
		}
		g.c = g.c.add(c)
	}

	out := make([]Expr, 0, len(order)+1)
	for _, k := range order {
		g := groups[k]
		if g.c.isZero() {
			continue
		}
		out = append(out, scale(g.c, g.rest))
	}
	sortByRank(out)
	if !sum.isZero() {
		out = append(out, sum.expr())
	}
	switch len(out) {
	case 0:
		return sum.expr()
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		switch {
		case i == 0:
			b.WriteString(s)
		case strings.HasPrefix(s, "-"):
			b.WriteString(" - ")
			b.WriteString(s[1:])
		default:
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func (a *Add) Diff(v string) Expr {
	d := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		d[i] = t.Diff(v)
	}
	return AddOf(d...)
}

func (a *Add) Sub(v string, value Expr) Expr {
	s := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		s[i] = t.Sub(v, value)
	}
	return AddOf(s...)
}

func (a *Add) Equal(other Expr) bool { return equalByString(a, other) }
func (a *Add) prec() int             { return precAdd }

// Mul is a product of at least two factors; the numeric coefficient, if
// any, is first.
type Mul struct{ factors []Expr }

// MulOf flattens nested products, folds numbers and merges powers of a
// common base. A numeric coefficient times a single sum is distributed.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if m, ok := f.(*Mul); ok {
			flat = append(flat, m.factors...)
		} else {
			flat = append(flat, f)
		}
	}

	type group struct {
		base Expr
		exps []Expr
	}
	c := intCoeff(1)
	groups := map[string]*group{}
	var order []string
	for _, f := range flat {
		if n, ok := coeffOf(f); ok {
			c = c.mul(n)
			continue
		}
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		k := base.String()
		g, ok := groups[k]
		if !ok {
			g = &group{base: base}
			groups[k] = g
			order = append(order, k)
		}
		g.exps = append(g.exps, exp)
	}
	if c.isZero() {
		return c.expr()
	}

	others := make([]Expr, 0, len(order))
	for _, k := range order {
		g := groups[k]
		var p Expr
		if len(g.exps) == 1 && isOne(g.exps[0]) {
			p = g.base
		} else {
			p = PowOf(g.base, AddOf(g.exps...))
		}
		if n, ok := coeffOf(p); ok {
			c = c.mul(n)
			continue
		}
		if pm, ok := p.(*Mul); ok {
			for _, pf := range pm.factors {
				if n, ok := coeffOf(pf); ok {
					c = c.mul(n)
				} else {
					others = append(others, pf)
				}
			}
			continue
		}
		others = append(others, p)
	}
	if c.isZero() || len(others) == 0 {
		return c.expr()
	}
	sortByRank(others)

	if !c.isOne() && len(others) == 1 {
		if a, ok := others[0].(*Add); ok {
			terms := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				terms[i] = MulOf(c.expr(), t)
			}
			return AddOf(terms...)
		}
	}
	if c.isOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{c.expr()}, others...)}
}

func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

// String prints negative integer powers as a denominator: 2*x/(x + 1).
func (m *Mul) String() string {
	var num, den, denSolo []string
	sign := ""
	start := 0
	switch c := m.factors[0].(type) {
	case *Num:
		start = 1
		r := c.Rat()
		if r.Sign() < 0 {
			sign = "-"
			r.Neg(r)
		}
		if r.Num().Cmp(big.NewInt(1)) != 0 {
			num = append(num, r.Num().String())
		}
		if !r.IsInt() {
			den = append(den, r.Denom().String())
			denSolo = append(denSolo, r.Denom().String())
		}
	case *Float:
		start = 1
		f := c.val
		if f < 0 {
			sign = "-"
			f = -f
		}
		if f != 1 {
			num = append(num, formatFloat(f))
		}
	}
	for _, f := range m.factors[start:] {
		if p, ok := f.(*Pow); ok {
			if e, ok := p.exp.(*Num); ok && e.Sign() < 0 {
				inv := PowOf(p.base, NumFromRat(new(big.Rat).Neg(e.val)))
				den = append(den, wrap(inv, precMul))
				denSolo = append(denSolo, wrap(inv, precPow))
				continue
			}
		}
		num = append(num, wrap(f, precMul))
	}

	s := strings.Join(num, "*")
	if s == "" {
		s = "1"
	}
	switch {
	case len(den) == 1:
		s += "/" + denSolo[0]
	case len(den) > 1:
		s += "/(" + strings.Join(den, "*") + ")"
	}
	return sign + s
}

func (m *Mul) Diff(v string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(v)
		if isZero(dfi) {
			continue
		}
		prod := make([]Expr, 0, len(m.factors))
		prod = append(prod, dfi)
		for j, fj := range m.factors {
			if j != i {
				prod = append(prod, fj)
			}
		}
		terms = append(terms, MulOf(prod...))
	}
	return AddOf(terms...)
}

func (m *Mul) Sub(v string, value Expr) Expr {
	s := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		s[i] = f.Sub(v, value)
	}
	return MulOf(s...)
}

func (m *Mul) Equal(other Expr) bool { return equalByString(m, other) }
func (m *Mul) prec() int             { return precMul }

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// DivOf returns a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }
