package symbolic

import (
	"math"
	"math/big"
)

// Pow is base**exp.
type Pow struct{ base, exp Expr }

var ratHalf = big.NewRat(1, 2)

// PowOf folds numeric powers exactly where possible, extracts square factors
// from square roots of rationals and maps E**u to exp(u).
func PowOf(base, exp Expr) Expr {
	if ec, ok := coeffOf(exp); ok {
		if ec.isZero() {
			return N(1)
		}
		if ec.isOne() {
			return base
		}
	}
	if isOne(base) {
		return base
	}
	if b, ok := coeffOf(base); ok {
		if r := powNumeric(b, exp); r != nil {
			return r
		}
		return &Pow{base: base, exp: exp}
	}

	switch b := base.(type) {
	case *Const:
		if b.name == E.name {
			return ExpOf(exp)
		}
		if b.name == I.name {
			if e, ok := exp.(*Num); ok && e.IsInt() && e.val.Num().IsInt64() {
				switch mod4(e.val.Num().Int64()) {
				case 0:
					return N(1)
				case 1:
					return I
				case 2:
					return N(-1)
				default:
					return MulOf(N(-1), I)
				}
			}
		}
	case *Pow:
		if e, ok := exp.(*Num); ok && e.IsInt() {
			return PowOf(b.base, MulOf(b.exp, e))
		}
	case *Mul:
		if e, ok := exp.(*Num); ok {
			if e.IsInt() {
				fs := make([]Expr, len(b.factors))
				for i, f := range b.factors {
					fs[i] = PowOf(f, e)
				}
				return MulOf(fs...)
			}
			if c, ok := coeffOf(b.factors[0]); ok && c.sign() > 0 {
				return MulOf(PowOf(c.expr(), e), PowOf(MulOf(b.factors[1:]...), e))
			}
		}
	case *Func:
		if e, ok := exp.(*Num); ok && e.IsInt() && b.name == "exp" {
			return ExpOf(MulOf(e, b.arg))
		}
	}
	return &Pow{base: base, exp: exp}
}

// SqrtOf returns the principal square root of e.
func SqrtOf(e Expr) Expr { return PowOf(e, Q(1, 2)) }

func (p *Pow) Base() Expr { return p.base }
func (p *Pow) Exp() Expr  { return p.exp }

func (p *Pow) String() string {
	if e, ok := p.exp.(*Num); ok {
		if e.val.Cmp(ratHalf) == 0 {
			return "sqrt(" + p.base.String() + ")"
		}
		if e.Sign() < 0 {
			return (&Mul{factors: []Expr{p}}).String()
		}
	}
	return wrap(p.base, precAtom) + "**" + wrap(p.exp, precAtom)
}

func (p *Pow) prec() int {
	if e, ok := p.exp.(*Num); ok {
		if e.val.Cmp(ratHalf) == 0 {
			return precAtom
		}
		if e.Sign() < 0 {
			return precMul
		}
	}
	return precPow
}

func (p *Pow) Diff(v string) Expr {
	db := p.base.Diff(v)
	de := p.exp.Diff(v)
	if isZero(de) {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), db)
	}
	if isZero(db) {
		return MulOf(p, LogOf(p.base), de)
	}
	return MulOf(p, AddOf(
		MulOf(de, LogOf(p.base)),
		MulOf(p.exp, db, PowOf(p.base, N(-1))),
	))
}

func (p *Pow) Sub(v string, value Expr) Expr {
	return PowOf(p.base.Sub(v, value), p.exp.Sub(v, value))
}

func (p *Pow) Equal(other Expr) bool { return equalByString(p, other) }

func powNumeric(b coeff, exp Expr) Expr {
	e, ok := coeffOf(exp)
	if !ok {
		return nil
	}
	if b.float || e.float {
		bf, ef := b.float64(), e.float64()
		if bf < 0 && ef != math.Trunc(ef) {
			return nil
		}
		if bf == 0 && ef < 0 {
			return nil
		}
		return NewFloat(math.Pow(bf, ef))
	}

	br, er := b.rat, e.rat
	if br.Sign() == 0 {
		if er.Sign() > 0 {
			return N(0)
		}
		return nil
	}
	if er.Num().BitLen() > 16 || er.Denom().BitLen() > 16 {
		return nil
	}
	p, q := er.Num().Int64(), er.Denom().Int64()
	if q == 1 {
		return NumFromRat(ratPow(br, p))
	}

	abs := new(big.Rat).Abs(br)
	if r, ok := ratRoot(abs, q); ok {
		if br.Sign() > 0 {
			return NumFromRat(ratPow(r, p))
		}
		if q == 2 {
			return MulOf(NumFromRat(ratPow(r, p)), PowOf(I, N(p)))
		}
		return nil
	}
	if ip := p / q; ip != 0 {
		return MulOf(NumFromRat(ratPow(br, ip)), PowOf(NumFromRat(br), Q(p-ip*q, q)))
	}
	if q == 2 && p == 1 {
		out, in := sqrtExtract(abs)
		if br.Sign() < 0 {
			return MulOf(NumFromRat(out), PowOf(NumFromRat(in), Q(1, 2)), I)
		}
		if out.Cmp(ratOne) == 0 && in.Cmp(abs) == 0 {
			return nil
		}
		return MulOf(NumFromRat(out), &Pow{base: NumFromRat(in), exp: Q(1, 2)})
	}
	return nil
}

func ratPow(r *big.Rat, n int64) *big.Rat {
	base := new(big.Rat).Set(r)
	if n < 0 {
		base.Inv(base)
		n = -n
	}
	e := big.NewInt(n)
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Denom(), e, nil)
	return new(big.Rat).SetFrac(num, den)
}

func ratRoot(r *big.Rat, q int64) (*big.Rat, bool) {
	num, ok := intRoot(r.Num(), q)
	if !ok {
		return nil, false
	}
	den, ok := intRoot(r.Denom(), q)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func intRoot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() == 0 {
		return new(big.Int), true
	}
	if q == 2 {
		r := new(big.Int).Sqrt(n)
		return r, new(big.Int).Mul(r, r).Cmp(n) == 0
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	est := int64(math.Round(math.Pow(f, 1/float64(q))))
	e := big.NewInt(q)
	for c := est - 1; c <= est+1; c++ {
		if c < 0 {
			continue
		}
		r := big.NewInt(c)
		if new(big.Int).Exp(r, e, nil).Cmp(n) == 0 {
			return r, true
		}
	}
	return nil, false
}

// sqrtExtract writes a non-negative rational as out**2 * in with in a
// square-free integer (as far as trial division reaches).
func sqrtExtract(r *big.Rat) (out, in *big.Rat) {
	m := new(big.Int).Mul(r.Num(), r.Denom())
	square := big.NewInt(1)
	rest := new(big.Int).Set(m)
	mod := new(big.Int)
	for p := int64(2); p < 10000; p++ {
		pp := big.NewInt(p * p)
		if pp.Cmp(rest) > 0 {
			break
		}
		for {
			q, rm := new(big.Int).QuoRem(rest, pp, mod)
			if rm.Sign() != 0 {
				break
			}
			rest = q
			square.Mul(square, big.NewInt(p))
		}
	}
	out = new(big.Rat).SetFrac(square, r.Denom())
	in = new(big.Rat).SetInt(rest)
	return out, in
}

func mod4(n int64) int64 {
	m := n % 4
	if m < 0 {
		m += 4
	}
	return m
}
